package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"

	perr "kristech/internal/platform/errors"
	"kristech/internal/platform/logger"
	pnet "kristech/internal/platform/net"
)

// RecoverJSON converts panics into a JSON 500 and logs the stack with request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, body := pnet.Error(perr.PanicErrf("panic recovered"))
			body.Message = pnet.InternalMessage
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = stdjson.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
