package middleware

import (
	"net/http"

	pnet "kristech/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the authenticated user id or an error
	Parse(r *http.Request) (userID string, err error)
}

// Auth rejects requests the port cannot authenticate; a nil port passes everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err)
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}
