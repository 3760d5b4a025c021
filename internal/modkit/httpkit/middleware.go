package httpkit

import (
	"compress/flate"
	"net/http"
	"net/netip"
	"time"

	"kristech/internal/platform/config"
	"kristech/internal/platform/logger"
	phttp "kristech/internal/platform/net/http"
	"kristech/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	SlowRequest time.Duration
	CORS        middleware.CORSOptions
	// TrustedProxies are the peers allowed to set forwarding headers
	TrustedProxies []netip.Prefix
}

// StackFromEnv reads API_REQUEST_TIMEOUT, API_SLOW_REQUEST, API_CORS_ORIGINS and API_TRUSTED_PROXIES
// an unparsable proxy list is dropped with a warning, leaving forwarding headers ignored
func StackFromEnv(cfg config.Conf) StackOptions {
	c := cfg.Prefix("API_")
	proxies, err := middleware.ParseTrustedProxies(c.MayCSV("TRUSTED_PROXIES", nil))
	if err != nil {
		logger.Get().Warn().Err(err).Msg("invalid API_TRUSTED_PROXIES; forwarding headers ignored")
		proxies = nil
	}
	return StackOptions{
		TrustedProxies: proxies,
		Timeout:        c.MayDuration("REQUEST_TIMEOUT", 10*time.Second),
		SlowRequest:    c.MayDuration("SLOW_REQUEST", time.Second),
		CORS: middleware.CORSOptions{
			AllowedOrigins: c.MayCSV("CORS_ORIGINS", []string{"*"}),
		},
	}
}

// CommonStack returns the root middleware slice in mount order
// the access log sits outside RecoverJSON so recovered panics are logged as 500s
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(o.TrustedProxies...),
		middleware.RequestLogContext(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/ping"),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
