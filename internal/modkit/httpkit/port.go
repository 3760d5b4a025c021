package httpkit

import (
	"net/http"

	perrs "kristech/internal/platform/errors"
)

// TokenFunc validates a bearer token and returns the user id it names
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse returns unauthorized when the header is missing or malformed or the parser rejects the token
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := Bearer(r)
	if err != nil {
		return "", err
	}
	if p == nil || p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(raw)
	if err != nil || uid == "" {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}
