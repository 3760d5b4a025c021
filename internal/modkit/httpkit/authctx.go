package httpkit

import (
	"net/http"
	"strings"

	perrs "kristech/internal/platform/errors"
	pnet "kristech/internal/platform/net"
)

// User returns the authenticated user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// Bearer returns the raw token from an Authorization: Bearer header
// the scheme is matched case-insensitively
func Bearer(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, raw, ok := strings.Cut(s, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
