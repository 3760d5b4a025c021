package httpkit

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 returns a TokenFunc that accepts HS256 tokens signed with secret
// the subject claim becomes the user id, an issuer is enforced when non empty
func HS256(secret []byte, issuer string) TokenFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(raw string) (string, error) {
		claims := &jwt.RegisteredClaims{}
		tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil {
			return "", err
		}
		if !tok.Valid {
			return "", errors.New("token not valid")
		}
		if claims.Subject == "" {
			return "", errors.New("token has no subject")
		}
		return claims.Subject, nil
	}
}

// SignHS256 mints a token for subject valid for ttl from now
func SignHS256(secret []byte, issuer, subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
