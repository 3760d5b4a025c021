// Command kristech-token mints an admin bearer token for the contact admin routes
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"kristech/internal/modkit/httpkit"
	"kristech/internal/platform/config"
	"kristech/internal/platform/logger"
)

func main() {
	var (
		fEnv     = flag.String("env", ".env", "dotenv file, skipped when missing")
		fSubject = flag.String("sub", "admin", "token subject, logged as the request user")
		fTTL     = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	config.LoadDotenv(*fEnv)
	cc := config.New().Prefix("CONTACT_")
	secret := cc.MustString("ADMIN_JWT_SECRET")
	issuer := cc.MayString("ADMIN_JWT_ISSUER", "kristech")

	tok, err := httpkit.SignHS256([]byte(secret), issuer, *fSubject, *fTTL, time.Now())
	if err != nil {
		logger.Get().Error().Err(err).Msg("sign token failed")
		os.Exit(1)
	}
	fmt.Println(tok)
}
