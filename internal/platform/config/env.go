package config

import (
	"errors"
	"io/fs"

	"kristech/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Environment names understood by APP_ENV
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// dotenvLoad is a seam over godotenv.Load
var dotenvLoad = godotenv.Load

// LoadDotenv reads KEY=VALUE files into the process env without overriding values already set
// missing files are skipped; a malformed file is logged and skipped
// every file is read before the first log line so LOG_* values from them take effect
func LoadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	errs := make([]error, len(files))
	for i, f := range files {
		errs[i] = dotenvLoad(f)
	}

	log := logger.Named("config")
	for i, f := range files {
		err := errs[i]
		switch {
		case err == nil:
			log.Debug().Str("file", f).Msg("dotenv loaded")
		case errors.Is(err, fs.ErrNotExist):
			// optional
		default:
			log.Warn().Err(err).Str("file", f).Msg("dotenv parse failed; skipping")
		}
	}
}

// Environment returns APP_ENV normalized to one of the Env* names (default development)
func (c Conf) Environment() string {
	return c.Root().MayEnum("APP_ENV", EnvDevelopment, EnvDevelopment, EnvTest, EnvProduction)
}

// IsProduction reports whether APP_ENV is production
func (c Conf) IsProduction() bool { return c.Environment() == EnvProduction }
