// @title         Kristech IT Solutions API
// @version       1.0.0
// @description   Contact form submissions, admin review and health

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"kristech/internal/core/version"
	"kristech/internal/modkit/repokit"
	"kristech/internal/platform/config"
	"kristech/internal/platform/logger"
	pnet "kristech/internal/platform/net"
	phttp "kristech/internal/platform/net/http"
	"kristech/internal/platform/store"

	"kristech/internal/services/api"
	crepo "kristech/internal/services/api/contact/repo"
)

func main() {
	envFiles := flag.String("env", ".env", "comma separated dotenv files, missing files are skipped")
	flag.Parse()

	config.LoadDotenv(strings.Split(*envFiles, ",")...)

	// the first logger use reads LOG_* from the env loaded above
	l := logger.Get()

	root := config.New()
	root.Require("SERVICE_PGSQL_DBURL")
	pnet.ExposeErrorDetail(!root.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open the platform store and apply the embedded schema
	st, err := store.Open(ctx,
		store.ConfigFromEnv(root),
		store.WithLogger(*l),
		store.WithMigrations(crepo.Migrations, crepo.MigrationsDir),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads API_PORT / API_SHUTDOWN_TIMEOUT)
	srv := phttp.NewServer(root)

	apiCfg := root.Prefix("API_")
	workers, err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false) && !root.IsProduction(),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	l.Info().
		Str("version", version.Version()).
		Str("env", root.Environment()).
		Str("addr", srv.Addr()).
		Msg("kristech api starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return workers.Notify.Run(gctx) })
	g.Go(func() error { return workers.Housekeeping.Run(gctx) })

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("kristech api stopped with error")
		os.Exit(1)
	}
	l.Info().Msg("kristech api stopped")
}
