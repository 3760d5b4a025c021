package pg

import (
	"context"
	"strings"

	"kristech/internal/platform/logger"
	pnet "kristech/internal/platform/net"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement run through the store adapters
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements at info, slow ones at warn
// it is pinned to debug so SERVICE_PGSQL_LOG_SQL wins over the root level
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if id := pnet.RequestID(ctx); id != "" {
		evt = evt.Str("request_id", id)
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// compact folds every whitespace run into one space and trims the ends
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
