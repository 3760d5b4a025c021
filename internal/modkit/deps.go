// Package modkit provides module wiring and core deps
package modkit

import (
	"kristech/internal/modkit/repokit"
	"kristech/internal/platform/config"
	"kristech/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check PG
func (d Deps) ZeroOK() bool { return true }
