package bch

import "github.com/btcsuite/btclog"

// log is the subsystem logger for the bch package. Disabled by
// default; wire a real backend in with UseLogger.
var log = btclog.Disabled

// UseLogger sets the subsystem logger used by the bch package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
