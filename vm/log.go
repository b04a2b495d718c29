package vm

import "github.com/btcsuite/btclog"

// log is the subsystem logger for the vm package. It is disabled until
// a caller wires a real backend in with UseLogger, the same convention
// the surrounding command family uses for every subsystem.
var log = btclog.Disabled

// UseLogger sets the subsystem logger used by the vm package.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// logClosure lazily formats a trace message, avoiding the cost of
// Sprintf when tracing is disabled.
type logClosure func() string

func (c logClosure) String() string {
	return c()
}

func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
