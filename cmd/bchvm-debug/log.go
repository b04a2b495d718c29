package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bchcore/bchvm/bch"
	"github.com/bchcore/bchvm/vm"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter writes to both stdout and the write end of an initialized
// log rotator. Writing to stdout happens unconditionally; the rotator
// write is a no-op until initLogRotator has run.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})
	logRotator *rotator.Rotator

	bchvmLog = backendLog.Logger("BCHVM")
	vmLog    = backendLog.Logger("VM")
)

// subsystemLoggers maps each subsystem tag to its logger, for
// setLogLevel/setLogLevels.
var subsystemLoggers = map[string]btclog.Logger{
	"BCHVM": bchvmLog,
	"VM":    vmLog,
}

func init() {
	bch.UseLogger(bchvmLog)
	vm.UseLogger(vmLog)
}

// initLogRotator creates the rotating log file at logFile, rolling
// over at 10 MiB (the rotator's threshold is given in KiB) and keeping
// 3 old versions. It must run before any
// subsystem logger is used if file logging is wanted.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevel sets the logging level for the named subsystem. Unknown
// subsystem tags are ignored.
func setLogLevel(subsystemID, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// setLogLevels sets every subsystem logger to logLevel.
func setLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}
