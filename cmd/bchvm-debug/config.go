// Command bchvm-debug decodes a locking/unlocking script pair and a
// JSON transaction context, runs them through the BCH instruction set,
// and prints the per-step evaluation trace.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

type config struct {
	LockingScript   string `long:"locking-script" description:"hex-encoded locking (previous output) script" required:"true"`
	UnlockingScript string `long:"unlocking-script" description:"hex-encoded unlocking (input) script" required:"true"`
	Context         string `long:"context" description:"path to a JSON transaction context file" required:"true"`
	Debug           bool   `long:"debug" short:"d" description:"enable trace-level logging"`
	LogFile         string `long:"logfile" description:"file to write rotated logs to; logging is stdout-only if unset"`
	DebugLevel      string `long:"debuglevel" description:"logging level for all subsystems {trace, debug, info, warn, error, critical}" default:"info"`
}

func loadConfig() (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	return cfg, nil
}
