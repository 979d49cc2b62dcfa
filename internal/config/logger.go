package config

import "github.com/retroenv/retrogolib/log"

// CreateLogger creates the application logger honoring the verbosity
// settings.
func CreateLogger(verbose, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if verbose {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
