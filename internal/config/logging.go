package config

import "github.com/rshade/orglist/internal/logging"

// ToLoggingConfig converts the logging section for use with the
// internal/logging package. quiet suppresses console output when no file is
// configured.
func (lc LoggingConfig) ToLoggingConfig(quiet bool) logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		File:   lc.File,
		Quiet:  quiet,
	}
}
