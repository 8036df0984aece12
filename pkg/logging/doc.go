// Package logging provides structured logging utilities for the network auditor.
//
// # Overview
//
// This package wraps the standard library slog package with the auditor's
// defaults: JSON records tagged with module and version, level parsing
// that accepts the usual names, and source locations for debug output.
//
// The audit run itself logs to a file. Its location comes from the settings
// file (logging.log_folder and logging.log_filename) and its shape from a
// separate logging configuration file (logging.log_config_file):
//
//	level: info        # debug, info, warn, error
//	format: json       # json or text
//	console: true      # mirror records to stderr
//	add_source: false
//
// # Usage
//
// Setting the default logger before the settings are known:
//
//	logging.SetDefaultStructuredLoggerWithLevel("netauditor", version, "info")
//
// Building the run logger once settings are loaded:
//
//	cfg, err := logging.LoadConfig(s.LogConfigPath())
//	if err != nil {
//	    return err // NOT_FOUND when the file is missing
//	}
//	logger, closer, err := logging.NewFileLogger(s.LogFilePath(), cfg, "netauditor", version)
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
// Components receive the logger explicitly; tests pass logging.Discard().
//
// # Environment Configuration
//
// LOG_LEVEL overrides the configured level:
//
//	LOG_LEVEL=debug netauditor audit
package logging
