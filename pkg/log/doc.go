// Package log provides structured event logging for the probe control
// framework.
//
// This package defines the Logger interface and Event types for
// capturing control-level events: register traffic, hardware state
// changes, validation decisions, faults and driver lifecycle. It is
// separate from operational logging (slog) - event capture provides a
// complete machine-readable trace of everything the framework did to a
// probe, which matters when reconstructing how a campaign drove the
// hardware.
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For audit trails: write to binary file
//	cfg.Logger, _ = log.NewFileLogger("/var/log/bpd/session.plog")
//
//	// Both: use MultiLogger
//	cfg.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Log files use CBOR encoding with integer keys for compactness.
package log
