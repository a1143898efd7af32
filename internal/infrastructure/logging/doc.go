// Package logging provides structured logging for the till service.
//
// It wraps log/slog with terminal-specific defaults: every record carries
// the service name and version, output format and level come from the
// logging section of config.yaml, and derived loggers add component
// context via With.
//
// Levels: debug, info, warn, error. Unrecognised levels fall back to info
// rather than failing startup.
package logging
