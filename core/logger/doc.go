// Package logger builds the zap logger used across the service.
//
// Level "debug" selects zap's development preset, anything else production
// with the parsed level (unknown levels fall back to info). Format "console"
// gives colored human output for the CLI; the default is JSON. Every entry
// carries a "service" field.
//
// Request handlers derive a per-request logger with WithRayID:
//
//	l := logger.WithRayID(h.service.logger, c)
//	l.Warn("Upload rejected", zap.Error(err))
package logger
