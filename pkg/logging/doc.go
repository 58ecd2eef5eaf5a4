// Package logging provides structured logging utilities for the enablement generator.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("enablement", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("enablement", "v1.0.0", "debug")
//	logger.Info("generation started", "target", "Kube")
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("enablement", "v1.0.0", "warn")
//
// Text output for interactive use:
//
//	logging.SetDefaultLogger("enablement", "v1.0.0", "info", logging.FormatText)
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug enablement generate --options app.json
//	LOG_LEVEL=error enablement generate --options app.json
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "generation complete",
//	    "module": "enablement",
//	    "version": "v1.0.0",
//	    "files": 10
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "generator.(*DefaultGenerator).Make",
//	        "file": "generator.go",
//	        "line": 88
//	    },
//	    "msg": "rendering artifact",
//	    "module": "enablement",
//	    "version": "v1.0.0"
//	}
//
// # Integration
//
// This package is used by:
//   - cmd/enablement - default logger setup
//   - pkg/cli - command logging
//   - pkg/generator - artifact rendering and write logging
//   - pkg/oci - artifact packaging and push logging
package logging
