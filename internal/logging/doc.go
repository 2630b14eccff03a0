// Package logging provides structured logging for correctme.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used across the client, the terminal UI and the development stub
// service.
//
// # Log Levels
//
//   - Debug: request/response bodies, speech frames
//   - Info: submissions, service requests, discovery results
//   - Warn: recoverable issues (unreadable config, speech unavailable)
//   - Error: failed submissions, server failures
//
// # Silent by Default
//
// The interactive UI owns the terminal, so logging is disabled unless a level
// is requested through --log-level or the CORRECTME_LOG_LEVEL environment
// variable. Set CORRECTME_LOG_FILE to send output to a file instead of stderr:
//
//	CORRECTME_LOG_LEVEL=debug CORRECTME_LOG_FILE=/tmp/correctme.log correctme
//
// # Structured Logging
//
//	logging.Info("Submission resolved",
//	    zap.String("submission_id", id),
//	    zap.String("state", "succeeded"),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
