// Package logger builds configured slog.Logger instances with consistent
// attribute naming across the application.
//
// Loggers are created through functional options:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, "linkbio"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers such as logger.Error and logger.UserID keep log keys
// uniform so records from different components aggregate cleanly.
//
// Context extractors registered via WithContextExtractors or WithContextValue
// run on every log call, injecting request-scoped values without the caller
// threading them through explicitly.
package logger
