// Package httpserver wraps net/http with graceful shutdown, environment-driven
// timeouts, lifecycle hooks and probe handlers.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received, then drains connections within the configured shutdown timeout:
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStartHook(func(l *slog.Logger) {
//			l.Info("listening", "addr", cfg.Addr)
//		}),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Start failures are wrapped with ErrStart and shutdown failures with
// ErrShutdown for errors.Is inspection.
package httpserver
