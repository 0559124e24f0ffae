// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The single factory New builds a *slog.Logger from a set of Option functions:
// output format (text or json), minimum level, static attributes applied to
// every record, and ContextExtractor callbacks that pull request-scoped values
// (tenant id, notification id) out of the context on every Handle call.
//
// Helper constructors such as Error, TenantID and Component live in attr.go
// and keep attribute naming consistent across the codebase.
//
// # Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithTextFormatter(),
//		logger.WithAttr(logger.Component("directory")),
//	)
//	log.InfoContext(ctx, "tenant resolved", logger.TenantID(id))
package logger
