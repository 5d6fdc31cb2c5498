// Package logger provides structured logging for campaign runs.
//
// It builds on log/slog with three additions: context extractors that
// inject run-scoped attributes (such as the campaign run ID) into every
// record, a fan-out handler for writing the same record to multiple
// destinations, and an optional Sentry sink that is enabled only when
// SENTRY_DSN is configured.
//
// Create a logger for a run:
//
//	log := logger.New(campaign.RunIDExtractor())
//	log.InfoContext(ctx, "message sent", slog.String("email", to))
//
// If the Sentry DSN is empty or initialization fails, logging silently
// falls back to stdout, so the same code path works in development and
// production.
package logger
