// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "CF_PORT"
	EnvLogLevel        = "CF_LOG_LEVEL"
	EnvShutdownTimeout = "CF_SHUTDOWN_TIMEOUT"

	// Snapshot
	EnvSnapshotPath         = "CF_SNAPSHOT_PATH"
	EnvSnapshotPollInterval = "CF_SNAPSHOT_POLL_INTERVAL"

	// Query understanding
	EnvSuggestionLimit = "CF_SUGGESTION_LIMIT"

	// Metrics Auth Feature
	EnvMetricsUsername = "CF_METRICS_USERNAME"
	EnvMetricsPassword = "CF_METRICS_PASSWORD"

	// Sentry Feature
	EnvSentryDSN         = "CF_SENTRY_DSN"
	EnvSentryEnvironment = "CF_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "CF_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "CF_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "CF_BETTERSTACK_ENDPOINT"
)
