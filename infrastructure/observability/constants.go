package observability

// Metric name prefixes
const (
	MetricPrefix = "warden"
)

// Metric names
const (
	// Command metrics
	CommandAttemptsTotal = MetricPrefix + ".commands.attempts_total"
	CommandSuccessTotal  = MetricPrefix + ".commands.success_total"
	CommandDeniedTotal   = MetricPrefix + ".commands.denied_total"
	CommandFailuresTotal = MetricPrefix + ".commands.failures_total"

	// Rate limiting
	CommandsThrottledTotal = MetricPrefix + ".commands.throttled_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelCommand   = "command"
	LabelReason    = "reason"
	LabelEventType = "event_type"

	// Error labels
	LabelErrorType = "error_type"
)
