package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"warden/config"
)

// MetricsProvider manages OpenTelemetry metrics for the bot
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	commandAttempts  metric.Int64Counter
	commandSuccesses metric.Int64Counter
	commandDenials   metric.Int64Counter
	commandFailures  metric.Int64Counter
	commandThrottled metric.Int64Counter
	natsPublished    metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry meter provider and instruments
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)
	otel.SetMeterProvider(mp.meterProvider)

	if err := mp.useMeter(mp.meterProvider.Meter("warden")); err != nil {
		return err
	}

	mp.initialized = true
	log.Info("Metrics provider initialized")
	return nil
}

// useMeter creates all instruments from the given meter
func (mp *MetricsProvider) useMeter(meter metric.Meter) error {
	mp.meter = meter

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&mp.commandAttempts, CommandAttemptsTotal, "Total number of command invocations"},
		{&mp.commandSuccesses, CommandSuccessTotal, "Total number of commands that completed"},
		{&mp.commandDenials, CommandDeniedTotal, "Total number of commands rejected by authorization or validation"},
		{&mp.commandFailures, CommandFailuresTotal, "Total number of commands that failed unexpectedly"},
		{&mp.commandThrottled, CommandsThrottledTotal, "Total number of commands dropped by the rate limiter"},
		{&mp.natsPublished, NATSMessagesPublishedTotal, "Total number of events published to NATS"},
	}

	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name,
			metric.WithDescription(c.description),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.target = counter
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordCommandAttempt records a command invocation
func (mp *MetricsProvider) RecordCommandAttempt(command string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandAttempts.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelCommand, command)),
	)
}

// RecordCommandSuccess records a completed command
func (mp *MetricsProvider) RecordCommandSuccess(command string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandSuccesses.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelCommand, command)),
	)
}

// RecordCommandDenied records a command rejected before or during execution
func (mp *MetricsProvider) RecordCommandDenied(command, reason string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandDenials.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelCommand, command),
			attribute.String(LabelReason, reason),
		),
	)
}

// RecordCommandFailure records an unexpected command failure
func (mp *MetricsProvider) RecordCommandFailure(command, kind string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandFailures.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelCommand, command),
			attribute.String(LabelErrorType, kind),
		),
	)
}

// RecordCommandThrottled records a message dropped by the per-user rate limiter
func (mp *MetricsProvider) RecordCommandThrottled(command string) {
	if !mp.isEnabled() {
		return
	}
	mp.commandThrottled.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelCommand, command)),
	)
}

// RecordNATSMessagePublished records an event forwarded to NATS
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}
	mp.natsPublished.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelEventType, eventType)),
	)
}

// isEnabled checks if metrics are enabled and instruments exist
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meter != nil
}
