package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"warden/events"
)

// MessagePublisher sends raw payloads to a message bus subject
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// PublishMetrics records forwarded events
type PublishMetrics interface {
	RecordNATSMessagePublished(eventType string)
}

// EventEnvelope wraps a domain event for the message bus
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// EventForwarder republishes committed bus events to NATS
type EventForwarder struct {
	publisher     MessagePublisher
	metrics       PublishMetrics
	subjectPrefix string
}

// NewEventForwarder creates a forwarder publishing under subjectPrefix
func NewEventForwarder(publisher MessagePublisher, metrics PublishMetrics, subjectPrefix string) *EventForwarder {
	return &EventForwarder{
		publisher:     publisher,
		metrics:       metrics,
		subjectPrefix: subjectPrefix,
	}
}

// SubjectFor maps an event to its NATS subject
func (f *EventForwarder) SubjectFor(event events.Event) string {
	return fmt.Sprintf("%s.%s", f.subjectPrefix, event.Type())
}

// Attach subscribes the forwarder to every event on the bus
func (f *EventForwarder) Attach(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := f.Forward(ctx, event); err != nil {
			log.WithError(err).WithField("eventType", event.Type()).Error("Failed to forward event")
		}
	})
}

// Forward publishes a single event
func (f *EventForwarder) Forward(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope, err := json.Marshal(EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     time.Now().UTC(),
		SourceService: "warden",
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := f.SubjectFor(event)
	if err := f.publisher.Publish(ctx, subject, envelope); err != nil {
		return err
	}

	f.metrics.RecordNATSMessagePublished(string(event.Type()))
	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"subject":   subject,
	}).Debug("Forwarded event to NATS")
	return nil
}
