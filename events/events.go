package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGuildProvisioned    EventType = "guild_provisioned"
	EventTypeGuildConfigChanged  EventType = "guild_config_changed"
	EventTypeMembershipChanged   EventType = "membership_changed"
	EventTypeSubscriptionRemoved EventType = "subscription_removed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GuildProvisionedEvent is emitted when a default config row was created for a guild
type GuildProvisionedEvent struct {
	GuildID      string `json:"guild_id"`
	GuildName    string `json:"guild_name"`
	MinModRoleID string `json:"min_mod_role_id"`
}

func (e GuildProvisionedEvent) Type() EventType {
	return EventTypeGuildProvisioned
}

// GuildConfigChangedEvent is emitted after a guild setting was updated
type GuildConfigChangedEvent struct {
	GuildID string `json:"guild_id"`
	Setting string `json:"setting"`
	Value   string `json:"value"`
}

func (e GuildConfigChangedEvent) Type() EventType {
	return EventTypeGuildConfigChanged
}

// MembershipChangedEvent is emitted when a user's bot access in a guild changes
type MembershipChangedEvent struct {
	GuildID   string `json:"guild_id"`
	UserID    string `json:"user_id"`
	CanUseBot bool   `json:"can_use_bot"`
}

func (e MembershipChangedEvent) Type() EventType {
	return EventTypeMembershipChanged
}

// SubscriptionRemovedEvent is emitted after an RSS subscription was deleted
type SubscriptionRemovedEvent struct {
	SubscriptionID int64  `json:"subscription_id"`
	ChannelID      string `json:"channel_id"`
	GuildID        string `json:"guild_id"`
}

func (e SubscriptionRemovedEvent) Type() EventType {
	return EventTypeSubscriptionRemoved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, t := range []EventType{
		EventTypeGuildProvisioned,
		EventTypeGuildConfigChanged,
		EventTypeMembershipChanged,
		EventTypeSubscriptionRemoved,
	} {
		b.Subscribe(t, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously so a slow subscriber never blocks the emitter
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work.
// Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending events")

	// Events outlive the transaction, so they must not inherit its context
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range b.pending {
		if b.real != nil {
			b.real.Emit(eventCtx, ev)
		}
	}
	b.pending = nil
	return nil
}

// Discard is called after db rollback or to clear state.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
