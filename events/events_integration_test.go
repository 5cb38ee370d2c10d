package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan GuildConfigChangedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeGuildConfigChanged, func(ctx context.Context, event Event) {
		defer wg.Done()
		if changed, ok := event.(GuildConfigChangedEvent); ok {
			eventReceived <- changed
		} else {
			t.Errorf("Expected GuildConfigChangedEvent, got %T", event)
		}
	})

	testEvent := GuildConfigChangedEvent{
		GuildID: "101",
		Setting: "min_mod_role_id",
		Value:   "2",
	}

	transactionalBus.Publish(testEvent)

	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)

	wg.Wait()

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan GuildProvisionedEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeGuildProvisioned, func(ctx context.Context, event Event) {
		defer wg.Done()
		if provisioned, ok := event.(GuildProvisionedEvent); ok {
			received <- provisioned
		}
	})

	for _, id := range []string{"1", "2", "3"} {
		transactionalBus.Publish(GuildProvisionedEvent{GuildID: id})
	}

	assert.NoError(t, transactionalBus.Flush(context.Background()))
	wg.Wait()
	close(received)

	guildIDs := make(map[string]bool)
	for ev := range received {
		guildIDs[ev.GuildID] = true
	}

	assert.Len(t, guildIDs, 3)
	assert.True(t, guildIDs["1"])
	assert.True(t, guildIDs["2"])
	assert.True(t, guildIDs["3"])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)

	mainBus.Subscribe(EventTypeMembershipChanged, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(MembershipChangedEvent{GuildID: "101", UserID: "3", CanUseBot: false})

	// Discard instead of flush (simulating transaction rollback)
	transactionalBus.Discard()

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	seen := make(map[EventType]bool)
	var wg sync.WaitGroup
	wg.Add(4)

	bus.SubscribeAll(func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		seen[event.Type()] = true
		mu.Unlock()
	})

	ctx := context.Background()
	bus.Emit(ctx, GuildProvisionedEvent{GuildID: "1"})
	bus.Emit(ctx, GuildConfigChangedEvent{GuildID: "1"})
	bus.Emit(ctx, MembershipChangedEvent{GuildID: "1"})
	bus.Emit(ctx, SubscriptionRemovedEvent{GuildID: "1"})
	wg.Wait()

	assert.Len(t, seen, 4)
}

func TestEmit_RecoversFromPanickingHandler(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	bus.Subscribe(EventTypeGuildProvisioned, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeGuildProvisioned, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), GuildProvisionedEvent{GuildID: "1"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy handler was not called")
	}
}
