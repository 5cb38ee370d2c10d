package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/events"
	"warden/models"
	"warden/repository/testutil"
	"warden/service"
)

func TestUnitOfWork_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	var mu sync.Mutex
	var received []events.Event
	bus.SubscribeAll(func(ctx context.Context, e events.Event) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
	})
	receivedCount := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(received)
	}

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	configs := service.NewGuildConfigService(factory)

	t.Run("rollback discards writes and events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		created, err := uow.GuildRepository().Create(ctx, testutil.CreateTestGuildSeed("101"))
		require.NoError(t, err)
		require.True(t, created)
		uow.EventBus().Publish(events.GuildProvisionedEvent{GuildID: "101"})

		require.NoError(t, uow.Rollback())

		_, err = configs.Get(ctx, "101")
		assert.ErrorIs(t, err, service.ErrGuildNotFound)
		time.Sleep(50 * time.Millisecond)
		assert.Zero(t, receivedCount())
	})

	t.Run("service create then update publishes after commit", func(t *testing.T) {
		require.NoError(t, configs.Create(ctx, testutil.CreateTestGuildSeed("101")))
		require.NoError(t, configs.Create(ctx, testutil.CreateTestGuildSeed("101")))
		require.NoError(t, configs.UpdateMinRole(ctx, "101", models.CategoryModeration, "3003"))

		cfg, err := configs.Get(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, "3003", cfg.MinModRoleID)

		// One provisioned event for two creates, plus the config change
		assert.Eventually(t, func() bool { return receivedCount() == 2 }, time.Second, 10*time.Millisecond)
	})

	t.Run("subscription removal checks guild ownership", func(t *testing.T) {
		subs := service.NewSubscriptionService(factory)
		require.NoError(t, configs.Create(ctx, testutil.CreateTestGuildSeed("202")))

		sub, err := subs.Subscribe(ctx, testutil.CreateTestChannel("c1", "101"), "https://example.com/feed.xml")
		require.NoError(t, err)

		err = subs.Remove(ctx, "202", sub.ID)
		assert.ErrorIs(t, err, service.ErrSubscriptionForeignGuild)

		list, err := subs.ListForGuild(ctx, "101")
		require.NoError(t, err)
		assert.Len(t, list, 1, "foreign guild must not delete")

		require.NoError(t, subs.Remove(ctx, "101", sub.ID))
		err = subs.Remove(ctx, "101", sub.ID)
		assert.True(t, errors.Is(err, service.ErrSubscriptionNotFound))
	})

	t.Run("begin twice fails", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		assert.Error(t, uow.Begin(ctx))
	})

	t.Run("repository access before begin panics", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.GuildRepository() })
	})
}
