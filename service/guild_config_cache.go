package service

import (
	"context"
	"sync"
	"time"

	"warden/events"
	"warden/models"

	log "github.com/sirupsen/logrus"
)

type cachedConfig struct {
	config    models.GuildConfig
	expiresAt time.Time
}

// CachedGuildConfigs is a read-through cache in front of a GuildConfigStore.
// Entries expire after the TTL and are dropped early when a change event arrives,
// so a settings update becomes visible within at most one TTL.
type CachedGuildConfigs struct {
	store GuildConfigStore
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedConfig
}

// NewCachedGuildConfigs wraps store with a TTL cache
func NewCachedGuildConfigs(store GuildConfigStore, ttl time.Duration) *CachedGuildConfigs {
	return &CachedGuildConfigs{
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedConfig),
	}
}

// Get returns the cached config or loads it from the store.
// Misses are never cached so a freshly provisioned guild is seen immediately.
func (c *CachedGuildConfigs) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	c.mu.RLock()
	entry, ok := c.entries[guildID]
	c.mu.RUnlock()

	if ok && c.now().Before(entry.expiresAt) {
		cfg := entry.config
		return &cfg, nil
	}

	cfg, err := c.store.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.entries[guildID] = cachedConfig{config: *cfg, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
	}

	return cfg, nil
}

// Create provisions a guild and drops any cached entry
func (c *CachedGuildConfigs) Create(ctx context.Context, seed *models.GuildSeed) error {
	err := c.store.Create(ctx, seed)
	if seed != nil {
		c.Invalidate(seed.ID)
	}
	return err
}

// UpdateMinRole updates the store and drops the cached entry
func (c *CachedGuildConfigs) UpdateMinRole(ctx context.Context, guildID string, category models.Category, roleID string) error {
	err := c.store.UpdateMinRole(ctx, guildID, category, roleID)
	c.Invalidate(guildID)
	return err
}

// UpdateVolume updates the store and drops the cached entry
func (c *CachedGuildConfigs) UpdateVolume(ctx context.Context, guildID string, volume int) error {
	err := c.store.UpdateVolume(ctx, guildID, volume)
	c.Invalidate(guildID)
	return err
}

// Invalidate drops the cached entry for a guild
func (c *CachedGuildConfigs) Invalidate(guildID string) {
	c.mu.Lock()
	delete(c.entries, guildID)
	c.mu.Unlock()
}

// SubscribeTo invalidates entries when guild config events are emitted on the bus
func (c *CachedGuildConfigs) SubscribeTo(bus *events.Bus) {
	handler := func(ctx context.Context, event events.Event) {
		var guildID string
		switch e := event.(type) {
		case events.GuildConfigChangedEvent:
			guildID = e.GuildID
		case events.GuildProvisionedEvent:
			guildID = e.GuildID
		default:
			return
		}
		log.WithField("guild_id", guildID).Debug("Invalidating cached guild config")
		c.Invalidate(guildID)
	}

	bus.Subscribe(events.EventTypeGuildConfigChanged, handler)
	bus.Subscribe(events.EventTypeGuildProvisioned, handler)
}
