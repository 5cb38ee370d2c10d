package service

import (
	"context"

	"warden/events"
	"warden/models"
)

// GuildRepository defines the interface for guild config data access
type GuildRepository interface {
	// GetByID retrieves a guild config, returning nil when the guild has no row
	GetByID(ctx context.Context, guildID string) (*models.GuildConfig, error)

	// Create inserts a guild config row. Returns false when the row already existed.
	Create(ctx context.Context, seed *models.GuildSeed) (bool, error)

	// UpdateMinRole sets the minimum role for a category
	UpdateMinRole(ctx context.Context, guildID string, category models.Category, roleID string) error

	// UpdateVolume sets the default volume
	UpdateVolume(ctx context.Context, guildID string, volume int) error

	// Count returns the number of provisioned guilds
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Upsert creates the user or refreshes its name
	Upsert(ctx context.Context, user *models.User) error
}

// MembershipRepository defines the interface for guild membership data access
type MembershipRepository interface {
	// Get returns the membership, or nil when none is recorded
	Get(ctx context.Context, guildID, userID string) (*models.UserMembership, error)

	// Ensure records a membership with bot access allowed if it does not exist yet.
	// Returns false when the guild has no config row, so nothing was recorded.
	Ensure(ctx context.Context, guildID, userID string) (bool, error)

	// SetCanUseBot updates the bot access gate for a member
	SetCanUseBot(ctx context.Context, guildID, userID string, canUseBot bool) error
}

// ChannelRepository defines the interface for text channel data access
type ChannelRepository interface {
	// GetByID returns the channel, or nil when unknown
	GetByID(ctx context.Context, channelID string) (*models.TextChannel, error)

	// Upsert records the channel and its guild
	Upsert(ctx context.Context, channel *models.TextChannel) error
}

// RSSRepository defines the interface for RSS subscription data access
type RSSRepository interface {
	// Create adds a subscription for a channel
	Create(ctx context.Context, channelID, feedSource string) (*models.RSSSubscription, error)

	// GetByID returns the subscription, or nil when not found
	GetByID(ctx context.Context, id int64) (*models.RSSSubscription, error)

	// ListByGuild returns all subscriptions of channels in a guild
	ListByGuild(ctx context.Context, guildID string) ([]*models.RSSSubscription, error)

	// Delete removes a subscription
	Delete(ctx context.Context, id int64) error
}

// EventPublisher collects events raised inside a unit of work
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork groups repository calls into one transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GuildRepository() GuildRepository
	UserRepository() UserRepository
	MembershipRepository() MembershipRepository
	ChannelRepository() ChannelRepository
	RSSRepository() RSSRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// GuildConfigStore defines the guild configuration operations used by the bot
type GuildConfigStore interface {
	// Get returns the guild config or ErrGuildNotFound
	Get(ctx context.Context, guildID string) (*models.GuildConfig, error)

	// Create provisions a guild. Creating an existing guild is a no-op.
	Create(ctx context.Context, seed *models.GuildSeed) error

	// UpdateMinRole sets the minimum role for a command category
	UpdateMinRole(ctx context.Context, guildID string, category models.Category, roleID string) error

	// UpdateVolume sets the default volume for a guild
	UpdateVolume(ctx context.Context, guildID string, volume int) error
}

// MembershipService defines membership operations
type MembershipService interface {
	// CanUseBot reports whether a user may use the bot in a guild
	CanUseBot(ctx context.Context, guildID, userID string) (bool, error)

	// RecordMember tracks a guild member seen through a platform event
	RecordMember(ctx context.Context, guildID, userID, name string) error

	// SetCanUseBot grants or revokes bot access for a member
	SetCanUseBot(ctx context.Context, guildID, userID, name string, canUseBot bool) error
}

// SubscriptionService defines RSS subscription operations
type SubscriptionService interface {
	// Subscribe adds a feed subscription for a channel in a guild
	Subscribe(ctx context.Context, channel *models.TextChannel, feedSource string) (*models.RSSSubscription, error)

	// ListForGuild lists the subscriptions of a guild
	ListForGuild(ctx context.Context, guildID string) ([]*models.RSSSubscription, error)

	// Remove deletes a subscription owned by the guild
	Remove(ctx context.Context, guildID string, id int64) error
}

// StatsService reports bot-wide figures
type StatsService interface {
	// GuildCount returns the number of provisioned guilds
	GuildCount(ctx context.Context) (int64, error)
}
