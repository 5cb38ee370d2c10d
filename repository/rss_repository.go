package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"warden/database"
	"warden/models"
)

// RSSRepository implements the RSSRepository interface
type RSSRepository struct {
	q queryable
}

// NewRSSRepository creates a new RSS subscription repository
func NewRSSRepository(db *database.DB) *RSSRepository {
	return &RSSRepository{q: db.Pool}
}

// newRSSRepositoryWithTx creates a new RSS subscription repository with a transaction
func newRSSRepositoryWithTx(tx queryable) *RSSRepository {
	return &RSSRepository{q: tx}
}

// Create adds a subscription. Subscribing a channel to the same feed twice returns the
// existing subscription.
func (r *RSSRepository) Create(ctx context.Context, channelID, feedSource string) (*models.RSSSubscription, error) {
	query := `
		INSERT INTO rss_subscription (channel, feed_source)
		VALUES ($1, $2)
		ON CONFLICT (channel, feed_source) DO UPDATE SET feed_source = EXCLUDED.feed_source
		RETURNING id, channel, feed_source, created_at
	`

	var sub models.RSSSubscription
	err := r.q.QueryRow(ctx, query, channelID, feedSource).Scan(
		&sub.ID,
		&sub.ChannelID,
		&sub.FeedSource,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription for channel %s: %w", channelID, err)
	}

	return &sub, nil
}

// GetByID returns a subscription, or nil when not found
func (r *RSSRepository) GetByID(ctx context.Context, id int64) (*models.RSSSubscription, error) {
	query := `
		SELECT id, channel, feed_source, created_at
		FROM rss_subscription
		WHERE id = $1
	`

	var sub models.RSSSubscription
	err := r.q.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.ChannelID,
		&sub.FeedSource,
		&sub.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription %d: %w", id, err)
	}

	return &sub, nil
}

// ListByGuild returns the subscriptions of every channel in a guild, oldest first
func (r *RSSRepository) ListByGuild(ctx context.Context, guildID string) ([]*models.RSSSubscription, error) {
	query := `
		SELECT s.id, s.channel, s.feed_source, s.created_at
		FROM rss_subscription s
		JOIN text_channel c ON c.id = s.channel
		WHERE c.guild = $1
		ORDER BY s.id
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for guild %s: %w", guildID, err)
	}

	subs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.RSSSubscription])
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscriptions for guild %s: %w", guildID, err)
	}

	return subs, nil
}

// Delete removes a subscription
func (r *RSSRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM rss_subscription WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription %d not found", id)
	}
	return nil
}
