package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"warden/database"
	"warden/models"
)

// ChannelRepository implements the ChannelRepository interface
type ChannelRepository struct {
	q queryable
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *database.DB) *ChannelRepository {
	return &ChannelRepository{q: db.Pool}
}

// newChannelRepositoryWithTx creates a new channel repository with a transaction
func newChannelRepositoryWithTx(tx queryable) *ChannelRepository {
	return &ChannelRepository{q: tx}
}

// GetByID returns a text channel, or nil when unknown
func (r *ChannelRepository) GetByID(ctx context.Context, channelID string) (*models.TextChannel, error) {
	rows, err := r.q.Query(ctx, `SELECT id, guild, name FROM text_channel WHERE id = $1`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel %s: %w", channelID, err)
	}

	channel, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.TextChannel])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan channel %s: %w", channelID, err)
	}

	return channel, nil
}

// Upsert records a channel under its guild and refreshes its name
func (r *ChannelRepository) Upsert(ctx context.Context, channel *models.TextChannel) error {
	query := `
		INSERT INTO text_channel (id, guild, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`

	if _, err := r.q.Exec(ctx, query, channel.ID, channel.GuildID, channel.Name); err != nil {
		return fmt.Errorf("failed to upsert channel %s: %w", channel.ID, err)
	}
	return nil
}
