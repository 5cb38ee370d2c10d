package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"warden/database"
	"warden/models"
)

// MembershipRepository implements the MembershipRepository interface
type MembershipRepository struct {
	q queryable
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *database.DB) *MembershipRepository {
	return &MembershipRepository{q: db.Pool}
}

// newMembershipRepositoryWithTx creates a new membership repository with a transaction
func newMembershipRepositoryWithTx(tx queryable) *MembershipRepository {
	return &MembershipRepository{q: tx}
}

// Get returns a member's standing in a guild, or nil when none is recorded
func (r *MembershipRepository) Get(ctx context.Context, guildID, userID string) (*models.UserMembership, error) {
	query := `
		SELECT gm.guild, gm.user_id, u.name, gm.can_use_bot
		FROM guild_membership gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.guild = $1 AND gm.user_id = $2
	`

	var m models.UserMembership
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&m.GuildID,
		&m.UserID,
		&m.Name,
		&m.CanUseBot,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership of user %s in guild %s: %w", userID, guildID, err)
	}

	return &m, nil
}

// Ensure records a membership if missing. The user row must already exist.
// Returns false without writing when the guild has not been provisioned.
func (r *MembershipRepository) Ensure(ctx context.Context, guildID, userID string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM guild WHERE id = $1)`, guildID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check guild %s: %w", guildID, err)
	}
	if !exists {
		return false, nil
	}

	query := `
		INSERT INTO guild_membership (guild, user_id)
		VALUES ($1, $2)
		ON CONFLICT (guild, user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, query, guildID, userID); err != nil {
		return false, fmt.Errorf("failed to ensure membership of user %s in guild %s: %w", userID, guildID, err)
	}

	return true, nil
}

// SetCanUseBot updates the bot access gate
func (r *MembershipRepository) SetCanUseBot(ctx context.Context, guildID, userID string, canUseBot bool) error {
	query := `
		UPDATE guild_membership
		SET can_use_bot = $1
		WHERE guild = $2 AND user_id = $3
	`

	result, err := r.q.Exec(ctx, query, canUseBot, guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to update membership of user %s in guild %s: %w", userID, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership of user %s in guild %s not found", userID, guildID)
	}

	return nil
}
