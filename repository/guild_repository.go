package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"warden/database"
	"warden/models"
)

// GuildRepository implements the GuildRepository interface
type GuildRepository struct {
	q queryable
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(db *database.DB) *GuildRepository {
	return &GuildRepository{q: db.Pool}
}

// newGuildRepositoryWithTx creates a new guild repository with a transaction
func newGuildRepositoryWithTx(tx queryable) *GuildRepository {
	return &GuildRepository{q: tx}
}

var minRoleColumns = map[models.Category]string{
	models.CategoryGeneral:    "min_base_role_id",
	models.CategoryModeration: "min_mod_role_id",
	models.CategoryVoice:      "min_voice_role_id",
	models.CategoryNSFW:       "min_nsfw_role_id",
}

// GetByID retrieves a guild config by its Discord ID
func (r *GuildRepository) GetByID(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	query := `
		SELECT id, name, default_volume, min_base_role_id, min_mod_role_id,
		       min_voice_role_id, min_nsfw_role_id, created_at, updated_at
		FROM guild
		WHERE id = $1
	`

	var g models.GuildConfig
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&g.ID,
		&g.Name,
		&g.DefaultVolume,
		&g.MinBaseRoleID,
		&g.MinModRoleID,
		&g.MinVoiceRoleID,
		&g.MinNSFWRoleID,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild %s: %w", guildID, err)
	}

	return &g, nil
}

// Create inserts a guild config. An existing row is left untouched and false is returned.
func (r *GuildRepository) Create(ctx context.Context, seed *models.GuildSeed) (bool, error) {
	query := `
		INSERT INTO guild (id, name, default_volume, min_base_role_id, min_mod_role_id, min_voice_role_id, min_nsfw_role_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query,
		seed.ID,
		seed.Name,
		seed.DefaultVolume,
		seed.MinBaseRoleID,
		seed.MinModRoleID,
		seed.MinVoiceRoleID,
		seed.MinNSFWRoleID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create guild %s: %w", seed.ID, err)
	}

	return result.RowsAffected() == 1, nil
}

// UpdateMinRole sets the threshold role column for a category
func (r *GuildRepository) UpdateMinRole(ctx context.Context, guildID string, category models.Category, roleID string) error {
	column, ok := minRoleColumns[category]
	if !ok {
		return fmt.Errorf("no role column for category %q", category)
	}

	query := fmt.Sprintf(`UPDATE guild SET %s = $1 WHERE id = $2`, column)
	result, err := r.q.Exec(ctx, query, roleID, guildID)
	if err != nil {
		return fmt.Errorf("failed to update %s for guild %s: %w", column, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild %s not found", guildID)
	}

	return nil
}

// UpdateVolume sets the default volume
func (r *GuildRepository) UpdateVolume(ctx context.Context, guildID string, volume int) error {
	query := `UPDATE guild SET default_volume = $1 WHERE id = $2`

	result, err := r.q.Exec(ctx, query, volume, guildID)
	if err != nil {
		return fmt.Errorf("failed to update volume for guild %s: %w", guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild %s not found", guildID)
	}

	return nil
}

// Count returns the number of provisioned guilds
func (r *GuildRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM guild`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count guilds: %w", err)
	}
	return count, nil
}
