package models

import "time"

// Volume bounds for a guild's default audio volume
const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 100
)

// GuildConfig represents the persisted per-guild settings
type GuildConfig struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	DefaultVolume  int       `db:"default_volume"`
	MinBaseRoleID  string    `db:"min_base_role_id"`  // Minimum role for general commands
	MinModRoleID   string    `db:"min_mod_role_id"`   // Minimum role for moderation commands
	MinVoiceRoleID string    `db:"min_voice_role_id"` // Minimum role for voice commands
	MinNSFWRoleID  string    `db:"min_nsfw_role_id"`  // Minimum role for nsfw commands
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// GuildSeed holds the values used to provision a guild that has no config row yet
type GuildSeed struct {
	ID             string
	Name           string
	DefaultVolume  int
	MinBaseRoleID  string
	MinModRoleID   string
	MinVoiceRoleID string
	MinNSFWRoleID  string
}

// ValidVolume reports whether v is inside the accepted volume range
func ValidVolume(v int) bool {
	return v >= MinVolume && v <= MaxVolume
}
