package auth

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Role is a ranked permission group within a guild. Higher Position means more privileged.
type Role struct {
	ID          string
	Name        string
	Position    int
	Managed     bool // Owned by an integration or bot, never assigned by hand
	Permissions int64
}

// IsAdministrator reports whether the role carries the Administrator capability
func (r *Role) IsAdministrator() bool {
	return r.Permissions&discordgo.PermissionAdministrator != 0
}

// GuildView is a point-in-time snapshot of a guild's roles
type GuildView struct {
	ID             string
	Name           string
	OwnerID        string
	EveryoneRoleID string
	Roles          []*Role
}

// Role looks up a role by ID in the current role list
func (g *GuildView) Role(id string) *Role {
	for _, r := range g.Roles {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// MemberView is a point-in-time snapshot of a member's roles in one guild
type MemberView struct {
	UserID  string
	Name    string
	RoleIDs []string
}

// Directory looks up guild and member state on the chat platform
type Directory interface {
	Guild(ctx context.Context, guildID string) (*GuildView, error)
	Member(ctx context.Context, guildID, userID string) (*MemberView, error)
}
