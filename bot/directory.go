package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"warden/auth"
)

// sessionDirectory resolves guilds and members from the gateway state cache,
// falling back to the REST API on a miss
type sessionDirectory struct {
	session *discordgo.Session
}

// NewDirectory creates an auth.Directory backed by a Discord session
func NewDirectory(session *discordgo.Session) auth.Directory {
	return &sessionDirectory{session: session}
}

func (d *sessionDirectory) Guild(ctx context.Context, guildID string) (*auth.GuildView, error) {
	if view, ok := guildFromState(d.session.State, guildID); ok {
		return view, nil
	}

	guild, err := d.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	return toGuildView(guild), nil
}

func (d *sessionDirectory) Member(ctx context.Context, guildID, userID string) (*auth.MemberView, error) {
	if view, ok := memberFromState(d.session.State, guildID, userID); ok {
		return view, nil
	}

	member, err := d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s of guild %s: %w", userID, guildID, err)
	}
	return toMemberView(member), nil
}

// guildFromState copies a cached guild while holding the state lock.
// Guilds cached without roles are reported as misses.
func guildFromState(state *discordgo.State, guildID string) (*auth.GuildView, bool) {
	if state == nil {
		return nil, false
	}
	guild, err := state.Guild(guildID)
	if err != nil {
		return nil, false
	}

	state.RLock()
	defer state.RUnlock()
	if len(guild.Roles) == 0 {
		return nil, false
	}
	return toGuildView(guild), true
}

// memberFromState copies a cached member while holding the state lock
func memberFromState(state *discordgo.State, guildID, userID string) (*auth.MemberView, bool) {
	if state == nil {
		return nil, false
	}
	member, err := state.Member(guildID, userID)
	if err != nil {
		return nil, false
	}

	state.RLock()
	defer state.RUnlock()
	return toMemberView(member), true
}

// toGuildView converts a Discord guild. The everyone role shares the guild's ID.
func toGuildView(g *discordgo.Guild) *auth.GuildView {
	view := &auth.GuildView{
		ID:             g.ID,
		Name:           g.Name,
		OwnerID:        g.OwnerID,
		EveryoneRoleID: g.ID,
		Roles:          make([]*auth.Role, 0, len(g.Roles)),
	}
	for _, r := range g.Roles {
		view.Roles = append(view.Roles, &auth.Role{
			ID:          r.ID,
			Name:        r.Name,
			Position:    r.Position,
			Managed:     r.Managed,
			Permissions: r.Permissions,
		})
	}
	return view
}

func toMemberView(m *discordgo.Member) *auth.MemberView {
	view := &auth.MemberView{RoleIDs: append([]string(nil), m.Roles...)}
	if m.User != nil {
		view.UserID = m.User.ID
	}
	view.Name = memberName(m)
	return view
}

// memberName prefers the guild nickname over the account name
func memberName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		return userName(m.User)
	}
	return ""
}

// userName prefers the global display name over the unique username
func userName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
