package auth

import "math"

// Resolver compares a member's best role against a guild's threshold role
type Resolver struct{}

// NewResolver creates a role hierarchy resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// IsOverride reports whether the member passes every threshold regardless of rank:
// the guild owner and holders of an Administrator role.
func (r *Resolver) IsOverride(guild *GuildView, member *MemberView) bool {
	if guild.OwnerID != "" && guild.OwnerID == member.UserID {
		return true
	}
	for _, id := range member.RoleIDs {
		if role := guild.Role(id); role != nil && role.IsAdministrator() {
			return true
		}
	}
	return false
}

// Rank returns the member's highest role position. Every member implicitly holds the
// everyone role, which sets the floor. Roles missing from the guild are ignored.
func (r *Resolver) Rank(guild *GuildView, member *MemberView) int {
	rank := math.MinInt
	if everyone := guild.Role(guild.EveryoneRoleID); everyone != nil {
		rank = everyone.Position
	}
	for _, id := range member.RoleIDs {
		if role := guild.Role(id); role != nil && role.Position > rank {
			rank = role.Position
		}
	}
	return rank
}

// MeetsThreshold reports whether the member's rank is at least the threshold role's rank.
// A threshold role that no longer exists is met by nobody except owner and admins.
func (r *Resolver) MeetsThreshold(guild *GuildView, member *MemberView, thresholdRoleID string) bool {
	if r.IsOverride(guild, member) {
		return true
	}
	if thresholdRoleID != "" && thresholdRoleID == guild.EveryoneRoleID {
		return true
	}

	threshold := guild.Role(thresholdRoleID)
	if threshold == nil {
		return false
	}

	return r.Rank(guild, member) >= threshold.Position
}

// HighestRole returns the member's highest positioned role, or nil when the member holds
// none. Managed roles are skipped when skipManaged is set.
func (r *Resolver) HighestRole(guild *GuildView, member *MemberView, skipManaged bool) *Role {
	var best *Role
	for _, id := range member.RoleIDs {
		role := guild.Role(id)
		if role == nil || role.ID == guild.EveryoneRoleID {
			continue
		}
		if skipManaged && role.Managed {
			continue
		}
		if best == nil || role.Position > best.Position {
			best = role
		}
	}
	return best
}
