package models

// Category groups commands by the minimum role a guild requires to run them
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryModeration Category = "moderation"
	CategoryVoice      Category = "voice"
	CategoryNSFW       Category = "nsfw"
	CategoryOwner      Category = "owner"
)

// ThresholdRole returns the role ID configured for the category.
// The second return value is false for categories without a role threshold.
func (g *GuildConfig) ThresholdRole(c Category) (string, bool) {
	switch c {
	case CategoryGeneral:
		return g.MinBaseRoleID, true
	case CategoryModeration:
		return g.MinModRoleID, true
	case CategoryVoice:
		return g.MinVoiceRoleID, true
	case CategoryNSFW:
		return g.MinNSFWRoleID, true
	default:
		return "", false
	}
}
