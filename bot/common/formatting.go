package common

import (
	"fmt"
	"time"

	"warden/auth"
	"warden/command"
)

// Decorate prefixes a reply with the marker for its kind
func Decorate(kind command.ReplyKind, message string) string {
	switch kind {
	case command.ReplyWarning:
		return "⚠️ " + message
	case command.ReplyError:
		return "❌ " + message
	default:
		return message
	}
}

// RoleName renders a role for display without pinging it
func RoleName(guild *auth.GuildView, roleID string) string {
	if roleID == guild.EveryoneRoleID {
		return "@everyone"
	}
	if role := guild.Role(roleID); role != nil {
		return "@" + role.Name
	}
	return fmt.Sprintf("deleted role (%s)", roleID)
}

// ChannelMention formats a clickable channel reference
func ChannelMention(channelID string) string {
	return fmt.Sprintf("<#%s>", channelID)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
