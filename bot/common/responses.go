package common

import (
	"fmt"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// SuccessReaction is added to a command message that completed without output
const SuccessReaction = "✅"

// maxMessageLength is Discord's content limit for a single message
const maxMessageLength = 2000

// SendReply posts content as a reply to a message. Mentions in the content never ping.
func SendReply(s *discordgo.Session, guildID, channelID, messageID, content string) error {
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: Truncate(content),
		Reference: &discordgo.MessageReference{
			MessageID: messageID,
			ChannelID: channelID,
			GuildID:   guildID,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	if err != nil {
		return fmt.Errorf("failed to send reply in channel %s: %w", channelID, err)
	}
	return nil
}

// Truncate shortens content to Discord's message limit, counted in characters
func Truncate(content string) string {
	if utf8.RuneCountInString(content) <= maxMessageLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxMessageLength-1]) + "…"
}

// ReactSuccess marks a message as handled
func ReactSuccess(s *discordgo.Session, channelID, messageID string) error {
	if err := s.MessageReactionAdd(channelID, messageID, SuccessReaction); err != nil {
		return fmt.Errorf("failed to react to message %s: %w", messageID, err)
	}
	return nil
}
