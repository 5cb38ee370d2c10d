package bot

import (
	"github.com/bwmarrin/discordgo"

	"warden/bot/common"
	"warden/command"
)

// messageReplier answers a command by replying to the message that invoked it
type messageReplier struct {
	session   *discordgo.Session
	guildID   string
	channelID string
	messageID string
}

func newMessageReplier(s *discordgo.Session, m *discordgo.Message) *messageReplier {
	return &messageReplier{
		session:   s,
		guildID:   m.GuildID,
		channelID: m.ChannelID,
		messageID: m.ID,
	}
}

func (r *messageReplier) Reply(kind command.ReplyKind, message string) error {
	return common.SendReply(r.session, r.guildID, r.channelID, r.messageID, common.Decorate(kind, message))
}

func (r *messageReplier) ReactSuccess() error {
	return common.ReactSuccess(r.session, r.channelID, r.messageID)
}
