package membership

import (
	"context"

	"warden/auth"
	"warden/command"
	"warden/models"
	"warden/service"

	log "github.com/sirupsen/logrus"
)

// Feature lets moderators revoke and restore a member's access to the bot
type Feature struct {
	members service.MembershipService
	ownerID string
}

// NewFeature creates a new membership feature instance
func NewFeature(members service.MembershipService, ownerID string) *Feature {
	return &Feature{
		members: members,
		ownerID: ownerID,
	}
}

// Commands returns the membership commands
func (f *Feature) Commands() []*command.Command {
	moderation := auth.Requirement{Category: models.CategoryModeration, GuildOnly: true}

	return []*command.Command{
		{
			Name:        "botban",
			Help:        "Stop a member from using the bot in this server",
			Arguments:   "<@user>",
			Requirement: moderation,
			Run: func(ctx context.Context, inv *command.Invocation) error {
				return f.setAccess(ctx, inv, false)
			},
		},
		{
			Name:        "botunban",
			Help:        "Let a banned member use the bot again",
			Arguments:   "<@user>",
			Requirement: moderation,
			Run: func(ctx context.Context, inv *command.Invocation) error {
				return f.setAccess(ctx, inv, true)
			},
		},
	}
}

func (f *Feature) setAccess(ctx context.Context, inv *command.Invocation, canUseBot bool) error {
	if len(inv.MentionedUsers) == 0 {
		return command.Validation("please mention a user")
	}
	target := inv.MentionedUsers[0]

	if !canUseBot {
		if target.ID == f.ownerID {
			return command.Forbidden("the bot owner cannot be banned")
		}
		if target.ID == inv.AuthorID {
			return command.Validation("you cannot ban yourself")
		}
	}

	if err := f.members.SetCanUseBot(ctx, inv.GuildID, target.ID, target.Name, canUseBot); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guild":     inv.GuildID,
		"target":    target.ID,
		"moderator": inv.AuthorID,
		"canUseBot": canUseBot,
	}).Info("Bot access changed")

	return inv.Replier.ReactSuccess()
}
