package owner

import (
	"context"
	"fmt"

	"warden/auth"
	"warden/command"
	"warden/models"
	"warden/service"
)

// Feature holds commands reserved for the bot owner
type Feature struct {
	stats service.StatsService
}

func NewFeature(stats service.StatsService) *Feature {
	return &Feature{stats: stats}
}

// Commands returns the owner commands
func (f *Feature) Commands() []*command.Command {
	return []*command.Command{
		{
			Name:        "guildcount",
			Help:        "Show how many servers are provisioned",
			Requirement: auth.Requirement{Category: models.CategoryOwner, OwnerOnly: true, Hidden: true},
			Run:         f.handleGuildCount,
		},
	}
}

func (f *Feature) handleGuildCount(ctx context.Context, inv *command.Invocation) error {
	count, err := f.stats.GuildCount(ctx)
	if err != nil {
		return err
	}
	return inv.Replier.Reply(command.ReplyPlain, fmt.Sprintf("Provisioned servers: %d", count))
}
