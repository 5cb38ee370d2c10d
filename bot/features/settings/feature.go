package settings

import (
	"context"

	"warden/auth"
	"warden/command"
	"warden/models"
	"warden/service"
)

// Feature handles guild settings management
type Feature struct {
	configs   service.GuildConfigStore
	directory auth.Directory
}

// NewFeature creates a new settings feature instance
func NewFeature(configs service.GuildConfigStore, directory auth.Directory) *Feature {
	return &Feature{
		configs:   configs,
		directory: directory,
	}
}

var moderation = auth.Requirement{Category: models.CategoryModeration, GuildOnly: true}

// Commands returns the settings commands
func (f *Feature) Commands() []*command.Command {
	return []*command.Command{
		f.roleCommand("baserole", models.CategoryGeneral, "general commands"),
		f.roleCommand("modrole", models.CategoryModeration, "moderation commands"),
		f.roleCommand("voicerole", models.CategoryVoice, "voice commands"),
		f.roleCommand("nsfwrole", models.CategoryNSFW, "nsfw commands"),
		{
			Name:        "volume",
			Help:        "Set the default playback volume",
			Arguments:   "<0-100>",
			Requirement: moderation,
			Run:         f.handleVolume,
		},
		{
			Name:        "settings",
			Aliases:     []string{"config"},
			Help:        "Show this server's bot settings",
			Requirement: auth.Requirement{Category: models.CategoryGeneral, GuildOnly: true},
			Run:         f.handleShow,
		},
	}
}

func (f *Feature) roleCommand(name string, category models.Category, scope string) *command.Command {
	return &command.Command{
		Name:        name,
		Help:        "Set the minimum role for " + scope,
		Arguments:   "<role mention | everyone>",
		Requirement: moderation,
		Run: func(ctx context.Context, inv *command.Invocation) error {
			return f.handleMinRole(ctx, inv, category)
		},
	}
}
