package rss

import (
	"warden/auth"
	"warden/command"
	"warden/models"
	"warden/service"
)

// Feature manages RSS feed subscriptions for guild channels
type Feature struct {
	subscriptions service.SubscriptionService
}

// NewFeature creates a new RSS feature instance
func NewFeature(subscriptions service.SubscriptionService) *Feature {
	return &Feature{subscriptions: subscriptions}
}

// Commands returns the RSS commands
func (f *Feature) Commands() []*command.Command {
	moderation := auth.Requirement{Category: models.CategoryModeration, GuildOnly: true}

	return []*command.Command{
		{
			Name:        "subscribe",
			Help:        "Post a feed's new entries in this channel",
			Arguments:   "<feed url>",
			Requirement: moderation,
			Run:         f.handleSubscribe,
		},
		{
			Name:        "subscriptions",
			Help:        "List this server's feed subscriptions",
			Requirement: auth.Requirement{Category: models.CategoryGeneral, GuildOnly: true},
			Run:         f.handleList,
		},
		{
			Name:        "unsubscribe",
			Aliases:     []string{"removesub", "removesubscription"},
			Help:        "Remove a feed subscription",
			Arguments:   "<id>",
			Requirement: moderation,
			Run:         f.handleUnsubscribe,
		},
	}
}
