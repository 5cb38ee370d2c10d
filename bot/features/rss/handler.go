package rss

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"warden/bot/common"
	"warden/command"
	"warden/models"
	"warden/service"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSubscribe(ctx context.Context, inv *command.Invocation) error {
	feed, ok := parseFeedURL(inv.Arg(0))
	if !ok {
		return command.Validation("please provide a valid feed url")
	}

	channel := &models.TextChannel{
		ID:      inv.ChannelID,
		GuildID: inv.GuildID,
		Name:    inv.ChannelName,
	}

	sub, err := f.subscriptions.Subscribe(ctx, channel, feed)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guild":          inv.GuildID,
		"channel":        inv.ChannelID,
		"subscriptionID": sub.ID,
	}).Info("Feed subscription added")

	return inv.Replier.Reply(command.ReplyPlain,
		fmt.Sprintf("Subscribed %s to %s (id %d)", common.ChannelMention(inv.ChannelID), feed, sub.ID))
}

func (f *Feature) handleList(ctx context.Context, inv *command.Invocation) error {
	subs, err := f.subscriptions.ListForGuild(ctx, inv.GuildID)
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		return inv.Replier.Reply(command.ReplyPlain, "There are no feed subscriptions in this server.")
	}

	var b strings.Builder
	b.WriteString("**Feed subscriptions**")
	for _, sub := range subs {
		fmt.Fprintf(&b, "\n`%d` %s in %s", sub.ID, sub.FeedSource, common.ChannelMention(sub.ChannelID))
		if !sub.CreatedAt.IsZero() {
			fmt.Fprintf(&b, ", added %s", common.FormatDiscordTimestamp(sub.CreatedAt, "R"))
		}
	}

	return inv.Replier.Reply(command.ReplyPlain, b.String())
}

func (f *Feature) handleUnsubscribe(ctx context.Context, inv *command.Invocation) error {
	id, err := strconv.ParseInt(inv.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return command.Validation("please provide a valid id")
	}

	err = f.subscriptions.Remove(ctx, inv.GuildID, id)
	switch {
	case errors.Is(err, service.ErrSubscriptionNotFound):
		return command.Validation("subscription not found")
	case errors.Is(err, service.ErrSubscriptionForeignGuild):
		return command.Forbidden("that subscription belongs to another server")
	case err != nil:
		return err
	}

	return inv.Replier.ReactSuccess()
}

// parseFeedURL accepts absolute http(s) URLs, optionally wrapped in <> to suppress embeds
func parseFeedURL(raw string) (string, bool) {
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	return u.String(), true
}
