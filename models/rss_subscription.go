package models

import "time"

// TextChannel maps a Discord text channel to the guild it belongs to
type TextChannel struct {
	ID      string `db:"id"`
	GuildID string `db:"guild"`
	Name    string `db:"name"`
}

// RSSSubscription links a text channel to a feed source
type RSSSubscription struct {
	ID         int64     `db:"id"`
	ChannelID  string    `db:"channel"`
	FeedSource string    `db:"feed_source"`
	CreatedAt  time.Time `db:"created_at"`
}
