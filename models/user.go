package models

// User represents a Discord user known to the bot
type User struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// UserMembership represents a user's standing inside one guild
type UserMembership struct {
	GuildID   string `db:"guild"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	CanUseBot bool   `db:"can_use_bot"` // Ban/allow gate, independent of role thresholds
}
