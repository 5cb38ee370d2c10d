package command

import (
	"context"

	"warden/auth"
)

// Command is a named bot command. Authorization metadata lives in Requirement and
// domain logic in Run; the Wrapper supplies everything else.
type Command struct {
	Name        string
	Aliases     []string
	Help        string
	Arguments   string // Usage hint, e.g. "<role mention>"
	Requirement auth.Requirement
	Run         func(ctx context.Context, inv *Invocation) error
}

// Usage returns the command name followed by its argument hint
func (c *Command) Usage(prefix string) string {
	if c.Arguments == "" {
		return prefix + c.Name
	}
	return prefix + c.Name + " " + c.Arguments
}

// ReplyKind selects how a reply is presented
type ReplyKind int

const (
	ReplyPlain ReplyKind = iota
	ReplyWarning
	ReplyError
)

// Replier sends responses back to where a command was invoked
type Replier interface {
	Reply(kind ReplyKind, message string) error
	ReactSuccess() error
}

// User is a mentioned user with the display name seen in the message
type User struct {
	ID   string
	Name string
}

// Invocation is a single parsed command call
type Invocation struct {
	ID             string
	GuildID        string // Empty for direct messages
	ChannelID      string
	ChannelName    string
	AuthorID       string
	AuthorName     string
	Args           []string
	MentionedUsers []User
	MentionedRoles []string
	Replier        Replier
}

// Subject returns the identity the authorization engine evaluates
func (inv *Invocation) Subject() auth.Subject {
	return auth.Subject{
		GuildID:  inv.GuildID,
		UserID:   inv.AuthorID,
		UserName: inv.AuthorName,
	}
}

// Arg returns the i-th argument, or "" when absent
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}
