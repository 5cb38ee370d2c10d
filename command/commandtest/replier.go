// Package commandtest provides test doubles for command handlers.
package commandtest

import (
	"sync"

	"warden/command"
)

// Reply is one message sent through a Replier
type Reply struct {
	Kind    command.ReplyKind
	Message string
}

// Replier records replies and reactions
type Replier struct {
	mu        sync.Mutex
	replies   []Reply
	reactions int
}

// Reply implements command.Replier
func (r *Replier) Reply(kind command.ReplyKind, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, Reply{Kind: kind, Message: message})
	return nil
}

// ReactSuccess implements command.Replier
func (r *Replier) ReactSuccess() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reactions++
	return nil
}

// Replies returns a copy of the recorded replies
func (r *Replier) Replies() []Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Reply(nil), r.replies...)
}

// Reactions returns the number of success reactions
func (r *Replier) Reactions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reactions
}

// Invocation builds a guild invocation from user "u1" in channel "c1" of guild "101"
func Invocation(replier command.Replier, args ...string) *command.Invocation {
	return &command.Invocation{
		ID:          "test-invocation",
		GuildID:     "101",
		ChannelID:   "c1",
		ChannelName: "general",
		AuthorID:    "u1",
		AuthorName:  "user",
		Args:        args,
		Replier:     replier,
	}
}
