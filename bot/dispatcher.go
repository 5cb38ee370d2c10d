package bot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"warden/command"
)

// Executor runs an authorized command invocation
type Executor interface {
	Execute(ctx context.Context, cmd *command.Command, inv *command.Invocation)
}

// ThrottleMetrics records invocations dropped by the rate limiter
type ThrottleMetrics interface {
	RecordCommandThrottled(command string)
}

// Dispatcher turns prefixed chat messages into command executions
type Dispatcher struct {
	prefix   string
	registry *command.Registry
	executor Executor
	limiter  *UserLimiter
	metrics  ThrottleMetrics
}

// NewDispatcher creates a dispatcher for messages starting with prefix
func NewDispatcher(prefix string, registry *command.Registry, executor Executor, limiter *UserLimiter, metrics ThrottleMetrics) *Dispatcher {
	return &Dispatcher{
		prefix:   prefix,
		registry: registry,
		executor: executor,
		limiter:  limiter,
		metrics:  metrics,
	}
}

// Prefix returns the command prefix
func (d *Dispatcher) Prefix() string {
	return d.prefix
}

// Dispatch runs the command named in the invocation. It returns false when the name is
// unknown or the author is over their rate limit.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, inv *command.Invocation) bool {
	cmd, ok := d.registry.Lookup(name)
	if !ok {
		return false
	}

	if d.limiter != nil && !d.limiter.Allow(inv.AuthorID) {
		log.WithFields(log.Fields{
			"command": cmd.Name,
			"userID":  inv.AuthorID,
		}).Debug("Dropping rate limited command")
		d.metrics.RecordCommandThrottled(cmd.Name)
		return false
	}

	d.executor.Execute(ctx, cmd, inv)
	return true
}

// ParseMessage extracts a command name and invocation from a chat message.
// Messages from bots or without the prefix are ignored.
func ParseMessage(prefix string, m *discordgo.Message) (string, *command.Invocation, bool) {
	if m.Author == nil || m.Author.Bot {
		return "", nil, false
	}

	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}

	inv := &command.Invocation{
		ID:             uuid.New().String(),
		GuildID:        m.GuildID,
		ChannelID:      m.ChannelID,
		AuthorID:       m.Author.ID,
		AuthorName:     userName(m.Author),
		Args:           fields[1:],
		MentionedRoles: append([]string(nil), m.MentionRoles...),
	}
	if m.Member != nil && m.Member.Nick != "" {
		inv.AuthorName = m.Member.Nick
	}
	for _, u := range m.Mentions {
		inv.MentionedUsers = append(inv.MentionedUsers, command.User{ID: u.ID, Name: userName(u)})
	}

	return strings.ToLower(fields[0]), inv, true
}
