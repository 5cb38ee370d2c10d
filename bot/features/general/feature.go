package general

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warden/auth"
	"warden/command"
	"warden/models"
)

// Feature provides commands usable by everyone, including outside servers
type Feature struct {
	registry *command.Registry
	prefix   string
	latency  func() time.Duration
}

// NewFeature creates the general feature. latency reports the gateway heartbeat round trip.
func NewFeature(registry *command.Registry, prefix string, latency func() time.Duration) *Feature {
	return &Feature{
		registry: registry,
		prefix:   prefix,
		latency:  latency,
	}
}

// Commands returns the general commands
func (f *Feature) Commands() []*command.Command {
	anywhere := auth.Requirement{Category: models.CategoryGeneral}

	return []*command.Command{
		{
			Name:        "ping",
			Help:        "Check that the bot is responsive",
			Requirement: anywhere,
			Run:         f.handlePing,
		},
		{
			Name:        "help",
			Aliases:     []string{"commands"},
			Help:        "List commands or describe one",
			Arguments:   "[command]",
			Requirement: anywhere,
			Run:         f.handleHelp,
		},
	}
}

func (f *Feature) handlePing(ctx context.Context, inv *command.Invocation) error {
	return inv.Replier.Reply(command.ReplyPlain,
		fmt.Sprintf("Pong! Heartbeat latency is %dms", f.latency().Milliseconds()))
}

func (f *Feature) handleHelp(ctx context.Context, inv *command.Invocation) error {
	if name := inv.Arg(0); name != "" {
		cmd, ok := f.registry.Lookup(strings.TrimPrefix(name, f.prefix))
		if !ok || cmd.Requirement.Hidden {
			return command.Validation(fmt.Sprintf("unknown command %q", name))
		}
		return inv.Replier.Reply(command.ReplyPlain, f.describe(cmd))
	}

	var b strings.Builder
	b.WriteString("**Commands**")
	for _, cmd := range f.registry.Visible() {
		fmt.Fprintf(&b, "\n`%s` %s", cmd.Usage(f.prefix), cmd.Help)
	}
	fmt.Fprintf(&b, "\nUse `%shelp <command>` for details.", f.prefix)

	return inv.Replier.Reply(command.ReplyPlain, b.String())
}

func (f *Feature) describe(cmd *command.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s`\n%s", cmd.Usage(f.prefix), cmd.Help)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(&b, "\nAliases: %s", strings.Join(cmd.Aliases, ", "))
	}
	if cmd.Requirement.GuildOnly {
		b.WriteString("\nOnly usable in a server.")
	}
	return b.String()
}
