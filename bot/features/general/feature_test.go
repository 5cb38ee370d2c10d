package general

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/auth"
	"warden/command"
	"warden/command/commandtest"
	"warden/models"
)

func noop(ctx context.Context, inv *command.Invocation) error { return nil }

func setup(t *testing.T) (*Feature, *command.Registry) {
	t.Helper()
	registry := command.NewRegistry()
	f := NewFeature(registry, "~", func() time.Duration { return 42 * time.Millisecond })
	registry.MustRegister(f.Commands()...)
	registry.MustRegister(
		&command.Command{
			Name:        "unsubscribe",
			Aliases:     []string{"removesub"},
			Help:        "Remove a feed subscription",
			Arguments:   "<id>",
			Requirement: auth.Requirement{Category: models.CategoryModeration, GuildOnly: true},
			Run:         noop,
		},
		&command.Command{
			Name:        "guildcount",
			Requirement: auth.Requirement{Category: models.CategoryOwner, OwnerOnly: true, Hidden: true},
			Run:         noop,
		},
	)
	return f, registry
}

func run(t *testing.T, registry *command.Registry, name string, inv *command.Invocation) error {
	t.Helper()
	cmd, ok := registry.Lookup(name)
	require.True(t, ok, name)
	return cmd.Run(context.Background(), inv)
}

func TestPing(t *testing.T) {
	_, registry := setup(t)
	replier := &commandtest.Replier{}
	inv := commandtest.Invocation(replier)
	inv.GuildID = ""

	require.NoError(t, run(t, registry, "ping", inv))

	assert.Equal(t, "Pong! Heartbeat latency is 42ms", replier.Replies()[0].Message)

	cmd, _ := registry.Lookup("ping")
	assert.False(t, cmd.Requirement.GuildOnly)
}

func TestHelp_ListsVisibleCommands(t *testing.T) {
	_, registry := setup(t)
	replier := &commandtest.Replier{}

	require.NoError(t, run(t, registry, "help", commandtest.Invocation(replier)))

	msg := replier.Replies()[0].Message
	assert.Contains(t, msg, "`~ping` Check that the bot is responsive")
	assert.Contains(t, msg, "`~unsubscribe <id>` Remove a feed subscription")
	assert.NotContains(t, msg, "guildcount")
}

func TestHelp_SingleCommand(t *testing.T) {
	_, registry := setup(t)
	replier := &commandtest.Replier{}

	require.NoError(t, run(t, registry, "help", commandtest.Invocation(replier, "~removesub")))

	msg := replier.Replies()[0].Message
	assert.Contains(t, msg, "`~unsubscribe <id>`")
	assert.Contains(t, msg, "Aliases: removesub")
	assert.Contains(t, msg, "Only usable in a server.")
}

func TestHelp_UnknownOrHidden(t *testing.T) {
	_, registry := setup(t)

	for _, name := range []string{"nope", "guildcount"} {
		err := run(t, registry, "help", commandtest.Invocation(&commandtest.Replier{}, name))
		assert.Equal(t, command.ValidationDeny, command.Classify(err).Kind, name)
	}
}
