package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warden/command"
	"warden/command/commandtest"
	"warden/service"
)

func lookup(t *testing.T, f *Feature, name string) *command.Command {
	t.Helper()
	for _, cmd := range f.Commands() {
		if cmd.Name == name {
			return cmd
		}
	}
	require.Failf(t, "command not found", name)
	return nil
}

func TestBotBan(t *testing.T) {
	ctx := context.Background()

	t.Run("bans the mentioned user", func(t *testing.T) {
		members := new(service.MockMembershipService)
		members.On("SetCanUseBot", ctx, "101", "u2", "target", false).Return(nil)
		replier := &commandtest.Replier{}
		inv := commandtest.Invocation(replier, "<@u2>")
		inv.MentionedUsers = []command.User{{ID: "u2", Name: "target"}}

		require.NoError(t, lookup(t, NewFeature(members, "owner"), "botban").Run(ctx, inv))

		assert.Equal(t, 1, replier.Reactions())
		members.AssertExpectations(t)
	})

	tests := []struct {
		name    string
		mention []command.User
		kind    command.Kind
	}{
		{"no mention", nil, command.ValidationDeny},
		{"bot owner", []command.User{{ID: "owner", Name: "owner"}}, command.AuthorizationDeny},
		{"self", []command.User{{ID: "u1", Name: "user"}}, command.ValidationDeny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := new(service.MockMembershipService)
			inv := commandtest.Invocation(&commandtest.Replier{})
			inv.MentionedUsers = tt.mention

			err := lookup(t, NewFeature(members, "owner"), "botban").Run(ctx, inv)

			assert.Equal(t, tt.kind, command.Classify(err).Kind)
			members.AssertNotCalled(t, "SetCanUseBot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBotUnban(t *testing.T) {
	ctx := context.Background()
	members := new(service.MockMembershipService)
	members.On("SetCanUseBot", ctx, "101", "u1", "user", true).Return(nil)
	replier := &commandtest.Replier{}
	inv := commandtest.Invocation(replier)
	inv.MentionedUsers = []command.User{{ID: "u1", Name: "user"}}

	require.NoError(t, lookup(t, NewFeature(members, "owner"), "botunban").Run(ctx, inv))

	assert.Equal(t, 1, replier.Reactions())
	members.AssertExpectations(t)
}
