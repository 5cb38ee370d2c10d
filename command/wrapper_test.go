package command

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warden/auth"
	"warden/models"
	"warden/service"
)

func allowAll() *mockAuthorizer {
	a := new(mockAuthorizer)
	a.On("CanExecute", mock.Anything, mock.Anything, mock.Anything).Return(auth.Decision{Outcome: auth.Allow})
	return a
}

func TestWrapper_SuccessRecordsMetric(t *testing.T) {
	metrics := newRecordingMetrics()
	replier := &recordingReplier{}
	wrapper := NewWrapper(allowAll(), metrics, time.Second)

	ran := false
	cmd := &Command{Name: "ping", Run: func(ctx context.Context, inv *Invocation) error {
		ran = true
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return inv.Replier.Reply(ReplyPlain, "pong")
	}}

	wrapper.Execute(context.Background(), cmd, newInvocation(replier))

	assert.True(t, ran)
	assert.Equal(t, 1, metrics.attempts["ping"])
	assert.Equal(t, 1, metrics.successes["ping"])
	assert.Empty(t, metrics.failures["ping"])
	assert.Equal(t, []sentReply{{ReplyPlain, "pong"}}, replier.replies)
}

func TestWrapper_DenyPrecedesExecution(t *testing.T) {
	authorizer := new(mockAuthorizer)
	authorizer.On("CanExecute", mock.Anything, mock.Anything, mock.Anything).
		Return(auth.Decision{Outcome: auth.Deny, Reason: auth.ReasonMissingRole})
	metrics := newRecordingMetrics()
	replier := &recordingReplier{}
	wrapper := NewWrapper(authorizer, metrics, time.Second)

	mutations := 0
	cmd := &Command{
		Name:        "volume",
		Requirement: auth.Requirement{Category: models.CategoryModeration, GuildOnly: true},
		Run: func(ctx context.Context, inv *Invocation) error {
			mutations++
			return nil
		},
	}

	wrapper.Execute(context.Background(), cmd, newInvocation(replier, "50"))

	assert.Zero(t, mutations)
	assert.Equal(t, []sentReply{{ReplyWarning, auth.ReasonMissingRole}}, replier.replies)
	assert.Equal(t, []string{"authorization"}, metrics.denied["volume"])
	assert.Zero(t, metrics.successes["volume"])
	authorizer.AssertCalled(t, "CanExecute", mock.Anything, cmd.Requirement, auth.Subject{GuildID: "101", UserID: "u1", UserName: "user"})
}

func TestWrapper_SilentDenySendsNothing(t *testing.T) {
	authorizer := new(mockAuthorizer)
	authorizer.On("CanExecute", mock.Anything, mock.Anything, mock.Anything).
		Return(auth.Decision{Outcome: auth.Deny, Silent: true})
	replier := &recordingReplier{}
	wrapper := NewWrapper(authorizer, newRecordingMetrics(), time.Second)

	cmd := &Command{Name: "guildcount", Run: func(ctx context.Context, inv *Invocation) error {
		t.Fatal("command must not run")
		return nil
	}}

	wrapper.Execute(context.Background(), cmd, newInvocation(replier))

	assert.Empty(t, replier.replies)
}

func TestWrapper_ScenarioF_StorageErrorOnGuildFetch(t *testing.T) {
	authorizer := new(mockAuthorizer)
	authorizer.On("CanExecute", mock.Anything, mock.Anything, mock.Anything).Return(auth.Decision{
		Outcome: auth.Error,
		Err:     &service.StorageError{Op: "get guild", Err: errors.New("connection reset")},
	})
	metrics := newRecordingMetrics()
	replier := &recordingReplier{}
	wrapper := NewWrapper(authorizer, metrics, time.Second)

	cmd := &Command{Name: "settings", Run: func(ctx context.Context, inv *Invocation) error {
		t.Fatal("command must not run")
		return nil
	}}

	assert.NotPanics(t, func() {
		wrapper.Execute(context.Background(), cmd, newInvocation(replier))
	})

	assert.Equal(t, []sentReply{{ReplyError, Apology}}, replier.replies)
	assert.Equal(t, []string{"storage"}, metrics.failures["settings"])
}

func TestWrapper_ClassifiesRunErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantReply   sentReply
		wantFailure []string
		wantDenied  []string
	}{
		{
			name:       "validation",
			err:        Validation("please provide a valid id"),
			wantReply:  sentReply{ReplyWarning, "please provide a valid id"},
			wantDenied: []string{"validation"},
		},
		{
			name:       "forbidden",
			err:        Forbidden("that subscription belongs to another server"),
			wantReply:  sentReply{ReplyWarning, "that subscription belongs to another server"},
			wantDenied: []string{"authorization"},
		},
		{
			name:        "storage",
			err:         fmt.Errorf("failed to delete: %w", &service.StorageError{Op: "delete", Err: errors.New("boom")}),
			wantReply:   sentReply{ReplyError, Apology},
			wantFailure: []string{"storage"},
		},
		{
			name:        "timeout",
			err:         context.DeadlineExceeded,
			wantReply:   sentReply{ReplyError, Apology},
			wantFailure: []string{"storage"},
		},
		{
			name:        "unclassified",
			err:         errors.New("unexpected"),
			wantReply:   sentReply{ReplyError, Apology},
			wantFailure: []string{"domain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := newRecordingMetrics()
			replier := &recordingReplier{}
			wrapper := NewWrapper(allowAll(), metrics, time.Second)
			cmd := &Command{Name: "cmd", Run: func(ctx context.Context, inv *Invocation) error {
				return tt.err
			}}

			wrapper.Execute(context.Background(), cmd, newInvocation(replier))

			assert.Equal(t, []sentReply{tt.wantReply}, replier.replies)
			assert.Equal(t, tt.wantFailure, metrics.failures["cmd"])
			assert.Equal(t, tt.wantDenied, metrics.denied["cmd"])
			assert.Zero(t, metrics.successes["cmd"])
		})
	}
}

func TestWrapper_PanicIsolation(t *testing.T) {
	metrics := newRecordingMetrics()
	replier := &recordingReplier{}
	wrapper := NewWrapper(allowAll(), metrics, time.Second)

	cmd := &Command{Name: "boom", Run: func(ctx context.Context, inv *Invocation) error {
		var m map[string]int
		m["x"] = 1
		return nil
	}}

	require.NotPanics(t, func() {
		wrapper.Execute(context.Background(), cmd, newInvocation(replier))
	})

	assert.Equal(t, []sentReply{{ReplyError, Apology}}, replier.replies)
	assert.Equal(t, []string{"domain"}, metrics.failures["boom"])
}

func TestWrapper_PanicsDoNotLeakAcrossInvocations(t *testing.T) {
	metrics := newRecordingMetrics()
	wrapper := NewWrapper(allowAll(), metrics, time.Second)

	panicking := &Command{Name: "boom", Run: func(ctx context.Context, inv *Invocation) error {
		panic("bad state")
	}}
	healthy := &Command{Name: "ping", Run: func(ctx context.Context, inv *Invocation) error {
		return nil
	}}

	wrapper.Execute(context.Background(), panicking, newInvocation(&recordingReplier{}))
	wrapper.Execute(context.Background(), healthy, newInvocation(&recordingReplier{}))

	assert.Equal(t, 1, metrics.successes["ping"])
	assert.Equal(t, []string{"domain"}, metrics.failures["boom"])
}

func TestWrapper_TimeoutReachesCommand(t *testing.T) {
	metrics := newRecordingMetrics()
	replier := &recordingReplier{}
	wrapper := NewWrapper(allowAll(), metrics, 10*time.Millisecond)

	cmd := &Command{Name: "slow", Run: func(ctx context.Context, inv *Invocation) error {
		<-ctx.Done()
		return fmt.Errorf("failed to query: %w", ctx.Err())
	}}

	wrapper.Execute(context.Background(), cmd, newInvocation(replier))

	assert.Equal(t, []sentReply{{ReplyError, Apology}}, replier.replies)
	assert.Equal(t, []string{"storage"}, metrics.failures["slow"])
}

func TestWrapper_AuthorizerPanicRepliesWithApology(t *testing.T) {
	authorizer := new(mockAuthorizer)
	authorizer.On("CanExecute", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			var member *auth.MemberView
			_ = member.RoleIDs[0]
		}).
		Return(auth.Decision{Outcome: auth.Allow})
	metrics := newRecordingMetrics()
	replier := &recordingReplier{}
	wrapper := NewWrapper(authorizer, metrics, time.Second)

	cmd := &Command{Name: "settings", Run: func(ctx context.Context, inv *Invocation) error {
		t.Fatal("command must not run")
		return nil
	}}

	require.NotPanics(t, func() {
		wrapper.Execute(context.Background(), cmd, newInvocation(replier))
	})

	assert.Equal(t, []sentReply{{ReplyError, Apology}}, replier.replies)
	assert.Equal(t, []string{"domain"}, metrics.failures["settings"])
	assert.Zero(t, metrics.successes["settings"])
}

func TestWrapper_AuthorizationErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"storage", fmt.Errorf("failed to load guild configuration: %w", &service.StorageError{Op: "get guild", Err: errors.New("reset")}), "storage"},
		{"deadline", fmt.Errorf("failed to look up guild 101: %w", context.DeadlineExceeded), "storage"},
		{"platform", fmt.Errorf("failed to look up member u1: %w", errors.New("discord unavailable")), "domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := new(mockAuthorizer)
			authorizer.On("CanExecute", mock.Anything, mock.Anything, mock.Anything).
				Return(auth.Decision{Outcome: auth.Error, Err: tt.err})
			metrics := newRecordingMetrics()
			replier := &recordingReplier{}

			NewWrapper(authorizer, metrics, time.Second).Execute(context.Background(),
				&Command{Name: "cmd", Run: func(ctx context.Context, inv *Invocation) error { return nil }},
				newInvocation(replier))

			assert.Equal(t, []string{tt.want}, metrics.failures["cmd"])
			assert.Equal(t, []sentReply{{ReplyError, Apology}}, replier.replies)
		})
	}
}
