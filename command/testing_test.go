package command

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"warden/auth"
)

type sentReply struct {
	Kind    ReplyKind
	Message string
}

type recordingReplier struct {
	mu        sync.Mutex
	replies   []sentReply
	reactions int
}

func (r *recordingReplier) Reply(kind ReplyKind, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, sentReply{Kind: kind, Message: message})
	return nil
}

func (r *recordingReplier) ReactSuccess() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reactions++
	return nil
}

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) CanExecute(ctx context.Context, req auth.Requirement, subject auth.Subject) auth.Decision {
	args := m.Called(ctx, req, subject)
	return args.Get(0).(auth.Decision)
}

type recordingMetrics struct {
	mu        sync.Mutex
	attempts  map[string]int
	successes map[string]int
	denied    map[string][]string
	failures  map[string][]string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		attempts:  make(map[string]int),
		successes: make(map[string]int),
		denied:    make(map[string][]string),
		failures:  make(map[string][]string),
	}
}

func (m *recordingMetrics) RecordCommandAttempt(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[command]++
}

func (m *recordingMetrics) RecordCommandSuccess(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes[command]++
}

func (m *recordingMetrics) RecordCommandDenied(command, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[command] = append(m.denied[command], reason)
}

func (m *recordingMetrics) RecordCommandFailure(command, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[command] = append(m.failures[command], kind)
}

func newInvocation(replier Replier, args ...string) *Invocation {
	return &Invocation{
		ID:         "inv-1",
		GuildID:    "101",
		ChannelID:  "c1",
		AuthorID:   "u1",
		AuthorName: "user",
		Args:       args,
		Replier:    replier,
	}
}
