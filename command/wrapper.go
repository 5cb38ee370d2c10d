package command

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"

	"warden/auth"
)

// Authorizer decides whether a command may run for a subject
type Authorizer interface {
	CanExecute(ctx context.Context, req auth.Requirement, subject auth.Subject) auth.Decision
}

// Metrics records command outcomes
type Metrics interface {
	RecordCommandAttempt(command string)
	RecordCommandSuccess(command string)
	RecordCommandDenied(command, reason string)
	RecordCommandFailure(command, kind string)
}

// Wrapper runs commands with authorization, a deadline and failure isolation
type Wrapper struct {
	authorizer Authorizer
	metrics    Metrics
	timeout    time.Duration
}

// NewWrapper creates an execution wrapper. A zero timeout disables the per-invocation deadline.
func NewWrapper(authorizer Authorizer, metrics Metrics, timeout time.Duration) *Wrapper {
	return &Wrapper{
		authorizer: authorizer,
		metrics:    metrics,
		timeout:    timeout,
	}
}

// Execute authorizes and runs a command. It never panics; every failure ends in a
// log entry, a metric and, unless silent, a reply.
func (w *Wrapper) Execute(ctx context.Context, cmd *Command, inv *Invocation) {
	logger := log.WithFields(log.Fields{
		"command":      cmd.Name,
		"invocationID": inv.ID,
		"guildID":      inv.GuildID,
		"userID":       inv.AuthorID,
	})

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Errorf("Unrecovered panic in command wrapper\n%s", debug.Stack())
			w.metrics.RecordCommandFailure(cmd.Name, DomainError.String())
		}
	}()

	w.metrics.RecordCommandAttempt(cmd.Name)

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	decision := w.authorize(ctx, cmd, inv)
	switch decision.Outcome {
	case auth.Allow:
	case auth.Deny:
		logger.WithFields(log.Fields{
			"reason": decision.Reason,
			"silent": decision.Silent,
		}).Debug("Command denied")
		w.metrics.RecordCommandDenied(cmd.Name, AuthorizationDeny.String())
		if !decision.Silent {
			w.reply(logger, inv, ReplyWarning, decision.Reason)
		}
		return
	default:
		kind := Classify(decision.Err).Kind
		logger.WithError(decision.Err).WithField("kind", kind).Error("Failed to authorize command")
		w.metrics.RecordCommandFailure(cmd.Name, kind.String())
		w.reply(logger, inv, ReplyError, Apology)
		return
	}

	start := time.Now()
	err := w.run(ctx, cmd, inv)
	logger = logger.WithField("duration", time.Since(start))

	if err == nil {
		logger.Debug("Command completed")
		w.metrics.RecordCommandSuccess(cmd.Name)
		return
	}

	failure := Classify(err)
	if failure.Expected() {
		logger.WithField("kind", failure.Kind).Debugf("Command rejected: %s", failure.UserMessage)
		w.metrics.RecordCommandDenied(cmd.Name, failure.Kind.String())
		w.reply(logger, inv, ReplyWarning, failure.UserMessage)
		return
	}

	logger.WithError(err).WithField("kind", failure.Kind).Error("Command failed")
	w.metrics.RecordCommandFailure(cmd.Name, failure.Kind.String())
	w.reply(logger, inv, ReplyError, Apology)
}

// authorize evaluates the command's requirement and converts a panic into an Error decision
func (w *Wrapper) authorize(ctx context.Context, cmd *Command, inv *Invocation) (decision auth.Decision) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("command", cmd.Name).Errorf("Authorization panicked: %v\n%s", r, debug.Stack())
			decision = auth.Decision{
				Outcome: auth.Error,
				Err:     Domain(fmt.Errorf("panic authorizing command %s: %v", cmd.Name, r)),
			}
		}
	}()
	return w.authorizer.CanExecute(ctx, cmd.Requirement, inv.Subject())
}

// run calls the command body and converts a panic into a DomainError
func (w *Wrapper) run(ctx context.Context, cmd *Command, inv *Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("command", cmd.Name).Errorf("Command panicked: %v\n%s", r, debug.Stack())
			err = Domain(fmt.Errorf("panic in command %s: %v", cmd.Name, r))
		}
	}()
	return cmd.Run(ctx, inv)
}

func (w *Wrapper) reply(logger *log.Entry, inv *Invocation, kind ReplyKind, message string) {
	if inv.Replier == nil {
		return
	}
	if err := inv.Replier.Reply(kind, message); err != nil {
		logger.WithError(err).Warn("Failed to send reply")
	}
}
