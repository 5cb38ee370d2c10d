package auth

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"warden/models"
	"warden/service"
)

var (
	// ErrProvisioningExhausted is returned when a guild is still missing after provisioning
	ErrProvisioningExhausted = errors.New("guild configuration missing after provisioning")
	// ErrNoThreshold is returned for a category with no threshold column
	ErrNoThreshold = errors.New("no threshold role for category")
)

// MembershipChecker reports the per-guild bot ban flag
type MembershipChecker interface {
	CanUseBot(ctx context.Context, guildID, userID string) (bool, error)
}

type configState int

const (
	configMissing configState = iota
	configProvisioning
	configReady
)

// Engine decides whether an invocation may run
type Engine struct {
	configs     ConfigStore
	members     MembershipChecker
	directory   Directory
	resolver    *Resolver
	provisioner *Provisioner
	ownerID     string
}

// NewEngine creates an authorization engine. ownerID is the bot owner's user ID.
func NewEngine(configs ConfigStore, members MembershipChecker, directory Directory, ownerID string) *Engine {
	resolver := NewResolver()
	return &Engine{
		configs:     configs,
		members:     members,
		directory:   directory,
		resolver:    resolver,
		provisioner: NewProvisioner(configs, resolver),
		ownerID:     ownerID,
	}
}

// IsOwner reports whether the user is the bot owner
func (e *Engine) IsOwner(userID string) bool {
	return e.ownerID != "" && userID == e.ownerID
}

// CanExecute evaluates the requirement for the subject. It never mutates guild state
// other than provisioning a missing configuration.
func (e *Engine) CanExecute(ctx context.Context, req Requirement, subject Subject) Decision {
	if req.GuildOnly && subject.GuildID == "" {
		return denied(ReasonGuildOnly)
	}

	isOwner := e.IsOwner(subject.UserID)
	if req.OwnerOnly && !isOwner {
		return deniedSilently()
	}
	if req.Category == models.CategoryOwner {
		if isOwner {
			return allowed()
		}
		return deniedSilently()
	}

	if subject.GuildID == "" {
		return allowed()
	}

	guild, err := e.directory.Guild(ctx, subject.GuildID)
	if err != nil {
		return failed(fmt.Errorf("failed to look up guild %s: %w", subject.GuildID, err))
	}
	member, err := e.directory.Member(ctx, subject.GuildID, subject.UserID)
	if err != nil {
		return failed(fmt.Errorf("failed to look up member %s: %w", subject.UserID, err))
	}

	config, err := e.resolveConfig(ctx, guild, member)
	if err != nil {
		return failed(err)
	}

	threshold, ok := config.ThresholdRole(req.Category)
	if !ok {
		return failed(fmt.Errorf("%w: %q", ErrNoThreshold, req.Category))
	}

	canUse, err := e.members.CanUseBot(ctx, subject.GuildID, subject.UserID)
	if err != nil {
		return failed(fmt.Errorf("failed to check membership: %w", err))
	}
	if !canUse {
		return denied(ReasonNotPermitted)
	}

	if !e.resolver.MeetsThreshold(guild, member, threshold) {
		log.WithFields(log.Fields{
			"guildID":   subject.GuildID,
			"userID":    subject.UserID,
			"category":  req.Category,
			"threshold": threshold,
		}).Debug("Member below threshold role")
		return denied(ReasonMissingRole)
	}

	return allowed()
}

// resolveConfig loads the guild configuration, provisioning it at most once
func (e *Engine) resolveConfig(ctx context.Context, guild *GuildView, member *MemberView) (*models.GuildConfig, error) {
	var config *models.GuildConfig
	state := configMissing

	for state != configReady {
		found, err := e.configs.Get(ctx, guild.ID)
		switch {
		case err == nil:
			config, state = found, configReady
		case !errors.Is(err, service.ErrGuildNotFound):
			return nil, fmt.Errorf("failed to load guild configuration: %w", err)
		case state == configMissing:
			state = configProvisioning
			if err := e.provisioner.Provision(ctx, guild, member); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("guild %s: %w", guild.ID, ErrProvisioningExhausted)
		}
	}

	return config, nil
}
