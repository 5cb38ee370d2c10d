package auth

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"warden/models"
)

// ConfigStore is the subset of the guild configuration store the engine needs
type ConfigStore interface {
	Get(ctx context.Context, guildID string) (*models.GuildConfig, error)
	Create(ctx context.Context, seed *models.GuildSeed) error
}

// Provisioner creates a default configuration for guilds seen for the first time
type Provisioner struct {
	store    ConfigStore
	resolver *Resolver
}

// NewProvisioner creates a provisioner writing to the given store
func NewProvisioner(store ConfigStore, resolver *Resolver) *Provisioner {
	return &Provisioner{store: store, resolver: resolver}
}

// Seed builds the default configuration for a guild. Every threshold starts at the
// everyone role except moderation, which starts at the invoking member's highest
// non-managed role.
func (p *Provisioner) Seed(guild *GuildView, member *MemberView) *models.GuildSeed {
	modRole := guild.EveryoneRoleID
	if member != nil {
		if best := p.resolver.HighestRole(guild, member, true); best != nil {
			modRole = best.ID
		}
	}

	return &models.GuildSeed{
		ID:             guild.ID,
		Name:           guild.Name,
		DefaultVolume:  models.DefaultVolume,
		MinBaseRoleID:  guild.EveryoneRoleID,
		MinModRoleID:   modRole,
		MinVoiceRoleID: guild.EveryoneRoleID,
		MinNSFWRoleID:  guild.EveryoneRoleID,
	}
}

// Provision writes the seed configuration. Racing provisioners are harmless since
// Create is idempotent.
func (p *Provisioner) Provision(ctx context.Context, guild *GuildView, member *MemberView) error {
	seed := p.Seed(guild, member)
	if err := p.store.Create(ctx, seed); err != nil {
		return fmt.Errorf("failed to provision guild %s: %w", guild.ID, err)
	}

	log.WithFields(log.Fields{
		"guildID":  guild.ID,
		"modRole":  seed.MinModRoleID,
		"everyone": seed.MinBaseRoleID,
	}).Info("Provisioned guild configuration")
	return nil
}
