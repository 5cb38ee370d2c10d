package service

import (
	"context"
	"fmt"
	"strconv"

	"warden/events"
	"warden/models"

	log "github.com/sirupsen/logrus"
)

// guildConfigService implements the GuildConfigStore interface
type guildConfigService struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(uowFactory UnitOfWorkFactory) GuildConfigStore {
	return &guildConfigService{
		uowFactory: uowFactory,
	}
}

// Get retrieves the config row for a guild
func (s *guildConfigService) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	cfg, err := uow.GuildRepository().GetByID(ctx, guildID)
	if err != nil {
		return nil, storageErr("get guild config", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("guild %s: %w", guildID, ErrGuildNotFound)
	}

	return cfg, nil
}

// Create provisions a guild. A guild that already has a row is left untouched.
func (s *guildConfigService) Create(ctx context.Context, seed *models.GuildSeed) error {
	if seed == nil || seed.ID == "" {
		return fmt.Errorf("guild seed requires an ID")
	}
	if !models.ValidVolume(seed.DefaultVolume) {
		return fmt.Errorf("seed volume %d: %w", seed.DefaultVolume, ErrInvalidVolume)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	created, err := uow.GuildRepository().Create(ctx, seed)
	if err != nil {
		return storageErr("create guild config", err)
	}

	if created {
		uow.EventBus().Publish(events.GuildProvisionedEvent{
			GuildID:      seed.ID,
			GuildName:    seed.Name,
			MinModRoleID: seed.MinModRoleID,
		})
	}

	if err := uow.Commit(); err != nil {
		return storageErr("commit guild config", err)
	}

	log.WithFields(log.Fields{
		"guild_id": seed.ID,
		"created":  created,
	}).Info("Guild config provisioned")

	return nil
}

// UpdateMinRole sets the minimum role for a command category
func (s *guildConfigService) UpdateMinRole(ctx context.Context, guildID string, category models.Category, roleID string) error {
	if _, ok := (&models.GuildConfig{}).ThresholdRole(category); !ok {
		return fmt.Errorf("category %q: %w", category, ErrUnknownCategory)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	existing, err := uow.GuildRepository().GetByID(ctx, guildID)
	if err != nil {
		return storageErr("get guild config", err)
	}
	if existing == nil {
		return fmt.Errorf("guild %s: %w", guildID, ErrGuildNotFound)
	}

	if err := uow.GuildRepository().UpdateMinRole(ctx, guildID, category, roleID); err != nil {
		return storageErr("update min role", err)
	}

	uow.EventBus().Publish(events.GuildConfigChangedEvent{
		GuildID: guildID,
		Setting: "min_" + string(category) + "_role",
		Value:   roleID,
	})

	if err := uow.Commit(); err != nil {
		return storageErr("commit min role", err)
	}

	return nil
}

// UpdateVolume sets the default volume for a guild
func (s *guildConfigService) UpdateVolume(ctx context.Context, guildID string, volume int) error {
	if !models.ValidVolume(volume) {
		return fmt.Errorf("volume %d: %w", volume, ErrInvalidVolume)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	existing, err := uow.GuildRepository().GetByID(ctx, guildID)
	if err != nil {
		return storageErr("get guild config", err)
	}
	if existing == nil {
		return fmt.Errorf("guild %s: %w", guildID, ErrGuildNotFound)
	}

	if err := uow.GuildRepository().UpdateVolume(ctx, guildID, volume); err != nil {
		return storageErr("update volume", err)
	}

	uow.EventBus().Publish(events.GuildConfigChangedEvent{
		GuildID: guildID,
		Setting: "default_volume",
		Value:   strconv.Itoa(volume),
	})

	if err := uow.Commit(); err != nil {
		return storageErr("commit volume", err)
	}

	return nil
}
