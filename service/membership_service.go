package service

import (
	"context"
	"fmt"

	"warden/events"
	"warden/models"
)

// membershipService implements the MembershipService interface
type membershipService struct {
	uowFactory UnitOfWorkFactory
}

// NewMembershipService creates a new membership service
func NewMembershipService(uowFactory UnitOfWorkFactory) MembershipService {
	return &membershipService{
		uowFactory: uowFactory,
	}
}

// CanUseBot reports whether a user may use the bot in a guild.
// Members without a recorded membership are allowed.
func (s *membershipService) CanUseBot(ctx context.Context, guildID, userID string) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	membership, err := uow.MembershipRepository().Get(ctx, guildID, userID)
	if err != nil {
		return false, storageErr("get membership", err)
	}
	if membership == nil {
		return true, nil
	}

	return membership.CanUseBot, nil
}

// RecordMember tracks a guild member. Guilds without a config row are skipped.
func (s *membershipService) RecordMember(ctx context.Context, guildID, userID, name string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Upsert(ctx, &models.User{ID: userID, Name: name}); err != nil {
		return storageErr("upsert user", err)
	}

	if _, err := uow.MembershipRepository().Ensure(ctx, guildID, userID); err != nil {
		return storageErr("ensure membership", err)
	}

	if err := uow.Commit(); err != nil {
		return storageErr("commit membership", err)
	}

	return nil
}

// SetCanUseBot grants or revokes bot access for a member
func (s *membershipService) SetCanUseBot(ctx context.Context, guildID, userID, name string, canUseBot bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Upsert(ctx, &models.User{ID: userID, Name: name}); err != nil {
		return storageErr("upsert user", err)
	}

	recorded, err := uow.MembershipRepository().Ensure(ctx, guildID, userID)
	if err != nil {
		return storageErr("ensure membership", err)
	}
	if !recorded {
		return fmt.Errorf("guild %s: %w", guildID, ErrGuildNotFound)
	}

	if err := uow.MembershipRepository().SetCanUseBot(ctx, guildID, userID, canUseBot); err != nil {
		return storageErr("set can use bot", err)
	}

	uow.EventBus().Publish(events.MembershipChangedEvent{
		GuildID:   guildID,
		UserID:    userID,
		CanUseBot: canUseBot,
	})

	if err := uow.Commit(); err != nil {
		return storageErr("commit membership", err)
	}

	return nil
}
