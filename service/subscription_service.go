package service

import (
	"context"
	"fmt"

	"warden/events"
	"warden/models"
)

// subscriptionService implements the SubscriptionService interface
type subscriptionService struct {
	uowFactory UnitOfWorkFactory
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(uowFactory UnitOfWorkFactory) SubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
	}
}

// Subscribe records the channel and adds a feed subscription for it
func (s *subscriptionService) Subscribe(ctx context.Context, channel *models.TextChannel, feedSource string) (*models.RSSSubscription, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.ChannelRepository().Upsert(ctx, channel); err != nil {
		return nil, storageErr("upsert channel", err)
	}

	sub, err := uow.RSSRepository().Create(ctx, channel.ID, feedSource)
	if err != nil {
		return nil, storageErr("create subscription", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("commit subscription", err)
	}

	return sub, nil
}

// ListForGuild lists the subscriptions of a guild
func (s *subscriptionService) ListForGuild(ctx context.Context, guildID string) ([]*models.RSSSubscription, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	subs, err := uow.RSSRepository().ListByGuild(ctx, guildID)
	if err != nil {
		return nil, storageErr("list subscriptions", err)
	}

	return subs, nil
}

// Remove deletes a subscription if its channel belongs to the guild
func (s *subscriptionService) Remove(ctx context.Context, guildID string, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	sub, err := uow.RSSRepository().GetByID(ctx, id)
	if err != nil {
		return storageErr("get subscription", err)
	}
	if sub == nil {
		return fmt.Errorf("subscription %d: %w", id, ErrSubscriptionNotFound)
	}

	channel, err := uow.ChannelRepository().GetByID(ctx, sub.ChannelID)
	if err != nil {
		return storageErr("get channel", err)
	}
	if channel == nil || channel.GuildID != guildID {
		return fmt.Errorf("subscription %d: %w", id, ErrSubscriptionForeignGuild)
	}

	if err := uow.RSSRepository().Delete(ctx, id); err != nil {
		return storageErr("delete subscription", err)
	}

	uow.EventBus().Publish(events.SubscriptionRemovedEvent{
		SubscriptionID: id,
		ChannelID:      sub.ChannelID,
		GuildID:        guildID,
	})

	if err := uow.Commit(); err != nil {
		return storageErr("commit subscription removal", err)
	}

	return nil
}
