package service

import (
	"context"

	"warden/models"

	"github.com/stretchr/testify/mock"
)

// MockGuildConfigStore is a mock implementation of GuildConfigStore
type MockGuildConfigStore struct {
	mock.Mock
}

func (m *MockGuildConfigStore) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigStore) Create(ctx context.Context, seed *models.GuildSeed) error {
	args := m.Called(ctx, seed)
	return args.Error(0)
}

func (m *MockGuildConfigStore) UpdateMinRole(ctx context.Context, guildID string, category models.Category, roleID string) error {
	args := m.Called(ctx, guildID, category, roleID)
	return args.Error(0)
}

func (m *MockGuildConfigStore) UpdateVolume(ctx context.Context, guildID string, volume int) error {
	args := m.Called(ctx, guildID, volume)
	return args.Error(0)
}

// MockMembershipService is a mock implementation of MembershipService
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) CanUseBot(ctx context.Context, guildID, userID string) (bool, error) {
	args := m.Called(ctx, guildID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipService) RecordMember(ctx context.Context, guildID, userID, name string) error {
	args := m.Called(ctx, guildID, userID, name)
	return args.Error(0)
}

func (m *MockMembershipService) SetCanUseBot(ctx context.Context, guildID, userID, name string, canUseBot bool) error {
	args := m.Called(ctx, guildID, userID, name, canUseBot)
	return args.Error(0)
}

// MockSubscriptionService is a mock implementation of SubscriptionService
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, channel *models.TextChannel, feedSource string) (*models.RSSSubscription, error) {
	args := m.Called(ctx, channel, feedSource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RSSSubscription), args.Error(1)
}

func (m *MockSubscriptionService) ListForGuild(ctx context.Context, guildID string) ([]*models.RSSSubscription, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RSSSubscription), args.Error(1)
}

func (m *MockSubscriptionService) Remove(ctx context.Context, guildID string, id int64) error {
	args := m.Called(ctx, guildID, id)
	return args.Error(0)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GuildCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
