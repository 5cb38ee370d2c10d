package service

import (
	"context"

	"warden/events"
	"warden/models"

	"github.com/stretchr/testify/mock"
)

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) GetByID(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildRepository) Create(ctx context.Context, seed *models.GuildSeed) (bool, error) {
	args := m.Called(ctx, seed)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuildRepository) UpdateMinRole(ctx context.Context, guildID string, category models.Category, roleID string) error {
	args := m.Called(ctx, guildID, category, roleID)
	return args.Error(0)
}

func (m *MockGuildRepository) UpdateVolume(ctx context.Context, guildID string, volume int) error {
	args := m.Called(ctx, guildID, volume)
	return args.Error(0)
}

func (m *MockGuildRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Get(ctx context.Context, guildID, userID string) (*models.UserMembership, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMembership), args.Error(1)
}

func (m *MockMembershipRepository) Ensure(ctx context.Context, guildID, userID string) (bool, error) {
	args := m.Called(ctx, guildID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) SetCanUseBot(ctx context.Context, guildID, userID string, canUseBot bool) error {
	args := m.Called(ctx, guildID, userID, canUseBot)
	return args.Error(0)
}

// MockChannelRepository is a mock implementation of ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) GetByID(ctx context.Context, channelID string) (*models.TextChannel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TextChannel), args.Error(1)
}

func (m *MockChannelRepository) Upsert(ctx context.Context, channel *models.TextChannel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

// MockRSSRepository is a mock implementation of RSSRepository
type MockRSSRepository struct {
	mock.Mock
}

func (m *MockRSSRepository) Create(ctx context.Context, channelID, feedSource string) (*models.RSSSubscription, error) {
	args := m.Called(ctx, channelID, feedSource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RSSSubscription), args.Error(1)
}

func (m *MockRSSRepository) GetByID(ctx context.Context, id int64) (*models.RSSSubscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RSSSubscription), args.Error(1)
}

func (m *MockRSSRepository) ListByGuild(ctx context.Context, guildID string) ([]*models.RSSSubscription, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RSSSubscription), args.Error(1)
}

func (m *MockRSSRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock

	guildRepo      GuildRepository
	userRepo       UserRepository
	membershipRepo MembershipRepository
	channelRepo    ChannelRepository
	rssRepo        RSSRepository
	eventBus       EventPublisher
}

// SetRepositories wires the repositories returned by the unit of work
func (m *MockUnitOfWork) SetRepositories(guild GuildRepository, user UserRepository, membership MembershipRepository, channel ChannelRepository, rss RSSRepository, bus EventPublisher) {
	m.guildRepo = guild
	m.userRepo = user
	m.membershipRepo = membership
	m.channelRepo = channel
	m.rssRepo = rss
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GuildRepository() GuildRepository           { return m.guildRepo }
func (m *MockUnitOfWork) UserRepository() UserRepository             { return m.userRepo }
func (m *MockUnitOfWork) MembershipRepository() MembershipRepository { return m.membershipRepo }
func (m *MockUnitOfWork) ChannelRepository() ChannelRepository       { return m.channelRepo }
func (m *MockUnitOfWork) RSSRepository() RSSRepository               { return m.rssRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher                   { return m.eventBus }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
