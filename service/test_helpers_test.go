package service

import (
	"context"
)

// testMocks bundles the mocks behind one unit of work
type testMocks struct {
	factory    *MockUnitOfWorkFactory
	uow        *MockUnitOfWork
	guild      *MockGuildRepository
	user       *MockUserRepository
	membership *MockMembershipRepository
	channel    *MockChannelRepository
	rss        *MockRSSRepository
	bus        *MockEventPublisher
}

func newTestMocks(ctx context.Context) *testMocks {
	m := &testMocks{
		factory:    new(MockUnitOfWorkFactory),
		uow:        new(MockUnitOfWork),
		guild:      new(MockGuildRepository),
		user:       new(MockUserRepository),
		membership: new(MockMembershipRepository),
		channel:    new(MockChannelRepository),
		rss:        new(MockRSSRepository),
		bus:        new(MockEventPublisher),
	}
	m.uow.SetRepositories(m.guild, m.user, m.membership, m.channel, m.rss, m.bus)

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	return m
}
