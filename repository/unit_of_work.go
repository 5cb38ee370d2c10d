package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"warden/database"
	"warden/events"
	"warden/service"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	guildRepo        service.GuildRepository
	userRepo         service.UserRepository
	membershipRepo   service.MembershipRepository
	channelRepo      service.ChannelRepository
	rssRepo          service.RSSRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Events published inside a
// unit of work reach eventBus only after a successful commit.
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.guildRepo = newGuildRepositoryWithTx(tx)
	u.userRepo = newUserRepositoryWithTx(tx)
	u.membershipRepo = newMembershipRepositoryWithTx(tx)
	u.channelRepo = newChannelRepositoryWithTx(tx)
	u.rssRepo = newRSSRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	u.transactionalBus.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction and discards pending events.
// It is a no-op after Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

func (u *unitOfWork) mustBegin(repo any) {
	if repo == nil {
		panic("unit of work not started - call Begin() first")
	}
}

// GuildRepository returns the guild repository for this unit of work
func (u *unitOfWork) GuildRepository() service.GuildRepository {
	u.mustBegin(u.guildRepo)
	return u.guildRepo
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	u.mustBegin(u.userRepo)
	return u.userRepo
}

// MembershipRepository returns the membership repository for this unit of work
func (u *unitOfWork) MembershipRepository() service.MembershipRepository {
	u.mustBegin(u.membershipRepo)
	return u.membershipRepo
}

// ChannelRepository returns the channel repository for this unit of work
func (u *unitOfWork) ChannelRepository() service.ChannelRepository {
	u.mustBegin(u.channelRepo)
	return u.channelRepo
}

// RSSRepository returns the RSS subscription repository for this unit of work
func (u *unitOfWork) RSSRepository() service.RSSRepository {
	u.mustBegin(u.rssRepo)
	return u.rssRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
