package service

import (
	"context"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

// GuildCount returns the number of provisioned guilds
func (s *statsService) GuildCount(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, storageErr("begin transaction", err)
	}
	defer uow.Rollback()

	count, err := uow.GuildRepository().Count(ctx)
	if err != nil {
		return 0, storageErr("count guilds", err)
	}

	return count, nil
}
