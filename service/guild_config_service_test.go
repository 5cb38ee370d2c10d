package service

import (
	"context"
	"errors"
	"testing"

	"warden/events"
	"warden/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGuildConfigService_Get_Found(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	expected := &models.GuildConfig{ID: "101", Name: "guild-1", DefaultVolume: 100, MinBaseRoleID: "1", MinModRoleID: "2"}
	m.guild.On("GetByID", ctx, "101").Return(expected, nil)

	cfg, err := svc.Get(ctx, "101")

	require.NoError(t, err)
	assert.Equal(t, expected, cfg)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestGuildConfigService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	m.guild.On("GetByID", ctx, "999").Return(nil, nil)

	cfg, err := svc.Get(ctx, "999")

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrGuildNotFound)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
}

func TestGuildConfigService_Get_StorageFailure(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	m.guild.On("GetByID", ctx, "101").Return(nil, errors.New("connection refused"))

	_, err := svc.Get(ctx, "101")

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	var storageError *StorageError
	assert.True(t, errors.As(err, &storageError))
}

func TestGuildConfigService_Get_BeginFailure(t *testing.T) {
	ctx := context.Background()
	factory := new(MockUnitOfWorkFactory)
	uow := new(MockUnitOfWork)
	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(errors.New("pool closed"))

	svc := NewGuildConfigService(factory)
	_, err := svc.Get(ctx, "101")

	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestGuildConfigService_Create_NewGuild(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	seed := &models.GuildSeed{ID: "999", Name: "test-added", DefaultVolume: 100, MinBaseRoleID: "999", MinModRoleID: "12345", MinVoiceRoleID: "999", MinNSFWRoleID: "999"}
	m.guild.On("Create", ctx, seed).Return(true, nil)
	m.bus.On("Publish", events.GuildProvisionedEvent{GuildID: "999", GuildName: "test-added", MinModRoleID: "12345"}).Return()
	m.uow.On("Commit").Return(nil)

	err := svc.Create(ctx, seed)

	require.NoError(t, err)
	m.guild.AssertExpectations(t)
	m.bus.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestGuildConfigService_Create_ExistingGuildIsNoop(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	seed := &models.GuildSeed{ID: "101", Name: "guild-1", DefaultVolume: 100}
	m.guild.On("Create", ctx, seed).Return(false, nil)
	m.uow.On("Commit").Return(nil)

	err := svc.Create(ctx, seed)

	require.NoError(t, err)
	m.bus.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestGuildConfigService_Create_RejectsInvalidSeed(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	err := svc.Create(ctx, &models.GuildSeed{ID: "1", DefaultVolume: 150})
	assert.ErrorIs(t, err, ErrInvalidVolume)

	err = svc.Create(ctx, &models.GuildSeed{})
	assert.Error(t, err)

	m.factory.AssertNotCalled(t, "Create")
}

func TestGuildConfigService_UpdateMinRole(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	m.guild.On("GetByID", ctx, "101").Return(&models.GuildConfig{ID: "101"}, nil)
	m.guild.On("UpdateMinRole", ctx, "101", models.CategoryModeration, "50").Return(nil)
	m.bus.On("Publish", events.GuildConfigChangedEvent{GuildID: "101", Setting: "min_moderation_role", Value: "50"}).Return()
	m.uow.On("Commit").Return(nil)

	err := svc.UpdateMinRole(ctx, "101", models.CategoryModeration, "50")

	require.NoError(t, err)
	m.guild.AssertExpectations(t)
	m.bus.AssertExpectations(t)
}

func TestGuildConfigService_UpdateMinRole_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	err := svc.UpdateMinRole(ctx, "101", models.CategoryOwner, "50")

	assert.ErrorIs(t, err, ErrUnknownCategory)
	m.guild.AssertNotCalled(t, "UpdateMinRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGuildConfigService_UpdateMinRole_MissingGuild(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	m.guild.On("GetByID", ctx, "404").Return(nil, nil)

	err := svc.UpdateMinRole(ctx, "404", models.CategoryGeneral, "1")

	assert.ErrorIs(t, err, ErrGuildNotFound)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestGuildConfigService_UpdateVolume(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	m.guild.On("GetByID", ctx, "102").Return(&models.GuildConfig{ID: "102"}, nil)
	m.guild.On("UpdateVolume", ctx, "102", 60).Return(nil)
	m.bus.On("Publish", events.GuildConfigChangedEvent{GuildID: "102", Setting: "default_volume", Value: "60"}).Return()
	m.uow.On("Commit").Return(nil)

	require.NoError(t, svc.UpdateVolume(ctx, "102", 60))
	m.guild.AssertExpectations(t)
}

func TestGuildConfigService_UpdateVolume_OutOfRange(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	assert.ErrorIs(t, svc.UpdateVolume(ctx, "102", 101), ErrInvalidVolume)
	assert.ErrorIs(t, svc.UpdateVolume(ctx, "102", -5), ErrInvalidVolume)
	m.factory.AssertNotCalled(t, "Create")
}

func TestGuildConfigService_UpdateVolume_CommitFailure(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewGuildConfigService(m.factory)

	m.guild.On("GetByID", ctx, "102").Return(&models.GuildConfig{ID: "102"}, nil)
	m.guild.On("UpdateVolume", ctx, "102", 40).Return(nil)
	m.bus.On("Publish", mock.Anything).Return()
	m.uow.On("Commit").Return(errors.New("connection reset"))

	err := svc.UpdateVolume(ctx, "102", 40)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
