package service

import (
	"errors"
	"fmt"
)

var (
	// ErrGuildNotFound is returned when a guild has no config row
	ErrGuildNotFound = errors.New("guild not found")

	// ErrStorageUnavailable marks failures of the backing store
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidVolume is returned for volumes outside the accepted range
	ErrInvalidVolume = errors.New("volume out of range")

	// ErrUnknownCategory is returned for categories without a role threshold
	ErrUnknownCategory = errors.New("category has no role threshold")

	// ErrSubscriptionNotFound is returned when no subscription has the given ID
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionForeignGuild is returned when a subscription belongs to another guild
	ErrSubscriptionForeignGuild = errors.New("subscription belongs to another guild")
)

// StorageError wraps a failure of the backing store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrStorageUnavailable, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorageUnavailable) match any StorageError
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
