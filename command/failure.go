package command

import (
	"context"
	"errors"
	"fmt"

	"warden/service"
)

// Kind classifies why a command did not complete
type Kind int

const (
	ValidationDeny Kind = iota + 1
	AuthorizationDeny
	StorageError
	DomainError
)

func (k Kind) String() string {
	switch k {
	case ValidationDeny:
		return "validation"
	case AuthorizationDeny:
		return "authorization"
	case StorageError:
		return "storage"
	case DomainError:
		return "domain"
	default:
		return "unknown"
	}
}

// Apology is shown for any failure the user cannot fix
const Apology = "Something went wrong, please try again later."

// Failure is an error returned from a command's Run with user-facing messaging attached
type Failure struct {
	Kind        Kind
	UserMessage string
	Err         error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.UserMessage)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Expected reports whether the failure is the user's to fix
func (f *Failure) Expected() bool {
	return f.Kind == ValidationDeny || f.Kind == AuthorizationDeny
}

// Validation rejects malformed input
func Validation(message string) *Failure {
	return &Failure{Kind: ValidationDeny, UserMessage: message}
}

// Forbidden rejects an action the user may not perform on this target
func Forbidden(message string) *Failure {
	return &Failure{Kind: AuthorizationDeny, UserMessage: message}
}

// Storage wraps a persistence failure
func Storage(err error) *Failure {
	return &Failure{Kind: StorageError, UserMessage: Apology, Err: err}
}

// Domain wraps any other unexpected failure
func Domain(err error) *Failure {
	return &Failure{Kind: DomainError, UserMessage: Apology, Err: err}
}

// Classify maps an arbitrary error returned by a command to a Failure
func Classify(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if errors.Is(err, service.ErrStorageUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return Storage(err)
	}
	return Domain(err)
}
