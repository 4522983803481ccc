package lib

import (
	"errors"

	"github.com/workly/workly/internal/model"
)

// Sentinel errors returned by the SDK. Use errors.Is to check them:
//
//	if errors.Is(err, lib.ErrNotFound) { ... }
var (
	// ErrNotFound is returned when a project, column or task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating something that already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when the input or configuration is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrMissingCredential is returned when there is no session token.
	ErrMissingCredential = errors.New("missing credential")
	// ErrRemote is returned when the API rejects a call.
	ErrRemote = errors.New("remote call failed")
)

// mapError translates internal errors into public sentinels while keeping the
// original message.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isInternalError(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case isInternalError(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case isInternalError(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case isInternalError(err, model.ErrMissingCredential):
		return joinErrors(err, ErrMissingCredential)
	case isInternalError(err, model.ErrRemote):
		return joinErrors(err, ErrRemote)
	default:
		return err
	}
}

func isInternalError(err, target error) bool {
	return errors.Is(err, target)
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
