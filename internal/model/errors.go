package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrMissingCredential is returned when there is no session token to authenticate remote calls.
	ErrMissingCredential = errors.New("missing credential")
	// ErrRemote is returned when the remote API answers with a non 2xx status or can't be reached.
	ErrRemote = errors.New("remote call failed")
)
