package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInList is returned when an association row already exists.
	ErrAlreadyInList = errors.New("already added to the list")
	// ErrNotInList is returned when removing an association row that is absent.
	ErrNotInList = errors.New("not in the list")
	// ErrSelfFollow is returned when a user attempts to follow themselves.
	ErrSelfFollow = errors.New("cannot subscribe to yourself")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrAmountTooSmall = errors.New("ingredient amount must be at least 0.1")
	ErrUnknownColor   = errors.New("no such color name")
)

// DuplicateEntryError names the tag or ingredient repeated within a single
// recipe submission.
type DuplicateEntryError struct {
	Entry string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("%s is listed more than once", e.Entry)
}
