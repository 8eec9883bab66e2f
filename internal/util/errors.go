package util

import (
	"errors"
)

type Temporary interface {
	Temporary() bool
}

func IsTemporaryError(err error) bool {
	for err := err; err != nil; err = errors.Unwrap(err) {
		if err, ok := err.(Temporary); ok && err.Temporary() {
			return true
		}
	}
	return false
}

type temporaryError struct {
	error error
}

var _ Temporary = temporaryError{}

// MakeTemporaryError marks the error as a transient one: the operation may succeed if retried later.
func MakeTemporaryError(err error) error {
	return temporaryError{error: err}
}

func (e temporaryError) Temporary() bool {
	return true
}

func (e temporaryError) Error() string {
	return e.error.Error()
}

func (e temporaryError) Unwrap() error {
	return e.error
}
