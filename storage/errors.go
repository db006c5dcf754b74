package storage

import "errors"

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrRequestFailed indicates that a storage service call failed.
	// The wrapped message carries the service's status and body text.
	ErrRequestFailed = errors.New("storage request failed")
)
