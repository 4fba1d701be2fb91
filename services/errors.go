package service

import (
	"errors"
	"fmt"
)

// Storage errors
var (
	ErrStorageUnavailable = errors.New("storage not initialized")
	ErrStorage            = errors.New("storage error")
)

// AI errors
var (
	ErrAIUpstream          = errors.New("ai upstream error")
	ErrAIResponseMalformed = errors.New("ai response malformed")
	ErrAIRequestFailed     = errors.New("ai request failed")
)

var ErrClustering = errors.New("clustering failed")

// UpstreamError carries the status and body of a non-success AI response.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai upstream returned status %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return ErrAIUpstream
}

// storageError marks err as a storage fault while keeping it inspectable.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
