package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable means the blob backend could not be listed, read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrMetadataUnavailable means the metadata database call failed.
	ErrMetadataUnavailable = errors.New("metadata store unavailable")
	// ErrProbeFailed is recorded per entry when dimensions could not be read.
	ErrProbeFailed = errors.New("dimension probe failed")
	// ErrRepairConflict is recorded per action when a repair could not complete.
	ErrRepairConflict = errors.New("repair conflict")
)

// wrapAs tags err with kind unless it already carries it.
func wrapAs(kind, err error) error {
	if err == nil || errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
