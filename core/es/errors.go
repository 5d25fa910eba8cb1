package es

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEventKind is returned when decoding a record whose kind has
	// no registered constructor. Treated as log corruption: replay for the
	// affected aggregate must halt rather than silently skip the record.
	ErrUnknownEventKind = errors.New("unknown event kind")

	// ErrStoreUnavailable is returned when the event log could not complete
	// an append or load. The batch was not (partially) persisted.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Rejection is the error returned when domain logic declines a command.
// State is guaranteed unchanged. The reason is free-form text; callers that
// need to branch on rejections use errors.As.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return "command rejected: " + r.Reason }

// Reject builds a Rejection with a formatted reason.
func Reject(format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err is a domain rejection.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}
