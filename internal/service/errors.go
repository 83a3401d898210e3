package service

import (
	"errors"
	"fmt"
)

var (
	// ErrActivityNotFound indicates the requested activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrPrizeNotFound indicates the prize does not exist or belongs to another activity.
	ErrPrizeNotFound = errors.New("prize not found")
	// ErrParticipantNotFound indicates the participant does not exist in the activity.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrIDMismatch indicates the identifiers in path and payload disagree on an update.
	ErrIDMismatch = errors.New("identifier in path and payload do not match")
	// ErrInvalidDrawCount indicates a draw was requested for fewer than one winner.
	ErrInvalidDrawCount = errors.New("draw count must be at least 1")
	// ErrWinnerRecordsExist indicates a delete was rejected because the winner
	// audit trail still references the resource. Reset the activity first.
	ErrWinnerRecordsExist = errors.New("winner records reference this resource; reset the activity first")
)

// InsufficientInventoryError rejects a draw asking for more units than the
// prize has left. Remaining carries the current count so the caller can act.
type InsufficientInventoryError struct {
	Remaining int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient prize inventory, remaining: %d", e.Remaining)
}

// InsufficientParticipantsError rejects a draw asking for more winners than
// the eligible pool holds. Available carries the current pool size.
type InsufficientParticipantsError struct {
	Available int
}

func (e *InsufficientParticipantsError) Error() string {
	return fmt.Sprintf("insufficient eligible participants, available: %d", e.Available)
}
