package repository

import "errors"

var (
	// ErrReferencedByWinners is returned when a delete would orphan existing
	// winner records. Prize and participant rows referenced by the audit
	// trail can only disappear through an activity reset or cascade.
	ErrReferencedByWinners = errors.New("resource is referenced by winner records")

	// ErrDrawConflict is returned when a draw commit observes state that
	// changed since its preconditions were checked, e.g. another writer
	// already decremented the prize inventory or flagged a selected
	// participant. The caller should re-validate and retry the whole draw.
	ErrDrawConflict = errors.New("draw state changed concurrently")
)
