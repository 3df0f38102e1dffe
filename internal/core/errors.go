package core

import "errors"

var (
	// ErrNoRows reports that no ledger row matched the requested
	// customer or period. It is a user-visible "nothing to show" state,
	// not a failure.
	ErrNoRows = errors.New("no matching rows")

	// ErrInvalidPeriod reports a statement period whose start date
	// falls after its end date.
	ErrInvalidPeriod = errors.New("start date after end date")

	// ErrSourceUnavailable reports that a ledger source could not be
	// read or is missing required columns.
	ErrSourceUnavailable = errors.New("ledger source unavailable")
)
