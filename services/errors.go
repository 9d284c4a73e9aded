package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPropertyNotFound    = errors.New("property_not_found")
	ErrReservationNotFound = errors.New("reservation_not_found")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
	ErrConfirmationFailed  = errors.New("confirmation_failed")
	ErrIncompleteRate      = errors.New("incomplete_rate")
	ErrICSParse            = errors.New("ics_parse_failed")
	ErrStayTooShort        = errors.New("stay_below_minimum_nights")
	ErrStayTooLong         = errors.New("stay_above_maximum_nights")
)

// RangeUnavailableError is returned when a candidate range collides with
// blocked days. Days may be empty when the conflict was only detected at
// insert time (a lost confirm race).
type RangeUnavailableError struct {
	Days []time.Time
}

func (e *RangeUnavailableError) Error() string {
	if len(e.Days) == 0 {
		return "requested dates are no longer available"
	}
	return fmt.Sprintf("requested dates are no longer available (%d conflicting day(s))", len(e.Days))
}

// PartialCancellationError reports a cancellation whose status change
// committed but whose calendar unblock failed. The reservation is cancelled;
// an operator can recover by re-running the unblock.
type PartialCancellationError struct {
	Err error
}

func (e *PartialCancellationError) Error() string {
	return fmt.Sprintf("reservation cancelled but calendar unblock failed: %v", e.Err)
}

func (e *PartialCancellationError) Unwrap() error { return e.Err }
