package appointment

import (
	"errors"
	"fmt"

	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/doctor"
)

var (
	ErrDateUnavailable = errors.New("appointment date unavailable")
	ErrRemovalFailed   = errors.New("appointment removal failed")
)

// UnavailableDateError is raised for past requests, requests outside the
// opening window, and requests conflicting with an existing appointment.
// The message is surfaced to the caller as-is.
type UnavailableDateError struct {
	msg string
}

func (e *UnavailableDateError) Error() string {
	return e.msg
}

func (e *UnavailableDateError) Is(target error) bool {
	return target == ErrDateUnavailable
}

func ErrTimeInPast(t domain.TimeOfDay) error {
	return &UnavailableDateError{
		msg: fmt.Sprintf("Appointment time must not be in past. Request time: '%s'.", t),
	}
}

func ErrOutsideOpeningWindow(t domain.TimeOfDay, timing doctor.TimingDetails) error {
	return &UnavailableDateError{
		msg: fmt.Sprintf("Cannot schedule appointment at %s. Visit duration: %d min. Opening times: %s - %s.",
			t, timing.VisitDurationMins, timing.OpeningAt, timing.ClosingAt),
	}
}

func ErrDateTaken(timestamp string) error {
	return &UnavailableDateError{
		msg: fmt.Sprintf("Date '%s' is already taken. Please try schedule appointment at different time.", timestamp),
	}
}

// RemovalFailureError reports a cancellation whose post-delete existence
// check still found the row.
type RemovalFailureError struct{}

func (e *RemovalFailureError) Error() string {
	return "Appointment cancellation has failed !"
}

func (e *RemovalFailureError) Is(target error) bool {
	return target == ErrRemovalFailed
}
