package doctor

import (
	"errors"
	"fmt"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrTimingDetailsNotFound = errors.New("timing details not found")
)

type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Doctor with id '%d' not found.", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDoctorNotFound
}

type TimingNotFoundError struct {
	DoctorID int64
}

func (e *TimingNotFoundError) Error() string {
	return fmt.Sprintf("Timing details not found for doctor with id '%d'.", e.DoctorID)
}

func (e *TimingNotFoundError) Is(target error) bool {
	return target == ErrTimingDetailsNotFound
}
