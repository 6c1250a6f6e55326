package appointment

import (
	"context"
	"time"

	"vetclinic-service/internal/domain"
)

type Repository interface {
	// Create persists a new appointment. A unique index on
	// (doctor_id, timestamp) backs the availability check; Create returns
	// ErrDateUnavailable when two bookings race for the same instant.
	Create(ctx context.Context, a *Appointment) error

	// ListByDoctor returns one page of a doctor's appointments plus the
	// total row count, ordered by timestamp.
	ListByDoctor(ctx context.Context, doctorID int64, req domain.PageRequest) ([]Appointment, int64, error)

	// ListByDoctorAndDate restricts ListByDoctor to one scheduled date.
	ListByDoctorAndDate(ctx context.Context, doctorID int64, date domain.Date, req domain.PageRequest) ([]Appointment, int64, error)

	// DeleteByCustomerAndTimestamp removes the appointment identified by
	// (customer, timestamp). Deleting a nonexistent row is not an error.
	DeleteByCustomerAndTimestamp(ctx context.Context, customerID int64, ts time.Time) error

	// ExistsByCustomerAndTimestamp backs the post-delete verification.
	ExistsByCustomerAndTimestamp(ctx context.Context, customerID int64, ts time.Time) (bool, error)

	// IsSlotAvailable reports true iff the doctor has no appointment with
	// timestamp strictly inside (w.Start, w.End) and none equal to w.At.
	IsSlotAvailable(ctx context.Context, doctorID int64, w Window) (bool, error)
}
