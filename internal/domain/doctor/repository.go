package doctor

import (
	"context"

	"vetclinic-service/internal/domain"
)

type Repository interface {
	// GetByID retrieves a doctor by primary key. Returns *NotFoundError on miss.
	GetByID(ctx context.Context, id int64) (*Doctor, error)

	// ExistsByID checks for existence without fetching the record.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// List returns one page of doctors plus the total row count.
	List(ctx context.Context, req domain.PageRequest) ([]Doctor, int64, error)

	// TimingByDoctorID returns the doctor's timing profile.
	// Returns *TimingNotFoundError when the doctor has none (or does not exist).
	TimingByDoctorID(ctx context.Context, doctorID int64) (*TimingDetails, error)
}
