package customer

import (
	"context"

	"vetclinic-service/internal/domain"
)

type Repository interface {
	// GetByID retrieves a customer by primary key. Returns *NotFoundError on miss.
	GetByID(ctx context.Context, id int64) (*Customer, error)

	// GetPIN fetches only the stored PIN, without loading the full record.
	GetPIN(ctx context.Context, id int64) (int, error)

	// List returns one page of customers plus the total row count.
	List(ctx context.Context, req domain.PageRequest) ([]Customer, int64, error)
}
