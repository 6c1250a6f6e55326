package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/customer"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &customer.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching customer %d: %w", id, err)
	}
	return &c, nil
}

func (r *customerRepository) GetPIN(ctx context.Context, id int64) (int, error) {
	var c customer.Customer
	err := r.db.WithContext(ctx).Select("pin").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &customer.NotFoundError{ID: id}
	}
	if err != nil {
		return 0, fmt.Errorf("fetching customer %d pin: %w", id, err)
	}
	return c.PIN, nil
}

func (r *customerRepository) List(ctx context.Context, req domain.PageRequest) ([]customer.Customer, int64, error) {
	req = req.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&customer.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting customers: %w", err)
	}

	var customers []customer.Customer
	err := r.db.WithContext(ctx).
		Order(orderClause(req.Sort, map[string]string{"name": "name", "surname": "surname"}, "id")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&customers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing customers: %w", err)
	}
	return customers, total, nil
}

// orderClause maps a requested sort key through a whitelist so user input
// never reaches the ORDER BY clause directly.
func orderClause(sort string, allowed map[string]string, fallback string) string {
	if col, ok := allowed[sort]; ok {
		return col
	}
	return fallback
}
