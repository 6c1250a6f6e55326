package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/doctor"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) doctor.Repository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) GetByID(ctx context.Context, id int64) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).Preload("VisitDetails").First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &doctor.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching doctor %d: %w", id, err)
	}
	return &d, nil
}

func (r *doctorRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking doctor %d existence: %w", id, err)
	}
	return count > 0, nil
}

func (r *doctorRepository) List(ctx context.Context, req domain.PageRequest) ([]doctor.Doctor, int64, error) {
	req = req.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting doctors: %w", err)
	}

	var doctors []doctor.Doctor
	err := r.db.WithContext(ctx).
		Preload("VisitDetails").
		Order(orderClause(req.Sort, map[string]string{"name": "name", "surname": "surname"}, "id")).
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing doctors: %w", err)
	}
	return doctors, total, nil
}

func (r *doctorRepository) TimingByDoctorID(ctx context.Context, doctorID int64) (*doctor.TimingDetails, error) {
	var vd doctor.VisitDetails
	err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).First(&vd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &doctor.TimingNotFoundError{DoctorID: doctorID}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching timing details for doctor %d: %w", doctorID, err)
	}
	return &doctor.TimingDetails{
		VisitDurationMins: vd.VisitDurationMins,
		OpeningAt:         vd.OpeningAt,
		ClosingAt:         vd.ClosingAt,
	}, nil
}
