package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) appointment.Repository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Omit("Customer", "Doctor").Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Two bookings raced for the same instant; the unique index on
		// (doctor_id, timestamp) caught the loser.
		return appointment.ErrDateTaken(a.Timestamp.Format("2006-01-02 15:04"))
	}
	if err != nil {
		return fmt.Errorf("creating appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64, req domain.PageRequest) ([]appointment.Appointment, int64, error) {
	return r.list(ctx, req, r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("doctor_id = ?", doctorID))
}

func (r *appointmentRepository) ListByDoctorAndDate(ctx context.Context, doctorID int64, date domain.Date, req domain.PageRequest) ([]appointment.Appointment, int64, error) {
	return r.list(ctx, req, r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND scheduled_date = ?", doctorID, date))
}

func (r *appointmentRepository) list(ctx context.Context, req domain.PageRequest, query *gorm.DB) ([]appointment.Appointment, int64, error) {
	req = req.Normalize()

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting appointments: %w", err)
	}

	var appointments []appointment.Appointment
	err := query.
		Preload("Customer").
		Order("timestamp").
		Offset(req.Offset()).
		Limit(req.Limit()).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, total, nil
}

func (r *appointmentRepository) DeleteByCustomerAndTimestamp(ctx context.Context, customerID int64, ts time.Time) error {
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND timestamp = ?", customerID, ts).
		Delete(&appointment.Appointment{}).Error
	if err != nil {
		return fmt.Errorf("deleting appointment for customer %d: %w", customerID, err)
	}
	return nil
}

func (r *appointmentRepository) ExistsByCustomerAndTimestamp(ctx context.Context, customerID int64, ts time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("customer_id = ? AND timestamp = ?", customerID, ts).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking appointment existence for customer %d: %w", customerID, err)
	}
	return count > 0, nil
}

func (r *appointmentRepository) IsSlotAvailable(ctx context.Context, doctorID int64, w appointment.Window) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Where("(timestamp > ? AND timestamp < ?) OR timestamp = ?", w.Start, w.End, w.At).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking slot availability for doctor %d: %w", doctorID, err)
	}
	return count == 0, nil
}
