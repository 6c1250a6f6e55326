package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"vetclinic-service/internal/cache"
	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/dto"
	"vetclinic-service/pkg/metrics"
)

// conflictTimestampLayout formats the requested timestamp inside
// availability error messages.
const conflictTimestampLayout = "2006-01-02 15:04"

type AppointmentService struct {
	repo         appointment.Repository
	visitDetails *VisitDetailsService
	cache        cache.Cache
	audit        *AuditService
	log          *zap.Logger
	metrics      *metrics.Collector
	tracer       trace.Tracer
}

func NewAppointmentService(
	repo appointment.Repository,
	visitDetails *VisitDetailsService,
	c cache.Cache,
	audit *AuditService,
	log *zap.Logger,
	m *metrics.Collector,
) *AppointmentService {
	return &AppointmentService{
		repo:         repo,
		visitDetails: visitDetails,
		cache:        c,
		audit:        audit,
		log:          log,
		metrics:      m,
		tracer:       otel.Tracer("vetclinic/appointments"),
	}
}

func (s *AppointmentService) AppointmentsPageByDoctor(ctx context.Context, req domain.PageRequest, doctorID int64) (domain.Page[dto.AppointmentDTO], error) {
	appointments, total, err := s.repo.ListByDoctor(ctx, doctorID, req)
	if err != nil {
		return domain.Page[dto.AppointmentDTO]{}, err
	}
	return mapAppointmentsPage(appointments, req, total), nil
}

func (s *AppointmentService) AppointmentsPageByDoctorForDate(ctx context.Context, req domain.PageRequest, doctorID int64, date domain.Date) (domain.Page[dto.AppointmentDTO], error) {
	appointments, total, err := s.repo.ListByDoctorAndDate(ctx, doctorID, date, req)
	if err != nil {
		return domain.Page[dto.AppointmentDTO]{}, err
	}
	return mapAppointmentsPage(appointments, req, total), nil
}

func mapAppointmentsPage(appointments []appointment.Appointment, req domain.PageRequest, total int64) domain.Page[dto.AppointmentDTO] {
	content := make([]dto.AppointmentDTO, 0, len(appointments))
	for _, a := range appointments {
		content = append(content, dto.AppointmentForDoctor(a))
	}
	return domain.NewPage(content, req, total)
}

// CheckAvailability decides whether the requested slot can be booked. The
// opening-window check short-circuits before the store is consulted; the
// timing-profile lookup already validates the doctor's existence.
func (s *AppointmentService) CheckAvailability(ctx context.Context, req appointment.Request) error {
	ctx, span := s.tracer.Start(ctx, "appointment.availability",
		trace.WithAttributes(attribute.Int64("doctor.id", req.DoctorID)))
	defer span.End()

	timing, err := s.visitDetails.GetTimingDetails(ctx, req.DoctorID)
	if err != nil {
		return err
	}

	if !appointment.FitsOpeningWindow(req.Time, timing) {
		s.metrics.SlotRejectionsTotal.WithLabelValues("opening_window").Inc()
		return appointment.ErrOutsideOpeningWindow(req.Time, timing)
	}

	window := appointment.ConflictWindow(req.Date, req.Time, timing.VisitDurationMins)
	available, err := s.repo.IsSlotAvailable(ctx, req.DoctorID, window)
	if err != nil {
		return fmt.Errorf("checking slot availability: %w", err)
	}
	if !available {
		s.metrics.SlotRejectionsTotal.WithLabelValues("conflict").Inc()
		return appointment.ErrDateTaken(window.At.Format(conflictTimestampLayout))
	}
	return nil
}

// Add persists an accepted booking and evicts the doctor-appointments
// page cache so the next listing observes the new row.
func (s *AppointmentService) Add(ctx context.Context, a *appointment.Appointment) (dto.AppointmentDTO, error) {
	if err := s.repo.Create(ctx, a); err != nil {
		return dto.AppointmentDTO{}, err
	}

	cacheEvictAll(ctx, s.cache, s.log, cache.NamespaceDoctorAppointmentsPage)

	s.metrics.BookingsTotal.Inc()
	s.audit.Record(ctx, domain.ActionBook, a.CustomerID, a.DoctorID, a.Timestamp)
	s.log.Info("appointment booked",
		zap.Int64("customer_id", a.CustomerID),
		zap.Int64("doctor_id", a.DoctorID),
		zap.Time("timestamp", a.Timestamp),
	)

	return dto.AppointmentForCustomer(*a), nil
}

// Delete cancels the appointment identified by (customer, timestamp).
// Deleting a missing row is a no-op; only a row that survives its own
// deletion is an error.
func (s *AppointmentService) Delete(ctx context.Context, customerID int64, timestamp time.Time) error {
	if err := s.repo.DeleteByCustomerAndTimestamp(ctx, customerID, timestamp); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCustomerAndTimestamp(ctx, customerID, timestamp)
	if err != nil {
		return fmt.Errorf("verifying appointment removal: %w", err)
	}
	if exists {
		return &appointment.RemovalFailureError{}
	}

	cacheEvictAll(ctx, s.cache, s.log, cache.NamespaceDoctorAppointmentsPage)

	s.metrics.CancellationsTotal.Inc()
	s.audit.Record(ctx, domain.ActionCancel, customerID, 0, timestamp)
	s.log.Info("appointment cancelled",
		zap.Int64("customer_id", customerID),
		zap.Time("timestamp", timestamp),
	)
	return nil
}
