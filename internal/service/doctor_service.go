package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vetclinic-service/internal/cache"
	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/doctor"
	"vetclinic-service/internal/dto"
)

type DoctorService struct {
	repo         doctor.Repository
	appointments *AppointmentService
	cache        cache.Cache
	log          *zap.Logger
}

func NewDoctorService(repo doctor.Repository, appointments *AppointmentService, c cache.Cache, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, appointments: appointments, cache: c, log: log}
}

func (s *DoctorService) GetDoctor(ctx context.Context, doctorID int64) (*doctor.Doctor, error) {
	key := idKey(doctorID)
	if d, ok := cacheLookup[doctor.Doctor](ctx, s.cache, s.log, cache.NamespaceDoctor, key); ok {
		return &d, nil
	}

	d, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, s.log, cache.NamespaceDoctor, key, d)
	return d, nil
}

func (s *DoctorService) ListDoctors(ctx context.Context, req domain.PageRequest) (domain.Page[dto.DoctorDTO], error) {
	key := pageKey(req)
	if page, ok := cacheLookup[domain.Page[dto.DoctorDTO]](ctx, s.cache, s.log, cache.NamespaceDoctorsPage, key); ok {
		return page, nil
	}

	doctors, total, err := s.repo.List(ctx, req)
	if err != nil {
		return domain.Page[dto.DoctorDTO]{}, err
	}

	content := make([]dto.DoctorDTO, 0, len(doctors))
	for _, d := range doctors {
		content = append(content, dto.FromDoctor(d))
	}
	page := domain.NewPage(content, req, total)

	cacheStore(ctx, s.cache, s.log, cache.NamespaceDoctorsPage, key, page)
	return page, nil
}

// ListDoctorAppointments verifies the doctor exists, then returns one page
// of their appointments, optionally restricted to a single scheduled date.
func (s *DoctorService) ListDoctorAppointments(ctx context.Context, doctorID int64, date *domain.Date, req domain.PageRequest) (domain.Page[dto.AppointmentDTO], error) {
	key := doctorAppointmentsKey(doctorID, date, req)
	if page, ok := cacheLookup[domain.Page[dto.AppointmentDTO]](ctx, s.cache, s.log, cache.NamespaceDoctorAppointmentsPage, key); ok {
		return page, nil
	}

	exists, err := s.repo.ExistsByID(ctx, doctorID)
	if err != nil {
		return domain.Page[dto.AppointmentDTO]{}, err
	}
	if !exists {
		return domain.Page[dto.AppointmentDTO]{}, &doctor.NotFoundError{ID: doctorID}
	}

	var page domain.Page[dto.AppointmentDTO]
	if date == nil {
		page, err = s.appointments.AppointmentsPageByDoctor(ctx, req, doctorID)
	} else {
		page, err = s.appointments.AppointmentsPageByDoctorForDate(ctx, req, doctorID, *date)
	}
	if err != nil {
		return domain.Page[dto.AppointmentDTO]{}, err
	}

	cacheStore(ctx, s.cache, s.log, cache.NamespaceDoctorAppointmentsPage, key, page)
	return page, nil
}

func doctorAppointmentsKey(doctorID int64, date *domain.Date, req domain.PageRequest) string {
	day := "all"
	if date != nil {
		day = date.String()
	}
	return fmt.Sprintf("d%d:%s:%s", doctorID, day, pageKey(req))
}
