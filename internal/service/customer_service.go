package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vetclinic-service/internal/cache"
	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/domain/customer"
	"vetclinic-service/internal/dto"
)

// CustomerService owns the booking and cancellation pipelines. The step
// order in MakeAppointment is deliberate: the PIN is verified before the
// doctor's schedule is consulted, so a bad PIN never leaks whether a slot
// is free; the doctor fetch comes after availability because the
// timing-profile lookup already proves the doctor exists.
type CustomerService struct {
	repo         customer.Repository
	doctors      *DoctorService
	appointments *AppointmentService
	cache        cache.Cache
	log          *zap.Logger

	now func() time.Time
}

func NewCustomerService(repo customer.Repository, doctors *DoctorService, appointments *AppointmentService, c cache.Cache, log *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:         repo,
		doctors:      doctors,
		appointments: appointments,
		cache:        c,
		log:          log,
		now:          time.Now,
	}
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	key := idKey(customerID)
	if c, ok := cacheLookup[customer.Customer](ctx, s.cache, s.log, cache.NamespaceCustomer, key); ok {
		return &c, nil
	}

	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, s.cache, s.log, cache.NamespaceCustomer, key, c)
	return c, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, req domain.PageRequest) (domain.Page[dto.CustomerDTO], error) {
	key := pageKey(req)
	if page, ok := cacheLookup[domain.Page[dto.CustomerDTO]](ctx, s.cache, s.log, cache.NamespaceCustomersPage, key); ok {
		return page, nil
	}

	customers, total, err := s.repo.List(ctx, req)
	if err != nil {
		return domain.Page[dto.CustomerDTO]{}, err
	}

	content := make([]dto.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		content = append(content, dto.FromCustomer(c))
	}
	page := domain.NewPage(content, req, total)

	cacheStore(ctx, s.cache, s.log, cache.NamespaceCustomersPage, key, page)
	return page, nil
}

func (s *CustomerService) MakeAppointment(ctx context.Context, req appointment.Request, customerID int64) (dto.AppointmentDTO, error) {
	if err := s.checkNotInPast(req.Date, req.Time); err != nil {
		return dto.AppointmentDTO{}, err
	}

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return dto.AppointmentDTO{}, err
	}
	if err := validatePIN(cust.PIN, req.CustomerPIN); err != nil {
		return dto.AppointmentDTO{}, err
	}

	if err := s.appointments.CheckAvailability(ctx, req); err != nil {
		return dto.AppointmentDTO{}, err
	}

	doc, err := s.doctors.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		return dto.AppointmentDTO{}, err
	}

	return s.appointments.Add(ctx, appointment.New(req, cust, doc))
}

func (s *CustomerService) CancelAppointment(ctx context.Context, req appointment.Request, customerID int64) error {
	pin, err := s.repo.GetPIN(ctx, customerID)
	if err != nil {
		return err
	}
	if err := validatePIN(pin, req.CustomerPIN); err != nil {
		return err
	}

	return s.appointments.Delete(ctx, customerID, req.Timestamp())
}

func validatePIN(valid, given int) error {
	if valid != given {
		return &customer.InvalidPINError{PIN: given}
	}
	return nil
}

// checkNotInPast rejects requests for past dates outright, and same-day
// requests whose time has already passed.
func (s *CustomerService) checkNotInPast(date domain.Date, t domain.TimeOfDay) error {
	now := s.now()
	today := domain.DateOf(now)
	if date.Before(today) {
		return appointment.ErrTimeInPast(t)
	}
	if date.Equal(today) && t.Before(domain.NewTimeOfDay(now.Hour(), now.Minute())) {
		return appointment.ErrTimeInPast(t)
	}
	return nil
}
