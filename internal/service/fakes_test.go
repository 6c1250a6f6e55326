package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vetclinic-service/internal/cache"
	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/domain/customer"
	"vetclinic-service/internal/domain/doctor"
	"vetclinic-service/pkg/metrics"
)

// newTestCollector registers against a fresh registry so parallel tests
// never collide on metric names.
func newTestCollector() *metrics.Collector {
	return metrics.NewCollector("test", prometheus.NewRegistry())
}

type fakeCustomerRepo struct {
	customers []customer.Customer

	getByIDCalls int
	getPINCalls  int
	listCalls    int
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	f.getByIDCalls++
	for i := range f.customers {
		if f.customers[i].ID == id {
			c := f.customers[i]
			return &c, nil
		}
	}
	return nil, &customer.NotFoundError{ID: id}
}

func (f *fakeCustomerRepo) GetPIN(_ context.Context, id int64) (int, error) {
	f.getPINCalls++
	for i := range f.customers {
		if f.customers[i].ID == id {
			return f.customers[i].PIN, nil
		}
	}
	return 0, &customer.NotFoundError{ID: id}
}

func (f *fakeCustomerRepo) List(_ context.Context, req domain.PageRequest) ([]customer.Customer, int64, error) {
	f.listCalls++
	return f.customers, int64(len(f.customers)), nil
}

type fakeDoctorRepo struct {
	doctors []doctor.Doctor
	timings map[int64]doctor.TimingDetails

	getByIDCalls int
	timingCalls  int
	listCalls    int
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*doctor.Doctor, error) {
	f.getByIDCalls++
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			d := f.doctors[i]
			return &d, nil
		}
	}
	return nil, &doctor.NotFoundError{ID: id}
}

func (f *fakeDoctorRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDoctorRepo) List(_ context.Context, req domain.PageRequest) ([]doctor.Doctor, int64, error) {
	f.listCalls++
	return f.doctors, int64(len(f.doctors)), nil
}

func (f *fakeDoctorRepo) TimingByDoctorID(_ context.Context, doctorID int64) (*doctor.TimingDetails, error) {
	f.timingCalls++
	timing, ok := f.timings[doctorID]
	if !ok {
		return nil, &doctor.TimingNotFoundError{DoctorID: doctorID}
	}
	return &timing, nil
}

type slotQuery struct {
	doctorID int64
	window   appointment.Window
}

type fakeAppointmentRepo struct {
	appointments []appointment.Appointment
	nextID       int64

	slotAvailable bool
	slotErr       error
	slotQueries   []slotQuery

	createErr    error
	deleteCalls  int
	stuckRow     bool // pretend DeleteByCustomerAndTimestamp silently failed
	listCalls    int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	f.appointments = append(f.appointments, *a)
	return nil
}

func (f *fakeAppointmentRepo) ListByDoctor(_ context.Context, doctorID int64, req domain.PageRequest) ([]appointment.Appointment, int64, error) {
	f.listCalls++
	var out []appointment.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAppointmentRepo) ListByDoctorAndDate(_ context.Context, doctorID int64, date domain.Date, req domain.PageRequest) ([]appointment.Appointment, int64, error) {
	f.listCalls++
	var out []appointment.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.ScheduledDate.Equal(date) {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAppointmentRepo) DeleteByCustomerAndTimestamp(_ context.Context, customerID int64, ts time.Time) error {
	f.deleteCalls++
	if f.stuckRow {
		return nil
	}
	kept := f.appointments[:0]
	for _, a := range f.appointments {
		if a.CustomerID == customerID && a.Timestamp.Equal(ts) {
			continue
		}
		kept = append(kept, a)
	}
	f.appointments = kept
	return nil
}

func (f *fakeAppointmentRepo) ExistsByCustomerAndTimestamp(_ context.Context, customerID int64, ts time.Time) (bool, error) {
	for _, a := range f.appointments {
		if a.CustomerID == customerID && a.Timestamp.Equal(ts) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) IsSlotAvailable(_ context.Context, doctorID int64, w appointment.Window) (bool, error) {
	f.slotQueries = append(f.slotQueries, slotQuery{doctorID: doctorID, window: w})
	return f.slotAvailable, f.slotErr
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// testEnv wires the full service graph against in-memory fakes.
type testEnv struct {
	customerRepo    *fakeCustomerRepo
	doctorRepo      *fakeDoctorRepo
	appointmentRepo *fakeAppointmentRepo
	auditRepo       *fakeAuditRepo
	cache           cache.Cache

	visitDetails *VisitDetailsService
	appointments *AppointmentService
	doctors      *DoctorService
	customers    *CustomerService
	audit        *AuditService
}

// testNow anchors the clock mid-day so same-day past/future checks are
// deterministic.
var testNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	m := newTestCollector()
	c := cache.NewMemory()

	env := &testEnv{
		customerRepo: &fakeCustomerRepo{customers: []customer.Customer{
			{ID: 1, PIN: 1234, Name: "Jan", Surname: "Kowalski"},
			{ID: 2, PIN: 5678, Name: "Maria", Surname: "Wozniak"},
		}},
		doctorRepo: &fakeDoctorRepo{
			doctors: []doctor.Doctor{
				{ID: 10, Title: "DVM", Name: "Anna", Surname: "Nowak"},
				{ID: 11, Title: "DVM", Name: "Piotr", Surname: "Lewandowski"},
			},
			timings: map[int64]doctor.TimingDetails{
				10: {VisitDurationMins: 30, OpeningAt: domain.NewTimeOfDay(8, 0), ClosingAt: domain.NewTimeOfDay(16, 0)},
				11: {VisitDurationMins: 30, OpeningAt: domain.NewTimeOfDay(8, 0), ClosingAt: domain.NewTimeOfDay(10, 0)},
			},
		},
		appointmentRepo: &fakeAppointmentRepo{slotAvailable: true},
		auditRepo:       &fakeAuditRepo{},
		cache:           c,
	}

	env.audit = NewAuditService(env.auditRepo, log, m)
	t.Cleanup(env.audit.Shutdown)

	env.visitDetails = NewVisitDetailsService(env.doctorRepo, c, log)
	env.appointments = NewAppointmentService(env.appointmentRepo, env.visitDetails, c, env.audit, log, m)
	env.doctors = NewDoctorService(env.doctorRepo, env.appointments, c, log)
	env.customers = NewCustomerService(env.customerRepo, env.doctors, env.appointments, c, log)
	env.customers.now = func() time.Time { return testNow }

	return env
}

func bookingRequest() appointment.Request {
	return appointment.Request{
		CustomerPIN: 1234,
		DoctorID:    10,
		Note:        "vaccination",
		Date:        domain.NewDate(2026, time.June, 2),
		Time:        domain.NewTimeOfDay(9, 0),
	}
}
