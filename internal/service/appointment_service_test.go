package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic-service/internal/cache"
	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/domain/doctor"
)

// Doctor 11 is open 08:00-10:00 with 30 minute visits, so 08:30 and 09:30
// are the only bookable half-hour starts. Every other hour must be turned
// away before the store is ever consulted.
func TestCheckAvailabilityOutsideOpeningWindow(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		if hour >= 8 && hour <= 10 {
			continue
		}
		t.Run(fmt.Sprintf("%02d:30", hour), func(t *testing.T) {
			env := newTestEnv(t)
			req := bookingRequest()
			req.DoctorID = 11
			req.Time = domain.NewTimeOfDay(hour, 30)

			err := env.appointments.CheckAvailability(context.Background(), req)

			require.Error(t, err)
			assert.ErrorIs(t, err, appointment.ErrDateUnavailable)
			assert.Equal(t,
				fmt.Sprintf("Cannot schedule appointment at %02d:30. Visit duration: 30 min. Opening times: 08:00 - 10:00.", hour),
				err.Error())
			assert.Empty(t, env.appointmentRepo.slotQueries, "store must not be consulted for out-of-window requests")
		})
	}
}

func TestCheckAvailabilityInsideOpeningWindow(t *testing.T) {
	env := newTestEnv(t)

	for _, tod := range []domain.TimeOfDay{
		domain.NewTimeOfDay(8, 0),
		domain.NewTimeOfDay(8, 30),
		domain.NewTimeOfDay(9, 30),
	} {
		req := bookingRequest()
		req.DoctorID = 11
		req.Time = tod
		assert.NoError(t, env.appointments.CheckAvailability(context.Background(), req))
	}
}

func TestCheckAvailabilityConflictWindowBounds(t *testing.T) {
	env := newTestEnv(t)

	err := env.appointments.CheckAvailability(context.Background(), bookingRequest())
	require.NoError(t, err)

	require.Len(t, env.appointmentRepo.slotQueries, 1)
	q := env.appointmentRepo.slotQueries[0]
	assert.Equal(t, int64(10), q.doctorID)
	assert.Equal(t, time.Date(2026, time.June, 2, 8, 30, 0, 0, time.UTC), q.window.Start)
	assert.Equal(t, time.Date(2026, time.June, 2, 9, 30, 0, 0, time.UTC), q.window.End)
	assert.Equal(t, time.Date(2026, time.June, 2, 9, 0, 0, 0, time.UTC), q.window.At)
}

func TestCheckAvailabilitySlotTaken(t *testing.T) {
	env := newTestEnv(t)
	env.appointmentRepo.slotAvailable = false

	err := env.appointments.CheckAvailability(context.Background(), bookingRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, appointment.ErrDateUnavailable)
	assert.Equal(t,
		"Date '2026-06-02 09:00' is already taken. Please try schedule appointment at different time.",
		err.Error())
}

func TestCheckAvailabilityUnknownDoctor(t *testing.T) {
	env := newTestEnv(t)

	req := bookingRequest()
	req.DoctorID = 99

	err := env.appointments.CheckAvailability(context.Background(), req)

	assert.ErrorIs(t, err, doctor.ErrTimingDetailsNotFound)
	assert.Empty(t, env.appointmentRepo.slotQueries)
}

func TestCheckAvailabilityStoreError(t *testing.T) {
	env := newTestEnv(t)
	env.appointmentRepo.slotErr = errors.New("connection reset")

	err := env.appointments.CheckAvailability(context.Background(), bookingRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, appointment.ErrDateUnavailable)
}

func TestDeleteRemovalFailure(t *testing.T) {
	env := newTestEnv(t)
	env.appointmentRepo.stuckRow = true

	ctx := context.Background()
	_, err := env.customers.MakeAppointment(ctx, bookingRequest(), 1)
	require.NoError(t, err)

	// Seed a listing so we can observe that a failed cancellation leaves
	// the appointments page cache intact.
	_, err = env.doctors.ListDoctorAppointments(ctx, 10, nil, domain.PageRequest{Size: 20})
	require.NoError(t, err)
	listCallsBefore := env.appointmentRepo.listCalls

	ts := bookingRequest().Timestamp()
	err = env.appointments.Delete(ctx, 1, ts)

	require.Error(t, err)
	assert.ErrorIs(t, err, appointment.ErrRemovalFailed)
	assert.Equal(t, "Appointment cancellation has failed !", err.Error())
	assert.Equal(t, 1, env.appointmentRepo.deleteCalls)

	_, err = env.doctors.ListDoctorAppointments(ctx, 10, nil, domain.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Equal(t, listCallsBefore, env.appointmentRepo.listCalls, "listing should still be served from cache")
}

func TestDeleteMissingAppointmentIsNoop(t *testing.T) {
	env := newTestEnv(t)

	err := env.appointments.Delete(context.Background(), 1, testNow.Add(24*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 1, env.appointmentRepo.deleteCalls)
}

func TestDeleteEvictsAppointmentsPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.customers.MakeAppointment(ctx, bookingRequest(), 1)
	require.NoError(t, err)

	page, err := env.doctors.ListDoctorAppointments(ctx, 10, nil, domain.PageRequest{Size: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalElements)

	err = env.appointments.Delete(ctx, 1, bookingRequest().Timestamp())
	require.NoError(t, err)

	page, err = env.doctors.ListDoctorAppointments(ctx, 10, nil, domain.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.True(t, page.Empty)
	assert.Equal(t, int64(0), page.TotalElements)
}

func TestAppointmentsPageByDoctor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dto, err := env.customers.MakeAppointment(ctx, bookingRequest(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Anna", dto.PersonName, "customer-facing result names the doctor")

	page, err := env.appointments.AppointmentsPageByDoctor(ctx, domain.PageRequest{Page: 0, Size: 20}, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.True(t, page.First)
	assert.True(t, page.Last)
	assert.False(t, page.Empty)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Jan", page.Content[0].PersonName, "doctor-facing result names the customer")
	assert.Equal(t, "Kowalski", page.Content[0].PersonSurname)
	assert.Equal(t, "vaccination", page.Content[0].Note)
}

func TestAppointmentsPageByDoctorForDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := bookingRequest()
	_, err := env.customers.MakeAppointment(ctx, first, 1)
	require.NoError(t, err)

	second := bookingRequest()
	second.Date = domain.NewDate(2026, time.June, 3)
	_, err = env.customers.MakeAppointment(ctx, second, 1)
	require.NoError(t, err)

	date := domain.NewDate(2026, time.June, 3)
	page, err := env.appointments.AppointmentsPageByDoctorForDate(ctx, domain.PageRequest{Size: 20}, 10, date)
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, date, page.Content[0].ScheduledDate)
}

// A broken cache degrades to a miss; it must never fail a booking or a read.
func TestBookingSurvivesCacheFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.customers.cache = failingCache{}
	env.doctors.cache = failingCache{}
	env.appointments.cache = failingCache{}
	env.visitDetails.cache = failingCache{}

	dto, err := env.customers.MakeAppointment(ctx, bookingRequest(), 1)
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)

	page, err := env.doctors.ListDoctorAppointments(ctx, 10, nil, domain.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, string, any) (bool, error) {
	return false, errors.New("cache down")
}
func (failingCache) Set(context.Context, string, string, any) error { return errors.New("cache down") }
func (failingCache) EvictAll(context.Context, string) error         { return errors.New("cache down") }

var _ cache.Cache = failingCache{}
