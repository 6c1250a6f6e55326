package appointment

import (
	"time"

	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/customer"
	"vetclinic-service/internal/domain/doctor"
)

// Appointment is created by booking and removed by cancellation; it is
// never updated (no reschedule). Timestamp is always the combination of
// ScheduledDate and ScheduledTime and is the authoritative value for
// comparisons and conflict queries.
type Appointment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Note          string           `gorm:"column:note;type:text"`
	ScheduledDate domain.Date      `gorm:"column:scheduled_date;type:date;not null"`
	ScheduledTime domain.TimeOfDay `gorm:"column:scheduled_time;type:time;not null"`
	Timestamp     time.Time        `gorm:"column:timestamp;not null;index"`

	CustomerID int64             `gorm:"column:customer_id;not null;index"`
	Customer   customer.Customer `gorm:"foreignKey:CustomerID"`
	DoctorID   int64             `gorm:"column:doctor_id;not null;index"`
	Doctor     doctor.Doctor     `gorm:"foreignKey:DoctorID"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Request is the transient booking / cancellation input.
type Request struct {
	CustomerPIN int              `json:"customerPin"`
	DoctorID    int64            `json:"doctorId"`
	Note        string           `json:"note"`
	Date        domain.Date      `json:"date"`
	Time        domain.TimeOfDay `json:"time"`
}

// Timestamp combines the requested date and time.
func (r Request) Timestamp() time.Time {
	return r.Date.At(r.Time)
}

// New builds the appointment persisted for an accepted booking request.
func New(req Request, c *customer.Customer, d *doctor.Doctor) *Appointment {
	return &Appointment{
		Note:          req.Note,
		ScheduledDate: req.Date,
		ScheduledTime: req.Time,
		Timestamp:     req.Timestamp(),
		CustomerID:    c.ID,
		Customer:      *c,
		DoctorID:      d.ID,
		Doctor:        *d,
	}
}

// Window is the conflict window the availability query consumes: existing
// appointments with a timestamp strictly inside (Start, End), or exactly
// at At, conflict with the requested slot.
type Window struct {
	Start time.Time
	End   time.Time
	At    time.Time
}

// ConflictWindow spans durationMins minutes either side of the requested
// start. The end is bumped to the next day when adding the duration rolls
// the clock to hour 00; times that wrap further than that are a recorded
// limitation, as are opening windows spanning midnight.
func ConflictWindow(date domain.Date, t domain.TimeOfDay, durationMins int) Window {
	endTime := t.AddMinutes(durationMins)
	endDate := date
	if endTime.Hour() == 0 {
		endDate = date.AddDays(1)
	}
	return Window{
		Start: date.At(t.AddMinutes(-durationMins)),
		End:   endDate.At(endTime),
		At:    date.At(t),
	}
}

// FitsOpeningWindow reports whether a visit starting at t both begins
// after opening and can finish before closing. Opening is inclusive;
// closing is exclusive.
func FitsOpeningWindow(t domain.TimeOfDay, timing doctor.TimingDetails) bool {
	lastStart := timing.ClosingAt.AddMinutes(-timing.VisitDurationMins)
	return !t.Before(timing.OpeningAt) && t != timing.ClosingAt && !t.After(lastStart)
}
