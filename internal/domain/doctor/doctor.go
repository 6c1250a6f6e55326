package doctor

import (
	"time"

	"github.com/shopspring/decimal"

	"vetclinic-service/internal/domain"
)

type Doctor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Title   string `gorm:"column:title;type:varchar(20);not null"`
	Name    string `gorm:"column:name;type:varchar(100);not null"`
	Surname string `gorm:"column:surname;type:varchar(100);not null"`

	// Every doctor owns exactly one timing profile.
	VisitDetails VisitDetails `gorm:"foreignKey:DoctorID"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// VisitDetails is the doctor's timing profile: how long a visit takes and
// between which wall-clock times the doctor accepts appointments.
// Invariant: OpeningAt < ClosingAt; windows spanning midnight are a
// recorded limitation and are not supported.
type VisitDetails struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	DoctorID int64 `gorm:"column:doctor_id;uniqueIndex;not null"`

	VisitDurationMins int              `gorm:"column:visit_duration_mins;not null"`
	OpeningAt         domain.TimeOfDay `gorm:"column:opening_at;type:time;not null"`
	ClosingAt         domain.TimeOfDay `gorm:"column:closing_at;type:time;not null"`
	VisitPrice        decimal.Decimal  `gorm:"column:visit_price;type:numeric(10,2);not null"`
}

func (VisitDetails) TableName() string {
	return "visit_details"
}

// TimingDetails is the slice of VisitDetails the availability decision needs.
type TimingDetails struct {
	VisitDurationMins int              `json:"visitDurationInMinutes"`
	OpeningAt         domain.TimeOfDay `json:"openingAt"`
	ClosingAt         domain.TimeOfDay `json:"closingAt"`
}
