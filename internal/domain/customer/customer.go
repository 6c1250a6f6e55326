package customer

import "time"

// Customer records are created out-of-band and are read-only for this
// service. Appointments reference customers; the back-relation is resolved
// by query, never embedded.
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	PIN     int    `gorm:"column:pin;not null"`
	Name    string `gorm:"column:name;type:varchar(100);not null"`
	Surname string `gorm:"column:surname;type:varchar(100);not null"`
}

func (Customer) TableName() string {
	return "customers"
}
