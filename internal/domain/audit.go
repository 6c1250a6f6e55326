package domain

import "time"

type AuditAction string

const (
	ActionBook   AuditAction = "book"
	ActionCancel AuditAction = "cancel"
)

// AuditLog records booking and cancellation events. Entries are written
// asynchronously and may be dropped under pressure; they are not part of
// the correctness model.
type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	Action        AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	CustomerID    int64       `gorm:"column:customer_id;not null;index"`
	DoctorID      int64       `gorm:"column:doctor_id"`
	AppointmentAt time.Time   `gorm:"column:appointment_at"`
	RequestID     string      `gorm:"column:request_id;type:varchar(50)"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
