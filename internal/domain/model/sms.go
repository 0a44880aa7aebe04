package model

import "time"

// SmsStatus represents the processing state of an inbound text message
type SmsStatus string

const (
	SmsStatusReceived  SmsStatus = "received"
	SmsStatusForwarded SmsStatus = "forwarded"
	SmsStatusFailed    SmsStatus = "failed"
)

// Sms is an inbound text message relayed from a client device. It has no
// relationship to payments; the collection exists so the operator can audit
// wallet confirmation messages.
type Sms struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Sender      string     `gorm:"not null;size:100;index" json:"sender"`
	Message     string     `gorm:"not null;type:text" json:"message"`
	Timestamp   time.Time  `json:"timestamp"`
	DeviceID    string     `gorm:"column:device_id;not null;size:100;index" json:"device_id"`
	Status      SmsStatus  `gorm:"size:20;not null;default:'received';index" json:"status"`
	Forwarded   bool       `gorm:"default:false" json:"forwarded"`
	ForwardedAt *time.Time `json:"forwarded_at,omitempty"`
	Notes       string     `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Sms) TableName() string {
	return "sms_messages"
}
