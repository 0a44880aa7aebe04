package repository

import (
	"context"
	"time"

	"github.com/robotopup/backend/internal/domain/model"
)

// SmsFilter narrows SMS listings. Zero values mean "no constraint".
type SmsFilter struct {
	DeviceID  string
	Sender    string // matched as a case-insensitive substring
	Status    model.SmsStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// DeviceCount aggregates message volume per reporting device.
type DeviceCount struct {
	DeviceID     string    `json:"device_id"`
	Count        int64     `json:"count"`
	FirstMessage time.Time `json:"first_message"`
	LastMessage  time.Time `json:"last_message"`
}

// SenderCount aggregates message volume per sender.
type SenderCount struct {
	Sender      string    `json:"sender"`
	Count       int64     `json:"count"`
	LastMessage time.Time `json:"last_message"`
}

// SmsStats is the operator-facing overview of the SMS collection.
type SmsStats struct {
	Total      int64         `json:"total"`
	Forwarded  int64         `json:"forwarded"`
	Failed     int64         `json:"failed"`
	Pending    int64         `json:"pending"`
	Last24h    int64         `json:"last_24_hours"`
	Today      int64         `json:"today"`
	ByDevice   []DeviceCount `json:"by_device"`
	TopSenders []SenderCount `json:"top_senders"`
}

// SmsRepository persists inbound text messages.
type SmsRepository interface {
	Create(ctx context.Context, sms *model.Sms) error
	List(ctx context.Context, filter SmsFilter) ([]*model.Sms, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Sms, error)
	Update(ctx context.Context, sms *model.Sms) error
	Search(ctx context.Context, query string, limit int) ([]*model.Sms, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*SmsStats, error)
}
