package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/robotopup/backend/internal/domain/errors"
	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/repository"
)

// SmsService stores and queries inbound text messages relayed from client
// devices. Independent of the payment lifecycle; the operator uses it to
// cross-check wallet confirmation messages.
type SmsService struct {
	smsRepo repository.SmsRepository
	logger  *zap.Logger
}

// NewSmsService creates a new SMS intake service
func NewSmsService(smsRepo repository.SmsRepository, logger *zap.Logger) *SmsService {
	return &SmsService{
		smsRepo: smsRepo,
		logger:  logger,
	}
}

// ReceiveSmsInput is a raw message relayed by a device. Only the message body
// is mandatory; missing metadata gets placeholder values.
type ReceiveSmsInput struct {
	Sender    string
	Message   string
	Timestamp *time.Time
	DeviceID  string
}

// Receive stores an inbound SMS with status "received".
func (s *SmsService) Receive(ctx context.Context, in ReceiveSmsInput) (*model.Sms, error) {
	if in.Message == "" {
		return nil, domainErrors.ErrInvalidSms
	}

	sender := in.Sender
	if sender == "" {
		sender = "Unknown"
	}
	deviceID := in.DeviceID
	if deviceID == "" {
		deviceID = "unknown-device"
	}

	now := time.Now()
	timestamp := now
	if in.Timestamp != nil {
		timestamp = *in.Timestamp
	}

	sms := &model.Sms{
		Sender:    sender,
		Message:   in.Message,
		Timestamp: timestamp,
		DeviceID:  deviceID,
		Status:    model.SmsStatusReceived,
		Forwarded: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.smsRepo.Create(ctx, sms); err != nil {
		return nil, err
	}

	s.logger.Info("SMS received",
		zap.String("sender", sms.Sender),
		zap.String("device_id", sms.DeviceID),
		zap.Int64("id", sms.ID))

	return sms, nil
}

// SmsPage is one page of SMS results with pagination bookkeeping.
type SmsPage struct {
	Items   []*model.Sms `json:"items"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	Pages   int          `json:"pages"`
	HasNext bool         `json:"has_next"`
	HasPrev bool         `json:"has_prev"`
}

// List returns a filtered, paginated slice of the SMS collection, newest
// first. Page numbers are 1-based.
func (s *SmsService) List(ctx context.Context, filter repository.SmsFilter, page int) (*SmsPage, error) {
	if page < 1 {
		page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	} else if filter.Limit > 200 {
		filter.Limit = 200
	}
	filter.Offset = (page - 1) * filter.Limit

	items, total, err := s.smsRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &SmsPage{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   filter.Limit,
		Pages:   pages,
		HasNext: int64(page*filter.Limit) < total,
		HasPrev: page > 1,
	}, nil
}

// Get returns a single SMS by ID.
func (s *SmsService) Get(ctx context.Context, id int64) (*model.Sms, error) {
	sms, err := s.smsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sms == nil {
		return nil, domainErrors.ErrSmsNotFound
	}
	return sms, nil
}

// UpdateStatusInput carries partial SMS status updates.
type UpdateStatusInput struct {
	Status    *model.SmsStatus
	Forwarded *bool
	Notes     *string
}

// UpdateStatus patches the processing state of one SMS. Setting Forwarded
// stamps or clears ForwardedAt explicitly.
func (s *SmsService) UpdateStatus(ctx context.Context, id int64, in UpdateStatusInput) (*model.Sms, error) {
	sms, err := s.smsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sms == nil {
		return nil, domainErrors.ErrSmsNotFound
	}

	if in.Status != nil {
		sms.Status = *in.Status
	}
	if in.Forwarded != nil {
		sms.Forwarded = *in.Forwarded
		if *in.Forwarded {
			now := time.Now()
			sms.ForwardedAt = &now
		} else {
			sms.ForwardedAt = nil
		}
	}
	if in.Notes != nil {
		sms.Notes = *in.Notes
	}
	sms.UpdatedAt = time.Now()

	if err := s.smsRepo.Update(ctx, sms); err != nil {
		return nil, err
	}
	return sms, nil
}

// Search runs a substring search across message bodies and senders.
func (s *SmsService) Search(ctx context.Context, query string) ([]*model.Sms, error) {
	return s.smsRepo.Search(ctx, query, 50)
}

// Delete removes one SMS permanently.
func (s *SmsService) Delete(ctx context.Context, id int64) (*model.Sms, error) {
	sms, err := s.smsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sms == nil {
		return nil, domainErrors.ErrSmsNotFound
	}
	if err := s.smsRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return sms, nil
}

// ClearAll wipes the entire SMS collection and returns how many records were
// removed. Admin-only escape hatch.
func (s *SmsService) ClearAll(ctx context.Context) (int64, error) {
	deleted, err := s.smsRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("SMS collection cleared", zap.Int64("deleted", deleted))
	return deleted, nil
}

// Stats returns the aggregated overview of the SMS collection.
func (s *SmsService) Stats(ctx context.Context) (*repository.SmsStats, error) {
	return s.smsRepo.Stats(ctx)
}
