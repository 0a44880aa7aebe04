package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/robotopup/backend/internal/domain/errors"
	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/repository"
	"github.com/robotopup/backend/internal/usecase"
)

// MockSmsRepository is a mock implementation of SmsRepository
type MockSmsRepository struct {
	mock.Mock
}

func (m *MockSmsRepository) Create(ctx context.Context, sms *model.Sms) error {
	args := m.Called(ctx, sms)
	return args.Error(0)
}

func (m *MockSmsRepository) List(ctx context.Context, filter repository.SmsFilter) ([]*model.Sms, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Sms), args.Get(1).(int64), args.Error(2)
}

func (m *MockSmsRepository) GetByID(ctx context.Context, id int64) (*model.Sms, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sms), args.Error(1)
}

func (m *MockSmsRepository) Update(ctx context.Context, sms *model.Sms) error {
	args := m.Called(ctx, sms)
	return args.Error(0)
}

func (m *MockSmsRepository) Search(ctx context.Context, query string, limit int) ([]*model.Sms, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Sms), args.Error(1)
}

func (m *MockSmsRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSmsRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSmsRepository) Stats(ctx context.Context) (*repository.SmsStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SmsStats), args.Error(1)
}

func TestSmsService_Receive(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("stores an inbound message", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		repo.On("Create", ctx, mock.MatchedBy(func(sms *model.Sms) bool {
			return sms.Sender == "bKash" &&
				sms.Message == "You have received Tk 150.00" &&
				sms.DeviceID == "device-1" &&
				sms.Status == model.SmsStatusReceived &&
				sms.Timestamp.Equal(ts) &&
				!sms.Forwarded
		})).Return(nil)

		sms, err := service.Receive(ctx, usecase.ReceiveSmsInput{
			Sender:    "bKash",
			Message:   "You have received Tk 150.00",
			Timestamp: &ts,
			DeviceID:  "device-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.SmsStatusReceived, sms.Status)
		repo.AssertExpectations(t)
	})

	t.Run("fills placeholder metadata", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		repo.On("Create", ctx, mock.AnythingOfType("*model.Sms")).Return(nil)

		sms, err := service.Receive(ctx, usecase.ReceiveSmsInput{Message: "hello"})

		assert.NoError(t, err)
		assert.Equal(t, "Unknown", sms.Sender)
		assert.Equal(t, "unknown-device", sms.DeviceID)
		assert.False(t, sms.Timestamp.IsZero())
	})

	t.Run("rejects an empty message body", func(t *testing.T) {
		service := usecase.NewSmsService(new(MockSmsRepository), logger)

		_, err := service.Receive(ctx, usecase.ReceiveSmsInput{Sender: "bKash"})

		assert.ErrorIs(t, err, domainErrors.ErrInvalidSms)
	})
}

func TestSmsService_List(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("paginates with defaults", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		repo.On("List", ctx, repository.SmsFilter{Limit: 50, Offset: 0}).
			Return([]*model.Sms{{ID: 1}}, int64(120), nil)

		page, err := service.List(ctx, repository.SmsFilter{}, 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 50, page.Limit)
		assert.Equal(t, int64(120), page.Total)
		assert.Equal(t, 3, page.Pages)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrev)
	})

	t.Run("clamps oversized limits and offsets by page", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		repo.On("List", ctx, repository.SmsFilter{Limit: 200, Offset: 400}).
			Return([]*model.Sms{}, int64(450), nil)

		page, err := service.List(ctx, repository.SmsFilter{Limit: 9999}, 3)

		assert.NoError(t, err)
		assert.Equal(t, 3, page.Page)
		assert.Equal(t, 200, page.Limit)
		assert.True(t, page.HasPrev)
	})
}

func TestSmsService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("forwarding stamps the forwarded time", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		stored := &model.Sms{ID: 5, Status: model.SmsStatusReceived}
		repo.On("GetByID", ctx, int64(5)).Return(stored, nil)
		repo.On("Update", ctx, stored).Return(nil)

		forwarded := true
		status := model.SmsStatusForwarded
		sms, err := service.UpdateStatus(ctx, 5, usecase.UpdateStatusInput{
			Status:    &status,
			Forwarded: &forwarded,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.SmsStatusForwarded, sms.Status)
		assert.True(t, sms.Forwarded)
		assert.NotNil(t, sms.ForwardedAt)
	})

	t.Run("unforwarding clears the stamp", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		then := time.Now()
		stored := &model.Sms{ID: 6, Forwarded: true, ForwardedAt: &then}
		repo.On("GetByID", ctx, int64(6)).Return(stored, nil)
		repo.On("Update", ctx, stored).Return(nil)

		forwarded := false
		sms, err := service.UpdateStatus(ctx, 6, usecase.UpdateStatusInput{Forwarded: &forwarded})

		assert.NoError(t, err)
		assert.False(t, sms.Forwarded)
		assert.Nil(t, sms.ForwardedAt)
	})

	t.Run("unknown ID returns not found", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		repo.On("GetByID", ctx, int64(404)).Return(nil, nil)

		_, err := service.UpdateStatus(ctx, 404, usecase.UpdateStatusInput{})

		assert.ErrorIs(t, err, domainErrors.ErrSmsNotFound)
	})
}

func TestSmsService_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("delete returns the removed message", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		stored := &model.Sms{ID: 9, Sender: "bKash"}
		repo.On("GetByID", ctx, int64(9)).Return(stored, nil)
		repo.On("Delete", ctx, int64(9)).Return(nil)

		sms, err := service.Delete(ctx, 9)

		assert.NoError(t, err)
		assert.Equal(t, stored, sms)
	})

	t.Run("clear all reports the deleted count", func(t *testing.T) {
		repo := new(MockSmsRepository)
		service := usecase.NewSmsService(repo, logger)

		repo.On("DeleteAll", ctx).Return(int64(37), nil)

		deleted, err := service.ClearAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(37), deleted)
	})
}
