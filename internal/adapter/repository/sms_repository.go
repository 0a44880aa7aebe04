package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/repository"
)

type smsRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSmsRepository creates a new GORM-backed SMS repository
func NewSmsRepository(db *gorm.DB, logger *zap.Logger) repository.SmsRepository {
	return &smsRepository{db: db, logger: logger}
}

func (r *smsRepository) Create(ctx context.Context, sms *model.Sms) error {
	err := r.db.WithContext(ctx).Create(sms).Error
	if err != nil {
		r.logger.Error("Failed to store SMS",
			zap.String("device_id", sms.DeviceID),
			zap.Error(err))
		return fmt.Errorf("failed to store sms: %w", err)
	}
	return nil
}

func (r *smsRepository) applyFilter(q *gorm.DB, filter repository.SmsFilter) *gorm.DB {
	if filter.DeviceID != "" {
		q = q.Where("device_id = ?", filter.DeviceID)
	}
	if filter.Sender != "" {
		q = q.Where("sender ILIKE ?", "%"+filter.Sender+"%")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}
	return q
}

func (r *smsRepository) List(ctx context.Context, filter repository.SmsFilter) ([]*model.Sms, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&model.Sms{}), filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sms: %w", err)
	}

	var items []*model.Sms
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sms: %w", err)
	}

	return items, total, nil
}

func (r *smsRepository) GetByID(ctx context.Context, id int64) (*model.Sms, error) {
	var sms model.Sms

	err := r.db.WithContext(ctx).First(&sms, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sms: %w", err)
	}

	return &sms, nil
}

func (r *smsRepository) Update(ctx context.Context, sms *model.Sms) error {
	err := r.db.WithContext(ctx).Save(sms).Error
	if err != nil {
		return fmt.Errorf("failed to update sms: %w", err)
	}
	return nil
}

func (r *smsRepository) Search(ctx context.Context, query string, limit int) ([]*model.Sms, error) {
	var items []*model.Sms

	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("message ILIKE ? OR sender ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search sms: %w", err)
	}

	return items, nil
}

func (r *smsRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Delete(&model.Sms{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete sms: %w", err)
	}
	return nil
}

func (r *smsRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Sms{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear sms collection: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Stats aggregates the operator overview in a handful of queries. The
// collection stays small enough (one wallet's inbox) that this needs no
// caching.
func (r *smsRepository) Stats(ctx context.Context) (*repository.SmsStats, error) {
	db := r.db.WithContext(ctx)
	stats := &repository.SmsStats{}

	if err := db.Model(&model.Sms{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sms: %w", err)
	}
	if err := db.Model(&model.Sms{}).Where("forwarded = ?", true).Count(&stats.Forwarded).Error; err != nil {
		return nil, fmt.Errorf("failed to count forwarded sms: %w", err)
	}
	if err := db.Model(&model.Sms{}).Where("status = ?", model.SmsStatusFailed).Count(&stats.Failed).Error; err != nil {
		return nil, fmt.Errorf("failed to count failed sms: %w", err)
	}
	stats.Pending = stats.Total - stats.Forwarded - stats.Failed

	now := time.Now()
	dayAgo := now.Add(-24 * time.Hour)
	if err := db.Model(&model.Sms{}).Where("created_at >= ?", dayAgo).Count(&stats.Last24h).Error; err != nil {
		return nil, fmt.Errorf("failed to count recent sms: %w", err)
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&model.Sms{}).Where("created_at >= ?", todayStart).Count(&stats.Today).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's sms: %w", err)
	}

	err := db.Model(&model.Sms{}).
		Select("device_id, count(*) as count, min(created_at) as first_message, max(created_at) as last_message").
		Group("device_id").
		Order("count DESC").
		Scan(&stats.ByDevice).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group sms by device: %w", err)
	}

	err = db.Model(&model.Sms{}).
		Select("sender, count(*) as count, max(created_at) as last_message").
		Group("sender").
		Order("count DESC").
		Limit(10).
		Scan(&stats.TopSenders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group sms by sender: %w", err)
	}

	return stats, nil
}
