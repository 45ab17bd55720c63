package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lac-hong-legacy/lecture_api/model"
	"gorm.io/gorm"
)

type RateLimitRepository struct {
	BaseRepository
}

func NewRateLimitRepository(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// GetRateLimit returns nil, nil when no window exists yet.
func (ds *RateLimitRepository) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rateLimit model.RateLimit
	err := ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).First(&rateLimit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rateLimit, nil
}

func (ds *RateLimitRepository) SaveRateLimit(rateLimit *model.RateLimit) error {
	if rateLimit.ID == "" {
		id, _ := uuid.NewV7()
		rateLimit.ID = id.String()
	}
	return ds.db.Save(rateLimit).Error
}

func (ds *RateLimitRepository) DeleteRateLimit(identifier, endpointType string) error {
	return ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).
		Delete(&model.RateLimit{}).Error
}

// CleanupOldRecords drops windows that started before cutoff and are not blocked.
func (ds *RateLimitRepository) CleanupOldRecords(cutoff time.Time) (int64, error) {
	res := ds.db.Where("window_start < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, time.Now()).
		Delete(&model.RateLimit{})
	return res.RowsAffected, res.Error
}

func (ds *RateLimitRepository) Stats(now time.Time) (total int64, blocked int64, err error) {
	if err = ds.db.Model(&model.RateLimit{}).Count(&total).Error; err != nil {
		return
	}
	err = ds.db.Model(&model.RateLimit{}).Where("blocked_until > ?", now).Count(&blocked).Error
	return
}
