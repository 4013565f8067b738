package repository

import (
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HomeAdRepository interface {
	Create(ad *model.HomeAd) error
	FindByID(id uint) (*model.HomeAd, error)
	Update(ad *model.HomeAd) error
	SetStatus(id uint, status model.Status, updatedBy string) error
	ListAll(statuses ...model.Status) ([]model.HomeAd, error)
	ListVisible(now time.Time) ([]model.HomeAd, error)
}

type homeAdRepository struct {
	db *gorm.DB
}

func NewHomeAdRepository(db *gorm.DB) HomeAdRepository {
	return &homeAdRepository{db: db}
}

func (r *homeAdRepository) Create(ad *model.HomeAd) error {
	if err := r.db.Omit(clause.Associations).Create(ad).Error; err != nil {
		logger.Error("Failed to create home ad", err, map[string]interface{}{
			"restaurant_id": ad.RestaurantID,
		})
		return err
	}
	return nil
}

func (r *homeAdRepository) FindByID(id uint) (*model.HomeAd, error) {
	var ad model.HomeAd
	if err := r.db.First(&ad, id).Error; err != nil {
		logFindError("Failed to find home ad by ID", err, map[string]interface{}{
			"home_ad_id": id,
		})
		return nil, err
	}
	return &ad, nil
}

func (r *homeAdRepository) Update(ad *model.HomeAd) error {
	return r.db.Omit(clause.Associations).Save(ad).Error
}

func (r *homeAdRepository) SetStatus(id uint, status model.Status, updatedBy string) error {
	cols := model.StatusColumns(status)
	cols["updated_by"] = updatedBy
	return r.db.Model(&model.HomeAd{}).Where("id = ?", id).Updates(cols).Error
}

func (r *homeAdRepository) ListAll(statuses ...model.Status) ([]model.HomeAd, error) {
	var ads []model.HomeAd
	err := withStatuses(r.db, "status", statuses).
		Order("created_at DESC, id DESC").
		Find(&ads).Error
	return ads, err
}

// ListVisible returns active ads inside their window, with the restaurant loaded.
func (r *homeAdRepository) ListVisible(now time.Time) ([]model.HomeAd, error) {
	var ads []model.HomeAd
	err := r.db.
		Preload("Restaurant").
		Where("status = ?", model.StatusActive).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("created_at DESC, id DESC").
		Find(&ads).Error
	if err != nil {
		logger.Error("Failed to list visible home ads", err, nil)
		return nil, err
	}
	return ads, nil
}
