package repository

import (
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

type OfferRepository interface {
	WithTx(tx *gorm.DB) OfferRepository
	Create(offer *model.Offer) error
	FindByID(id uint) (*model.Offer, error)
	ListByProduct(productID uint, statuses ...model.Status) ([]model.Offer, error)
	ListEffective(productID uint, now time.Time) ([]model.Offer, error)
	SetStatus(id uint, status model.Status, updatedBy string) error
	SetStatusByProduct(productID uint, status model.Status) (int64, error)
	ExpireEndedBefore(now time.Time) (int64, error)
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) WithTx(tx *gorm.DB) OfferRepository {
	return &offerRepository{db: tx}
}

// effectiveOffers narrows query to active offers whose window contains now.
func effectiveOffers(query *gorm.DB, now time.Time) *gorm.DB {
	return query.
		Where("status = ?", model.StatusActive).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now)
}

func (r *offerRepository) Create(offer *model.Offer) error {
	if err := r.db.Create(offer).Error; err != nil {
		logger.Error("Failed to create offer in database", err, map[string]interface{}{
			"product_id": offer.ProductID,
		})
		return err
	}
	return nil
}

func (r *offerRepository) FindByID(id uint) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.First(&offer, id).Error; err != nil {
		logFindError("Failed to find offer by ID", err, map[string]interface{}{
			"offer_id": id,
		})
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) ListByProduct(productID uint, statuses ...model.Status) ([]model.Offer, error) {
	var offers []model.Offer
	query := withStatuses(r.db.Where("product_id = ?", productID), "status", statuses)
	err := query.Order("created_at DESC, id DESC").Find(&offers).Error
	return offers, err
}

func (r *offerRepository) ListEffective(productID uint, now time.Time) ([]model.Offer, error) {
	var offers []model.Offer
	err := effectiveOffers(r.db.Where("product_id = ?", productID), now).
		Order("created_at DESC, id DESC").
		Find(&offers).Error
	return offers, err
}

func (r *offerRepository) SetStatus(id uint, status model.Status, updatedBy string) error {
	cols := model.StatusColumns(status)
	cols["updated_by"] = updatedBy
	return r.db.Model(&model.Offer{}).Where("id = ?", id).Updates(cols).Error
}

// SetStatusByProduct moves every non-deleted offer of the product to status.
func (r *offerRepository) SetStatusByProduct(productID uint, status model.Status) (int64, error) {
	result := r.db.Model(&model.Offer{}).
		Where("product_id = ? AND status <> ?", productID, model.StatusDeleted).
		Updates(model.StatusColumns(status))
	if result.Error != nil {
		logger.Error("Failed to cascade status to offers", result.Error, map[string]interface{}{
			"product_id": productID,
			"status":     status,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ExpireEndedBefore deactivates active offers whose end date has passed.
func (r *offerRepository) ExpireEndedBefore(now time.Time) (int64, error) {
	result := r.db.Model(&model.Offer{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", model.StatusActive, now).
		Updates(model.StatusColumns(model.StatusDeactivated))
	return result.RowsAffected, result.Error
}
