package repository

import (
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

type AddonRepository interface {
	WithTx(tx *gorm.DB) AddonRepository
	Create(addon *model.Addon) error
	FindByID(id uint) (*model.Addon, error)
	FindByIDsForRestaurant(restaurantID uint, ids []uint, status model.Status) ([]model.Addon, error)
	ListByRestaurant(restaurantID uint, statuses ...model.Status) ([]model.Addon, error)
	Update(addon *model.Addon) error
	SetStatus(id uint, status model.Status, updatedBy string) error
	SetLinksStatus(addonID uint, status model.Status) error
}

type addonRepository struct {
	db *gorm.DB
}

func NewAddonRepository(db *gorm.DB) AddonRepository {
	return &addonRepository{db: db}
}

func (r *addonRepository) WithTx(tx *gorm.DB) AddonRepository {
	return &addonRepository{db: tx}
}

func (r *addonRepository) Create(addon *model.Addon) error {
	if err := r.db.Create(addon).Error; err != nil {
		logger.Error("Failed to create addon in database", err, map[string]interface{}{
			"restaurant_id": addon.RestaurantID,
			"name":          addon.Name,
		})
		return err
	}
	return nil
}

func (r *addonRepository) FindByID(id uint) (*model.Addon, error) {
	var addon model.Addon
	if err := r.db.First(&addon, id).Error; err != nil {
		logFindError("Failed to find addon by ID", err, map[string]interface{}{
			"addon_id": id,
		})
		return nil, err
	}
	return &addon, nil
}

func (r *addonRepository) FindByIDsForRestaurant(restaurantID uint, ids []uint, status model.Status) ([]model.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var addons []model.Addon
	err := r.db.Where("id IN ? AND restaurant_id = ? AND status = ?", ids, restaurantID, status).
		Find(&addons).Error
	return addons, err
}

func (r *addonRepository) ListByRestaurant(restaurantID uint, statuses ...model.Status) ([]model.Addon, error) {
	var addons []model.Addon
	query := withStatuses(r.db.Where("restaurant_id = ?", restaurantID), "status", statuses)
	if err := query.Order("name ASC").Find(&addons).Error; err != nil {
		logger.Error("Failed to list addons", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return addons, nil
}

func (r *addonRepository) Update(addon *model.Addon) error {
	return r.db.Save(addon).Error
}

func (r *addonRepository) SetStatus(id uint, status model.Status, updatedBy string) error {
	cols := model.StatusColumns(status)
	cols["updated_by"] = updatedBy
	return r.db.Model(&model.Addon{}).Where("id = ?", id).Updates(cols).Error
}

// SetLinksStatus moves every product attachment of the addon to status.
func (r *addonRepository) SetLinksStatus(addonID uint, status model.Status) error {
	err := r.db.Model(&model.AddonPerProduct{}).
		Where("addon_id = ?", addonID).
		Updates(model.StatusColumns(status)).Error
	if err != nil {
		logger.Error("Failed to cascade addon status to products", err, map[string]interface{}{
			"addon_id": addonID,
			"status":   status,
		})
	}
	return err
}
