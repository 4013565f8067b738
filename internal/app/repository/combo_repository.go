package repository

import (
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComboRepository interface {
	WithTx(tx *gorm.DB) ComboRepository
	Create(combo *model.Combo) error
	FindByID(id uint) (*model.Combo, error)
	FindWithItems(id uint) (*model.Combo, error)
	ListByRestaurant(restaurantID uint, statuses ...model.Status) ([]model.Combo, error)
	Update(combo *model.Combo) error
	SetStatus(id uint, status model.Status, updatedBy string) error
	SetStatusForIDs(ids []uint, from []model.Status, to model.Status, updatedBy string) ([]uint, error)
	IDsContainingProduct(productID uint) ([]uint, error)

	CreateItems(items []model.ComboItem) error
	UpdateItem(item *model.ComboItem) error
	DeleteItems(ids []uint) error
	CountLiveItemsForProduct(productID uint) (int64, error)
}

type comboRepository struct {
	db *gorm.DB
}

func NewComboRepository(db *gorm.DB) ComboRepository {
	return &comboRepository{db: db}
}

func (r *comboRepository) WithTx(tx *gorm.DB) ComboRepository {
	return &comboRepository{db: tx}
}

func (r *comboRepository) Create(combo *model.Combo) error {
	logger.Debug("Creating combo in database", map[string]interface{}{
		"restaurant_id": combo.RestaurantID,
		"name":          combo.Name,
	})

	if err := r.db.Omit(clause.Associations).Create(combo).Error; err != nil {
		logger.Error("Failed to create combo in database", err, map[string]interface{}{
			"restaurant_id": combo.RestaurantID,
			"name":          combo.Name,
		})
		return err
	}
	return nil
}

func (r *comboRepository) FindByID(id uint) (*model.Combo, error) {
	var combo model.Combo
	if err := r.db.First(&combo, id).Error; err != nil {
		logFindError("Failed to find combo by ID", err, map[string]interface{}{
			"combo_id": id,
		})
		return nil, err
	}
	return &combo, nil
}

// FindWithItems loads the combo, its items in insertion order and each item's product.
func (r *comboRepository) FindWithItems(id uint) (*model.Combo, error) {
	var combo model.Combo
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&combo, id).Error
	if err != nil {
		logFindError("Failed to find combo with items", err, map[string]interface{}{
			"combo_id": id,
		})
		return nil, err
	}
	return &combo, nil
}

func (r *comboRepository) ListByRestaurant(restaurantID uint, statuses ...model.Status) ([]model.Combo, error) {
	var combos []model.Combo
	query := withStatuses(r.db.Where("restaurant_id = ?", restaurantID), "status", statuses)
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Order("created_at ASC, id ASC").
		Find(&combos).Error
	if err != nil {
		logger.Error("Failed to list combos", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return combos, nil
}

func (r *comboRepository) Update(combo *model.Combo) error {
	if err := r.db.Omit(clause.Associations).Save(combo).Error; err != nil {
		logger.Error("Failed to update combo in database", err, map[string]interface{}{
			"combo_id": combo.ID,
		})
		return err
	}
	return nil
}

// SetStatus moves the combo and every one of its items to status.
func (r *comboRepository) SetStatus(id uint, status model.Status, updatedBy string) error {
	cols := model.StatusColumns(status)
	cols["updated_by"] = updatedBy

	if err := r.db.Model(&model.Combo{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		logger.Error("Failed to set combo status", err, map[string]interface{}{
			"combo_id": id,
			"status":   status,
		})
		return err
	}
	if err := r.db.Model(&model.ComboItem{}).Where("combo_id = ?", id).Updates(model.StatusColumns(status)).Error; err != nil {
		logger.Error("Failed to cascade combo status to items", err, map[string]interface{}{
			"combo_id": id,
			"status":   status,
		})
		return err
	}
	return nil
}

// SetStatusForIDs moves those of ids currently in one of the from statuses to
// to, items included, and returns the ids it changed.
func (r *comboRepository) SetStatusForIDs(ids []uint, from []model.Status, to model.Status, updatedBy string) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var matched []uint
	if err := r.db.Model(&model.Combo{}).
		Where("id IN ? AND status IN ?", ids, from).
		Order("id ASC").
		Pluck("id", &matched).Error; err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, nil
	}

	cols := model.StatusColumns(to)
	cols["updated_by"] = updatedBy
	if err := r.db.Model(&model.Combo{}).Where("id IN ?", matched).Updates(cols).Error; err != nil {
		logger.Error("Failed to set status for combos", err, map[string]interface{}{
			"combo_ids": matched,
			"status":    to,
		})
		return nil, err
	}
	if err := r.db.Model(&model.ComboItem{}).Where("combo_id IN ?", matched).Updates(model.StatusColumns(to)).Error; err != nil {
		return nil, err
	}
	return matched, nil
}

func (r *comboRepository) IDsContainingProduct(productID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.ComboItem{}).
		Where("product_id = ?", productID).
		Distinct().
		Pluck("combo_id", &ids).Error
	return ids, err
}

func (r *comboRepository) CreateItems(items []model.ComboItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.Omit(clause.Associations).Create(&items).Error; err != nil {
		logger.Error("Failed to create combo items", err, map[string]interface{}{
			"combo_id": items[0].ComboID,
			"count":    len(items),
		})
		return err
	}
	return nil
}

func (r *comboRepository) UpdateItem(item *model.ComboItem) error {
	cols := model.StatusColumns(item.Status)
	cols["quantity"] = item.Quantity
	return r.db.Model(&model.ComboItem{}).Where("id = ?", item.ID).Updates(cols).Error
}

// DeleteItems hard-deletes combo items. This is the only catalog hard delete.
func (r *comboRepository) DeleteItems(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Delete(&model.ComboItem{}, ids).Error; err != nil {
		logger.Error("Failed to delete combo items", err, map[string]interface{}{
			"item_ids": ids,
		})
		return err
	}
	return nil
}

// CountLiveItemsForProduct counts combo memberships that are not soft-deleted.
func (r *comboRepository) CountLiveItemsForProduct(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ComboItem{}).
		Where("product_id = ? AND status <> ?", productID, model.StatusDeleted).
		Count(&count).Error
	return count, err
}
