package repository

import (
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(category *model.Category) error
	FindByID(id uint) (*model.Category, error)
	ListByRestaurant(restaurantID uint, statuses ...model.Status) ([]model.Category, error)
	Update(category *model.Category) error
	SetStatus(id uint, status model.Status, updatedBy string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepository{db: tx}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"restaurant_id": category.RestaurantID,
		"name":          category.Name,
		"status":        category.Status,
	})

	if err := r.db.Omit(clause.Associations).Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"restaurant_id": category.RestaurantID,
			"name":          category.Name,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		logFindError("Failed to find category by ID", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByRestaurant(restaurantID uint, statuses ...model.Status) ([]model.Category, error) {
	var categories []model.Category
	query := withStatuses(r.db.Where("restaurant_id = ?", restaurantID), "status", statuses)
	if err := query.Order("created_at ASC, id ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	if err := r.db.Omit(clause.Associations).Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) SetStatus(id uint, status model.Status, updatedBy string) error {
	cols := model.StatusColumns(status)
	cols["updated_by"] = updatedBy

	if err := r.db.Model(&model.Category{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		logger.Error("Failed to set category status", err, map[string]interface{}{
			"category_id": id,
			"status":      status,
		})
		return err
	}
	return nil
}
