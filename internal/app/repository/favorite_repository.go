package repository

import (
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	FindByCustomerAndProduct(customerID, productID uint) (*model.Favorite, error)
	Create(favorite *model.Favorite) error
	SetStatus(id uint, status model.Status) error
	ListActiveByCustomer(customerID uint) ([]model.Favorite, error)
	IsFavorite(customerID, productID uint) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) FindByCustomerAndProduct(customerID, productID uint) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Create(favorite *model.Favorite) error {
	if err := r.db.Omit("Product").Create(favorite).Error; err != nil {
		logger.Error("Failed to create favorite", err, map[string]interface{}{
			"customer_id": favorite.CustomerID,
			"product_id":  favorite.ProductID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) SetStatus(id uint, status model.Status) error {
	return r.db.Model(&model.Favorite{}).Where("id = ?", id).Updates(model.StatusColumns(status)).Error
}

// ListActiveByCustomer skips favorites whose product is no longer active.
func (r *favoriteRepository) ListActiveByCustomer(customerID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	activeProducts := r.db.Model(&model.Product{}).Select("id").Where("status = ?", model.StatusActive)
	err := r.db.
		Preload("Product").
		Where("customer_id = ? AND status = ?", customerID, model.StatusActive).
		Where("product_id IN (?)", activeProducts).
		Order("updated_at DESC, id DESC").
		Find(&favorites).Error
	if err != nil {
		logger.Error("Failed to list favorites", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) IsFavorite(customerID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("customer_id = ? AND product_id = ? AND status = ?", customerID, productID, model.StatusActive).
		Count(&count).Error
	return count > 0, err
}
