package repository

import (
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

type RestaurantFilter struct {
	City   string
	Search string
	// bounding box, all four set or none
	MinLat, MaxLat, MinLng, MaxLng *float64
	VerifiedOnly                   bool
}

type RestaurantRepository interface {
	FindByID(id uint) (*model.Restaurant, error)
	FindWithFilter(filter RestaurantFilter) ([]model.Restaurant, error)
	SetVerified(id uint, verifiedAt time.Time) error
	RatingSummary(restaurantIDs []uint) (map[uint]RatingAggregate, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) FindByID(id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		logFindError("Failed to find restaurant by ID", err, map[string]interface{}{
			"restaurant_id": id,
		})
		return nil, err
	}
	return &restaurant, nil
}

// FindWithFilter lists active restaurants.
func (r *restaurantRepository) FindWithFilter(filter RestaurantFilter) ([]model.Restaurant, error) {
	query := r.db.Model(&model.Restaurant{}).Where("status = ?", model.StatusActive)
	if filter.VerifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.MinLat != nil && filter.MaxLat != nil && filter.MinLng != nil && filter.MaxLng != nil {
		query = query.
			Where("latitude BETWEEN ? AND ?", *filter.MinLat, *filter.MaxLat).
			Where("longitude BETWEEN ? AND ?", *filter.MinLng, *filter.MaxLng)
	}

	var restaurants []model.Restaurant
	if err := query.Order("name ASC").Find(&restaurants).Error; err != nil {
		logger.Error("Failed to list restaurants", err, map[string]interface{}{
			"city":   filter.City,
			"search": filter.Search,
		})
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) SetVerified(id uint, verifiedAt time.Time) error {
	return r.db.Model(&model.Restaurant{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_verified": true, "verified_at": verifiedAt}).Error
}

// RatingSummary averages active rates over each restaurant's products.
func (r *restaurantRepository) RatingSummary(restaurantIDs []uint) (map[uint]RatingAggregate, error) {
	summary := make(map[uint]RatingAggregate, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return summary, nil
	}

	var rows []struct {
		RestaurantID uint
		Average      float64
		Count        int64
	}
	err := r.db.Table("rates").
		Select("products.restaurant_id AS restaurant_id, AVG(rates.value) AS average, COUNT(rates.id) AS count").
		Joins("JOIN products ON products.id = rates.product_id").
		Where("products.restaurant_id IN ? AND rates.status = ?", restaurantIDs, model.StatusActive).
		Group("products.restaurant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary[row.RestaurantID] = RatingAggregate{Average: row.Average, Count: row.Count}
	}
	return summary, nil
}
