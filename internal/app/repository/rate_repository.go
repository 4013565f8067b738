package repository

import (
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type RateRepository interface {
	FindByCustomerAndProduct(customerID, productID uint) (*model.Rate, error)
	Create(rate *model.Rate) error
	Update(rate *model.Rate) error
	ListActiveByProduct(productID uint) ([]model.Rate, error)
	Aggregate(productIDs []uint) (map[uint]RatingAggregate, error)
}

type rateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) FindByCustomerAndProduct(customerID, productID uint) (*model.Rate, error) {
	var rate model.Rate
	err := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) Create(rate *model.Rate) error {
	if err := r.db.Create(rate).Error; err != nil {
		logger.Error("Failed to create rate", err, map[string]interface{}{
			"customer_id": rate.CustomerID,
			"product_id":  rate.ProductID,
		})
		return err
	}
	return nil
}

func (r *rateRepository) Update(rate *model.Rate) error {
	return r.db.Save(rate).Error
}

func (r *rateRepository) ListActiveByProduct(productID uint) ([]model.Rate, error) {
	var rates []model.Rate
	err := r.db.Where("product_id = ? AND status = ?", productID, model.StatusActive).
		Order("updated_at DESC, id DESC").
		Find(&rates).Error
	return rates, err
}

// Aggregate returns average and count of active rates per product. Products
// without rates are absent from the map.
func (r *rateRepository) Aggregate(productIDs []uint) (map[uint]RatingAggregate, error) {
	result := make(map[uint]RatingAggregate, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ProductID uint
		Average   float64
		Count     int64
	}
	err := r.db.Model(&model.Rate{}).
		Select("product_id, AVG(value) AS average, COUNT(id) AS count").
		Where("product_id IN ? AND status = ?", productIDs, model.StatusActive).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate rates", err, map[string]interface{}{
			"product_ids": productIDs,
		})
		return nil, err
	}
	for _, row := range rows {
		result[row.ProductID] = RatingAggregate{Average: row.Average, Count: row.Count}
	}
	return result, nil
}
