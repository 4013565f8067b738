package service

import (
	"errors"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidRate = errors.New("rate must be between 1 and 5")

const (
	minRate = 1
	maxRate = 5
)

type RateService interface {
	Rate(customerID, productID uint, value int, comment string) (*model.Rate, error)
	ListByProduct(productID uint) ([]model.Rate, error)
	Summary(productID uint) (repository.RatingAggregate, error)
}

type rateService struct {
	rateRepo    repository.RateRepository
	productRepo repository.ProductRepository
}

func NewRateService(rateRepo repository.RateRepository, productRepo repository.ProductRepository) RateService {
	return &rateService{rateRepo: rateRepo, productRepo: productRepo}
}

// Rate keeps one rate per customer and product; rating again overwrites it.
func (s *rateService) Rate(customerID, productID uint, value int, comment string) (*model.Rate, error) {
	if value < minRate || value > maxRate {
		return nil, ErrInvalidRate
	}
	if _, err := requireActiveProduct(s.productRepo, productID); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindByCustomerAndProduct(customerID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if rate != nil {
		rate.Value = value
		rate.Comment = comment
		rate.SetStatus(model.StatusActive)
		if err := s.rateRepo.Update(rate); err != nil {
			return nil, err
		}
		return rate, nil
	}

	rate = &model.Rate{CustomerID: customerID, ProductID: productID, Value: value, Comment: comment}
	rate.SetStatus(model.StatusActive)
	if err := s.rateRepo.Create(rate); err != nil {
		return nil, err
	}

	logger.Info("Product rated", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
		"value":       value,
	})
	return rate, nil
}

func (s *rateService) ListByProduct(productID uint) ([]model.Rate, error) {
	return s.rateRepo.ListActiveByProduct(productID)
}

func (s *rateService) Summary(productID uint) (repository.RatingAggregate, error) {
	agg, err := s.rateRepo.Aggregate([]uint{productID})
	if err != nil {
		return repository.RatingAggregate{}, err
	}
	return agg[productID], nil
}
