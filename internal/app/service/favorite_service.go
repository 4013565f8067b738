package service

import (
	"errors"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type FavoriteService interface {
	Add(customerID, productID uint) (*model.Favorite, error)
	Remove(customerID, productID uint) error
	List(customerID uint) ([]model.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, productRepo: productRepo}
}

// requireActiveProduct is shared by favorites and ratings.
func requireActiveProduct(repo repository.ProductRepository, productID uint) (*model.Product, error) {
	product, err := repo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Add is idempotent; a removed favorite is revived in place.
func (s *favoriteService) Add(customerID, productID uint) (*model.Favorite, error) {
	if _, err := requireActiveProduct(s.productRepo, productID); err != nil {
		return nil, err
	}

	favorite, err := s.favoriteRepo.FindByCustomerAndProduct(customerID, productID)
	switch {
	case err == nil:
		if !favorite.IsActive {
			if err := s.favoriteRepo.SetStatus(favorite.ID, model.StatusActive); err != nil {
				return nil, err
			}
			favorite.SetStatus(model.StatusActive)
		}
		return favorite, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	favorite = &model.Favorite{CustomerID: customerID, ProductID: productID}
	favorite.SetStatus(model.StatusActive)
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}

	logger.Info("Favorite added", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return favorite, nil
}

func (s *favoriteService) Remove(customerID, productID uint) error {
	favorite, err := s.favoriteRepo.FindByCustomerAndProduct(customerID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	if !favorite.IsActive {
		return ErrFavoriteNotFound
	}
	return s.favoriteRepo.SetStatus(favorite.ID, model.StatusDeleted)
}

func (s *favoriteService) List(customerID uint) ([]model.Favorite, error) {
	return s.favoriteRepo.ListActiveByCustomer(customerID)
}
