package service

import (
	"errors"
	"strings"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

var ErrHomeAdNotFound = errors.New("home ad not found")

type HomeAdInput struct {
	RestaurantID uint
	Title        string
	Photo        string
	StartDate    *time.Time
	EndDate      *time.Time
}

type HomeAdService interface {
	Create(actor Actor, input HomeAdInput) (*model.HomeAd, error)
	Delete(actor Actor, id uint) (*model.HomeAd, error)
	ListAll(actor Actor) ([]model.HomeAd, error)
	ListActive() ([]model.HomeAd, error)
}

type homeAdService struct {
	homeAdRepo     repository.HomeAdRepository
	restaurantRepo repository.RestaurantRepository
	now            Clock
}

func NewHomeAdService(homeAdRepo repository.HomeAdRepository, restaurantRepo repository.RestaurantRepository) HomeAdService {
	return &homeAdService{
		homeAdRepo:     homeAdRepo,
		restaurantRepo: restaurantRepo,
		now:            time.Now,
	}
}

func requireAdmin(actor Actor) error {
	if actor.Role != model.RoleAdmin {
		return ErrUnauthorized
	}
	return nil
}

func (s *homeAdService) Create(actor Actor, input HomeAdInput) (*model.HomeAd, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, invalidf("title is required")
	}
	if input.Photo == "" {
		return nil, invalidf("photo is required")
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, invalidf("end date must not be before start date")
	}

	if _, err := s.restaurantRepo.FindByID(input.RestaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	ad := &model.HomeAd{
		RestaurantID: input.RestaurantID,
		Title:        input.Title,
		Photo:        input.Photo,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Audit:        model.Audit{CreatedBy: actor.Name, UpdatedBy: actor.Name},
	}
	ad.SetStatus(model.StatusActive)
	if err := s.homeAdRepo.Create(ad); err != nil {
		return nil, err
	}

	logger.Info("Home ad created", map[string]interface{}{
		"home_ad_id":    ad.ID,
		"restaurant_id": ad.RestaurantID,
	})
	return ad, nil
}

func (s *homeAdService) Delete(actor Actor, id uint) (*model.HomeAd, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	ad, err := s.homeAdRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomeAdNotFound
		}
		return nil, err
	}
	if ad.IsDeleted {
		return nil, ErrHomeAdNotFound
	}
	if err := s.homeAdRepo.SetStatus(ad.ID, model.StatusDeleted, actor.Name); err != nil {
		return nil, err
	}
	ad.SetStatus(model.StatusDeleted)
	ad.UpdatedBy = actor.Name
	return ad, nil
}

func (s *homeAdService) ListAll(actor Actor) ([]model.HomeAd, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.homeAdRepo.ListAll(model.StatusActive, model.StatusDeactivated)
}

func (s *homeAdService) ListActive() ([]model.HomeAd, error) {
	return s.homeAdRepo.ListVisible(s.now())
}
