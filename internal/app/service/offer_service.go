package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

var ErrOfferNotFound = errors.New("offer not found")

const maxOfferTitleLen = 160

type OfferInput struct {
	RestaurantID    uint
	Title           string
	DiscountPercent float64
	StartDate       *time.Time
	EndDate         *time.Time
	IsPleasing      bool
}

// EffectiveOffers splits the offers currently in force by class.
type EffectiveOffers struct {
	Discounts      []model.Offer `json:"discounts"`
	PleasingOffers []model.Offer `json:"pleasing_offers"`
}

type OfferService interface {
	Create(actor Actor, productID uint, input OfferInput) (*model.Offer, error)
	Activate(actor Actor, id, restaurantID uint) (*model.Offer, error)
	Deactivate(actor Actor, id, restaurantID uint) (*model.Offer, error)
	Delete(actor Actor, id, restaurantID uint) (*model.Offer, error)
	ListByProduct(actor Actor, productID, restaurantID uint) ([]model.Offer, error)
	ListEffective(productID uint) (*EffectiveOffers, error)
	ExpireOffers(now time.Time) (int64, error)
}

type offerService struct {
	offerRepo   repository.OfferRepository
	productRepo repository.ProductRepository
	now         Clock
}

func NewOfferService(offerRepo repository.OfferRepository, productRepo repository.ProductRepository) OfferService {
	return &offerService{
		offerRepo:   offerRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

func validateOfferInput(input *OfferInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return invalidf("title is required")
	}
	if utf8.RuneCountInString(input.Title) > maxOfferTitleLen {
		return invalidf("title must be at most %d characters", maxOfferTitleLen)
	}
	if input.DiscountPercent <= 0 || input.DiscountPercent > 100 {
		return invalidf("discount percent must be greater than 0 and at most 100")
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return invalidf("end date must not be before start date")
	}
	return nil
}

// activeProduct loads the restaurant's product and requires it to be active.
func (s *offerService) activeProduct(productID, restaurantID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.RestaurantID != restaurantID || product.IsDeleted {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotActive
	}
	return product, nil
}

func (s *offerService) Create(actor Actor, productID uint, input OfferInput) (*model.Offer, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, err
	}
	if err := validateOfferInput(&input); err != nil {
		return nil, err
	}
	product, err := s.activeProduct(productID, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	offer := &model.Offer{
		ProductID:       product.ID,
		RestaurantID:    product.RestaurantID,
		Title:           input.Title,
		DiscountPercent: input.DiscountPercent,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		IsPleasing:      input.IsPleasing,
		Audit:           model.Audit{CreatedBy: actor.Name, UpdatedBy: actor.Name},
	}
	offer.SetStatus(model.StatusActive)
	if err := s.offerRepo.Create(offer); err != nil {
		return nil, err
	}

	logger.Info("Offer created", map[string]interface{}{
		"offer_id":    offer.ID,
		"product_id":  offer.ProductID,
		"is_pleasing": offer.IsPleasing,
	})
	return offer, nil
}

func (s *offerService) load(id, restaurantID uint) (*model.Offer, error) {
	offer, err := s.offerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	if offer.RestaurantID != restaurantID {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

// Activate also requires the offer's product to be active.
func (s *offerService) Activate(actor Actor, id, restaurantID uint) (*model.Offer, error) {
	return s.transition(actor, id, restaurantID, model.StatusActive, model.StatusDeactivated)
}

func (s *offerService) Deactivate(actor Actor, id, restaurantID uint) (*model.Offer, error) {
	return s.transition(actor, id, restaurantID, model.StatusDeactivated, model.StatusActive)
}

func (s *offerService) Delete(actor Actor, id, restaurantID uint) (*model.Offer, error) {
	return s.transition(actor, id, restaurantID, model.StatusDeleted, model.StatusActive, model.StatusDeactivated)
}

func (s *offerService) transition(actor Actor, id, restaurantID uint, next model.Status, from ...model.Status) (*model.Offer, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}
	offer, err := s.load(id, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus("offer", offer.Status, from...); err != nil {
		return nil, err
	}
	if next == model.StatusActive {
		if _, err := s.activeProduct(offer.ProductID, restaurantID); err != nil {
			return nil, err
		}
	}
	if err := s.offerRepo.SetStatus(offer.ID, next, actor.Name); err != nil {
		return nil, err
	}

	offer.SetStatus(next)
	offer.UpdatedBy = actor.Name
	return offer, nil
}

// ListByProduct is the owner's view: every non-deleted offer of the product.
func (s *offerService) ListByProduct(actor Actor, productID, restaurantID uint) ([]model.Offer, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.RestaurantID != restaurantID {
		return nil, ErrProductNotFound
	}
	return s.offerRepo.ListByProduct(productID, model.StatusActive, model.StatusDeactivated)
}

func (s *offerService) ListEffective(productID uint) (*EffectiveOffers, error) {
	offers, err := s.offerRepo.ListEffective(productID, s.now())
	if err != nil {
		return nil, err
	}
	out := &EffectiveOffers{Discounts: []model.Offer{}, PleasingOffers: []model.Offer{}}
	for _, offer := range offers {
		if offer.IsPleasing {
			out.PleasingOffers = append(out.PleasingOffers, offer)
		} else {
			out.Discounts = append(out.Discounts, offer)
		}
	}
	return out, nil
}

func (s *offerService) ExpireOffers(now time.Time) (int64, error) {
	expired, err := s.offerRepo.ExpireEndedBefore(now)
	if err != nil {
		logger.Error("Failed to expire offers", err, nil)
		return 0, err
	}
	if expired > 0 {
		logger.Info("Expired offers deactivated", map[string]interface{}{
			"count": expired,
		})
	}
	return expired, nil
}
