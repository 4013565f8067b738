package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

const maxAddonNameLen = 120

type AddonInput struct {
	RestaurantID uint
	Name         string
	Price        float64
	Status       model.Status
}

type AddonService interface {
	Create(actor Actor, input AddonInput) (*model.Addon, error)
	Update(actor Actor, id uint, input AddonInput) (*model.Addon, error)
	Activate(actor Actor, id, restaurantID uint) (*model.Addon, error)
	Deactivate(actor Actor, id, restaurantID uint) (*model.Addon, error)
	Delete(actor Actor, id, restaurantID uint) (*model.Addon, error)
	ListMine(actor Actor) ([]model.Addon, error)
	ListPublic(restaurantID uint) ([]model.Addon, error)
}

type addonService struct {
	db        *gorm.DB
	addonRepo repository.AddonRepository
}

func NewAddonService(db *gorm.DB, addonRepo repository.AddonRepository) AddonService {
	return &addonService{db: db, addonRepo: addonRepo}
}

func validateAddonInput(input *AddonInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return invalidf("name is required")
	}
	if utf8.RuneCountInString(input.Name) > maxAddonNameLen {
		return invalidf("name must be at most %d characters", maxAddonNameLen)
	}
	if input.Price < 0 {
		return invalidf("price must not be negative")
	}
	return nil
}

func (s *addonService) Create(actor Actor, input AddonInput) (*model.Addon, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, err
	}
	if err := validateAddonInput(&input); err != nil {
		return nil, err
	}
	status, err := creationStatus(input.Status)
	if err != nil {
		return nil, err
	}

	addon := &model.Addon{
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		Price:        input.Price,
		Audit:        model.Audit{CreatedBy: actor.Name, UpdatedBy: actor.Name},
	}
	addon.SetStatus(status)
	if err := s.addonRepo.Create(addon); err != nil {
		return nil, err
	}

	logger.Info("Addon created", map[string]interface{}{
		"addon_id":      addon.ID,
		"restaurant_id": addon.RestaurantID,
	})
	return addon, nil
}

func (s *addonService) load(repo repository.AddonRepository, id, restaurantID uint) (*model.Addon, error) {
	addon, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddonNotFound
		}
		return nil, err
	}
	if addon.RestaurantID != restaurantID {
		return nil, ErrAddonNotFound
	}
	return addon, nil
}

func (s *addonService) Update(actor Actor, id uint, input AddonInput) (*model.Addon, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, err
	}
	if err := validateAddonInput(&input); err != nil {
		return nil, err
	}

	addon, err := s.load(s.addonRepo, id, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if addon.IsDeleted {
		return nil, ErrAddonNotFound
	}

	addon.Name = input.Name
	addon.Price = input.Price
	addon.UpdatedBy = actor.Name
	if err := s.addonRepo.Update(addon); err != nil {
		return nil, err
	}
	return addon, nil
}

func (s *addonService) Activate(actor Actor, id, restaurantID uint) (*model.Addon, error) {
	return s.transition(actor, id, restaurantID, model.StatusActive, model.StatusDeactivated)
}

func (s *addonService) Deactivate(actor Actor, id, restaurantID uint) (*model.Addon, error) {
	return s.transition(actor, id, restaurantID, model.StatusDeactivated, model.StatusActive)
}

func (s *addonService) Delete(actor Actor, id, restaurantID uint) (*model.Addon, error) {
	return s.transition(actor, id, restaurantID, model.StatusDeleted, model.StatusActive, model.StatusDeactivated, model.StatusPending)
}

// transition moves the addon and its product attachments together.
func (s *addonService) transition(actor Actor, id, restaurantID uint, next model.Status, from ...model.Status) (*model.Addon, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	var addon *model.Addon
	err := s.db.Transaction(func(tx *gorm.DB) error {
		addons := s.addonRepo.WithTx(tx)

		var err error
		addon, err = s.load(addons, id, restaurantID)
		if err != nil {
			return err
		}
		if err := requireStatus("addon", addon.Status, from...); err != nil {
			return err
		}
		if err := addons.SetStatus(addon.ID, next, actor.Name); err != nil {
			return err
		}
		return addons.SetLinksStatus(addon.ID, next)
	})
	if err != nil {
		return nil, err
	}

	addon.SetStatus(next)
	addon.UpdatedBy = actor.Name
	logger.Info("Addon status changed", map[string]interface{}{
		"addon_id": addon.ID,
		"status":   next,
	})
	return addon, nil
}

func (s *addonService) ListMine(actor Actor) ([]model.Addon, error) {
	if err := actor.authorizeRestaurant(actor.ID); err != nil {
		return nil, err
	}
	return s.addonRepo.ListByRestaurant(actor.ID, model.StatusActive, model.StatusDeactivated, model.StatusPending)
}

func (s *addonService) ListPublic(restaurantID uint) ([]model.Addon, error) {
	return s.addonRepo.ListByRestaurant(restaurantID, model.StatusActive)
}
