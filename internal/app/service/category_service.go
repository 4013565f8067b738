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

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasProducts = errors.New("category has products")
)

const (
	maxCategoryNameLen      = 120
	maxCategoryShortNameLen = 60
)

type CategoryInput struct {
	RestaurantID uint
	Name         string
	ShortName    string
	Description  string
	Status       model.Status
	Photo        string
}

type CategoryService interface {
	Create(actor Actor, input CategoryInput) (*model.Category, error)
	// Update returns the photo URL that was replaced, if any, so the caller can release it.
	Update(actor Actor, id uint, input CategoryInput) (*model.Category, string, error)
	Delete(actor Actor, id, restaurantID uint) (*model.Category, error)
	Activate(actor Actor, id, restaurantID uint) (*model.Category, error)
	Deactivate(actor Actor, id, restaurantID uint) (*model.Category, error)
	Restore(actor Actor, id, restaurantID uint) (*model.Category, error)
	Get(id uint) (*model.Category, error)
	ListMine(actor Actor) ([]model.Category, error)
	ListDeleted(actor Actor, restaurantID uint) ([]model.Category, error)
	ListPublic(restaurantID uint) ([]model.Category, error)
}

type categoryService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryService(db *gorm.DB, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CategoryService {
	return &categoryService{
		db:           db,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func validateCategoryInput(input *CategoryInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.ShortName = strings.TrimSpace(input.ShortName)

	if input.Name == "" {
		return invalidf("name is required")
	}
	if utf8.RuneCountInString(input.Name) > maxCategoryNameLen {
		return invalidf("name must be at most %d characters", maxCategoryNameLen)
	}
	if utf8.RuneCountInString(input.ShortName) > maxCategoryShortNameLen {
		return invalidf("short name must be at most %d characters", maxCategoryShortNameLen)
	}
	return nil
}

// creationStatus accepts active or deactivated; empty means active.
func creationStatus(s model.Status) (model.Status, error) {
	switch s {
	case "":
		return model.StatusActive, nil
	case model.StatusActive, model.StatusDeactivated:
		return s, nil
	}
	return "", invalidf("status must be active or deactivated")
}

func (s *categoryService) Create(actor Actor, input CategoryInput) (*model.Category, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, err
	}
	if err := validateCategoryInput(&input); err != nil {
		return nil, err
	}
	status, err := creationStatus(input.Status)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		ShortName:    input.ShortName,
		Description:  input.Description,
		Photo:        input.Photo,
		Audit:        model.Audit{CreatedBy: actor.Name, UpdatedBy: actor.Name},
	}
	category.SetStatus(status)

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id":   category.ID,
		"restaurant_id": category.RestaurantID,
		"status":        category.Status,
	})
	return category, nil
}

// load fetches a category owned by restaurantID. Ownership mismatches look
// like a missing row.
func (s *categoryService) load(repo repository.CategoryRepository, id, restaurantID uint) (*model.Category, error) {
	category, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.RestaurantID != restaurantID {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) Update(actor Actor, id uint, input CategoryInput) (*model.Category, string, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, "", err
	}
	if err := validateCategoryInput(&input); err != nil {
		return nil, "", err
	}

	category, err := s.load(s.categoryRepo, id, input.RestaurantID)
	if err != nil {
		return nil, "", err
	}
	if category.IsDeleted {
		return nil, "", ErrCategoryNotFound
	}

	category.Name = input.Name
	category.ShortName = input.ShortName
	category.Description = input.Description
	category.UpdatedBy = actor.Name

	var replaced string
	if input.Photo != "" && input.Photo != category.Photo {
		replaced = category.Photo
		category.Photo = input.Photo
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, "", err
	}

	logger.Info("Category updated", map[string]interface{}{
		"category_id":   category.ID,
		"photo_changed": replaced != "",
	})
	return category, replaced, nil
}

// Delete refuses while the category still holds active products. Otherwise the
// category and every product under it are soft-deleted together.
func (s *categoryService) Delete(actor Actor, id, restaurantID uint) (*model.Category, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	var category *model.Category
	var cascaded int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		categories := s.categoryRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		var err error
		category, err = s.load(categories, id, restaurantID)
		if err != nil {
			return err
		}
		if category.IsDeleted {
			return ErrCategoryNotFound
		}

		active, err := products.CountByCategory(category.ID, model.StatusActive)
		if err != nil {
			return err
		}
		if active > 0 {
			logger.Warn("Category delete rejected: active products remain", map[string]interface{}{
				"category_id":     category.ID,
				"active_products": active,
			})
			return ErrCategoryHasProducts
		}

		if err := categories.SetStatus(category.ID, model.StatusDeleted, actor.Name); err != nil {
			return err
		}
		cascaded, err = products.SetStatusByCategory(category.ID, model.StatusDeleted, actor.Name)
		return err
	})
	if err != nil {
		return nil, err
	}

	category.SetStatus(model.StatusDeleted)
	category.UpdatedBy = actor.Name
	logger.Info("Category deleted", map[string]interface{}{
		"category_id":      category.ID,
		"products_deleted": cascaded,
	})
	return category, nil
}

func (s *categoryService) Activate(actor Actor, id, restaurantID uint) (*model.Category, error) {
	return s.transition(actor, id, restaurantID, model.StatusActive, model.StatusDeactivated, model.StatusPending)
}

func (s *categoryService) Deactivate(actor Actor, id, restaurantID uint) (*model.Category, error) {
	return s.transition(actor, id, restaurantID, model.StatusDeactivated, model.StatusActive)
}

// transition is the guarded status toggle shared by activate and deactivate.
// Neither cascades to products.
func (s *categoryService) transition(actor Actor, id, restaurantID uint, next model.Status, from ...model.Status) (*model.Category, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	category, err := s.load(s.categoryRepo, id, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus("category", category.Status, from...); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.SetStatus(category.ID, next, actor.Name); err != nil {
		return nil, err
	}

	category.SetStatus(next)
	category.UpdatedBy = actor.Name
	logger.Info("Category status changed", map[string]interface{}{
		"category_id": category.ID,
		"status":      next,
	})
	return category, nil
}

// Restore brings a deleted category back as active and reactivates all of its
// products, whatever state they were in before the delete.
func (s *categoryService) Restore(actor Actor, id, restaurantID uint) (*model.Category, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	var category *model.Category
	var restored int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		categories := s.categoryRepo.WithTx(tx)

		var err error
		category, err = s.load(categories, id, restaurantID)
		if err != nil {
			return err
		}
		if err := requireStatus("category", category.Status, model.StatusDeleted); err != nil {
			return err
		}
		if err := categories.SetStatus(category.ID, model.StatusActive, actor.Name); err != nil {
			return err
		}
		restored, err = s.productRepo.WithTx(tx).SetStatusByCategory(category.ID, model.StatusActive, actor.Name)
		return err
	})
	if err != nil {
		return nil, err
	}

	category.SetStatus(model.StatusActive)
	category.UpdatedBy = actor.Name
	logger.Info("Category restored", map[string]interface{}{
		"category_id":       category.ID,
		"products_restored": restored,
	})
	return category, nil
}

func (s *categoryService) Get(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListMine returns every category of the caller that is not deleted.
func (s *categoryService) ListMine(actor Actor) ([]model.Category, error) {
	if err := actor.authorizeRestaurant(actor.ID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByRestaurant(actor.ID, model.StatusActive, model.StatusDeactivated, model.StatusPending)
}

func (s *categoryService) ListDeleted(actor Actor, restaurantID uint) ([]model.Category, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByRestaurant(restaurantID, model.StatusDeleted)
}

func (s *categoryService) ListPublic(restaurantID uint) ([]model.Category, error) {
	return s.categoryRepo.ListByRestaurant(restaurantID, model.StatusActive)
}
