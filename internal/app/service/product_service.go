package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInCombo   = errors.New("product is referenced by a combo")
	ErrProductNotActive = errors.New("product is not active")
	ErrAddonNotFound    = errors.New("addon not found")
)

const maxProductNameLen = 160

type ProductInput struct {
	CategoryID      uint
	RestaurantID    uint
	Name            string
	Description     string
	SalePrice       float64
	PrepTimeMinutes *int
	// nil leaves attachments untouched on update; an empty set clears them
	Addons *AddonIDs
	Photo  string
}

// ProductDetail is the read model of a single product.
type ProductDetail struct {
	*model.Product
	Discounts      []model.Offer `json:"discounts"`
	PleasingOffers []model.Offer `json:"pleasing_offers"`
}

type ProductService interface {
	Create(actor Actor, input ProductInput) (*model.Product, error)
	Update(actor Actor, id uint, input ProductInput) (*model.Product, string, error)
	Delete(actor Actor, id, restaurantID uint) (*model.Product, error)
	Activate(actor Actor, id, restaurantID uint) (*model.Product, error)
	Deactivate(actor Actor, id, restaurantID uint) (*model.Product, error)
	Restore(actor Actor, id, restaurantID uint) (*model.Product, error)
	Hide(actor Actor, id, restaurantID uint) (*model.Product, error)
	Unhide(actor Actor, id, restaurantID uint) (*model.Product, error)
	GetDetail(id uint, viewer *Actor) (*ProductDetail, error)
	ListByCategory(categoryID uint) ([]model.Product, error)
	ListMine(actor Actor) ([]model.Product, error)
	ListDeleted(actor Actor, restaurantID uint) ([]model.Product, error)
}

type productService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	addonRepo    repository.AddonRepository
	comboRepo    repository.ComboRepository
	offerRepo    repository.OfferRepository
	rateRepo     repository.RateRepository
	favoriteRepo repository.FavoriteRepository
	now          Clock
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	addonRepo repository.AddonRepository,
	comboRepo repository.ComboRepository,
	offerRepo repository.OfferRepository,
	rateRepo repository.RateRepository,
	favoriteRepo repository.FavoriteRepository,
) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		addonRepo:    addonRepo,
		comboRepo:    comboRepo,
		offerRepo:    offerRepo,
		rateRepo:     rateRepo,
		favoriteRepo: favoriteRepo,
		now:          time.Now,
	}
}

func validateProductInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return invalidf("name is required")
	}
	if utf8.RuneCountInString(input.Name) > maxProductNameLen {
		return invalidf("name must be at most %d characters", maxProductNameLen)
	}
	if input.SalePrice < 0 {
		return invalidf("sale price must not be negative")
	}
	if input.PrepTimeMinutes != nil && *input.PrepTimeMinutes < 0 {
		return invalidf("preparation time must not be negative")
	}
	return nil
}

// liveCategory loads a non-deleted category of the restaurant.
func liveCategory(repo repository.CategoryRepository, categoryID, restaurantID uint) (*model.Category, error) {
	category, err := repo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.RestaurantID != restaurantID || category.IsDeleted {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// checkAddons requires every id to be an active addon of the restaurant.
func checkAddons(repo repository.AddonRepository, restaurantID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	addons, err := repo.FindByIDsForRestaurant(restaurantID, ids, model.StatusActive)
	if err != nil {
		return err
	}
	found := make(map[uint]bool, len(addons))
	for _, a := range addons {
		found[a.ID] = true
	}
	if missing := missingIDs(ids, found); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrAddonNotFound, idList(missing))
	}
	return nil
}

func (s *productService) Create(actor Actor, input ProductInput) (*model.Product, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, err
	}
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		category, err := liveCategory(s.categoryRepo.WithTx(tx), input.CategoryID, input.RestaurantID)
		if err != nil {
			return err
		}

		var addonIDs []uint
		if input.Addons != nil {
			addonIDs = *input.Addons
		}
		if err := checkAddons(s.addonRepo.WithTx(tx), input.RestaurantID, addonIDs); err != nil {
			return err
		}

		product = &model.Product{
			CategoryID:      category.ID,
			RestaurantID:    input.RestaurantID,
			Name:            input.Name,
			Description:     input.Description,
			SalePrice:       input.SalePrice,
			PrepTimeMinutes: input.PrepTimeMinutes,
			Photo:           input.Photo,
			ForSale:         true,
			Audit:           model.Audit{CreatedBy: actor.Name, UpdatedBy: actor.Name},
		}
		// inherited once, not linked afterwards
		product.SetStatus(category.Status)

		products := s.productRepo.WithTx(tx)
		if err := products.Create(product); err != nil {
			return err
		}
		return products.AttachAddons(product.ID, addonIDs, model.StatusActive)
	})
	if err != nil {
		logger.Warn("Product creation failed", map[string]interface{}{
			"restaurant_id": input.RestaurantID,
			"category_id":   input.CategoryID,
			"error":         err.Error(),
		})
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":  product.ID,
		"category_id": product.CategoryID,
		"status":      product.Status,
	})
	return product, nil
}

func (s *productService) load(repo repository.ProductRepository, id, restaurantID uint) (*model.Product, error) {
	product, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.RestaurantID != restaurantID {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Update replaces the mutable fields and reconciles addon attachments as a set:
// new ids are attached, dropped ids are hard-removed and kept ids are not touched.
func (s *productService) Update(actor Actor, id uint, input ProductInput) (*model.Product, string, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, "", err
	}
	if err := validateProductInput(&input); err != nil {
		return nil, "", err
	}

	var product *model.Product
	var replaced string
	var added, removed []uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		var err error
		product, err = s.load(products, id, input.RestaurantID)
		if err != nil {
			return err
		}
		if product.IsDeleted {
			return ErrProductNotFound
		}

		if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
			category, err := liveCategory(s.categoryRepo.WithTx(tx), input.CategoryID, input.RestaurantID)
			if err != nil {
				return err
			}
			product.CategoryID = category.ID
		}

		if input.Addons != nil {
			target := []uint(*input.Addons)
			if err := checkAddons(s.addonRepo.WithTx(tx), input.RestaurantID, target); err != nil {
				return err
			}
			current, err := products.AddonIDs(product.ID)
			if err != nil {
				return err
			}
			added, removed = diffIDs(current, target)
			if err := products.DetachAddons(product.ID, removed); err != nil {
				return err
			}
			if err := products.AttachAddons(product.ID, added, model.StatusActive); err != nil {
				return err
			}
		}

		product.Name = input.Name
		product.Description = input.Description
		product.SalePrice = input.SalePrice
		product.PrepTimeMinutes = input.PrepTimeMinutes
		product.UpdatedBy = actor.Name
		if input.Photo != "" && input.Photo != product.Photo {
			replaced = product.Photo
			product.Photo = input.Photo
		}
		return products.Update(product)
	})
	if err != nil {
		return nil, "", err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id":     product.ID,
		"addons_added":   added,
		"addons_removed": removed,
	})
	return product, replaced, nil
}

// Delete is refused while any non-deleted combo item references the product.
// The product's non-deleted offers are soft-deleted with it.
func (s *productService) Delete(actor Actor, id, restaurantID uint) (*model.Product, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		var err error
		product, err = s.load(products, id, restaurantID)
		if err != nil {
			return err
		}
		if product.IsDeleted {
			return ErrProductNotFound
		}

		inCombos, err := s.comboRepo.WithTx(tx).CountLiveItemsForProduct(product.ID)
		if err != nil {
			return err
		}
		if inCombos > 0 {
			logger.Warn("Product delete rejected: still in combos", map[string]interface{}{
				"product_id":  product.ID,
				"combo_items": inCombos,
			})
			return ErrProductInCombo
		}

		if err := products.SetStatus(product.ID, model.StatusDeleted, actor.Name); err != nil {
			return err
		}
		_, err = s.offerRepo.WithTx(tx).SetStatusByProduct(product.ID, model.StatusDeleted)
		return err
	})
	if err != nil {
		return nil, err
	}

	product.SetStatus(model.StatusDeleted)
	product.UpdatedBy = actor.Name
	logger.Info("Product deleted", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

// Deactivate cascades to the product's offers and to every combo holding it,
// even when the combo's other products are still active.
func (s *productService) Deactivate(actor Actor, id, restaurantID uint) (*model.Product, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	var product *model.Product
	var offers int64
	var combos []uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		comboRepo := s.comboRepo.WithTx(tx)

		var err error
		product, err = s.load(products, id, restaurantID)
		if err != nil {
			return err
		}
		if err := requireStatus("product", product.Status, model.StatusActive); err != nil {
			return err
		}

		if err := products.SetStatus(product.ID, model.StatusDeactivated, actor.Name); err != nil {
			return err
		}
		if offers, err = s.offerRepo.WithTx(tx).SetStatusByProduct(product.ID, model.StatusDeactivated); err != nil {
			return err
		}

		ids, err := comboRepo.IDsContainingProduct(product.ID)
		if err != nil {
			return err
		}
		combos, err = comboRepo.SetStatusForIDs(ids, []model.Status{model.StatusActive, model.StatusPending}, model.StatusDeactivated, actor.Name)
		return err
	})
	if err != nil {
		return nil, err
	}

	product.SetStatus(model.StatusDeactivated)
	product.UpdatedBy = actor.Name
	logger.Info("Product deactivated", map[string]interface{}{
		"product_id":         product.ID,
		"offers_deactivated": offers,
		"combos_deactivated": combos,
	})
	return product, nil
}

// Activate does not touch combos or offers; combos are re-activated explicitly.
func (s *productService) Activate(actor Actor, id, restaurantID uint) (*model.Product, error) {
	return s.transition(actor, id, restaurantID, model.StatusActive, model.StatusDeactivated)
}

// Restore lands in active. Offers deleted with the product stay deleted.
func (s *productService) Restore(actor Actor, id, restaurantID uint) (*model.Product, error) {
	return s.transition(actor, id, restaurantID, model.StatusActive, model.StatusDeleted)
}

func (s *productService) transition(actor Actor, id, restaurantID uint, next model.Status, from model.Status) (*model.Product, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	product, err := s.load(s.productRepo, id, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus("product", product.Status, from); err != nil {
		return nil, err
	}
	if err := s.productRepo.SetStatus(product.ID, next, actor.Name); err != nil {
		return nil, err
	}

	product.SetStatus(next)
	product.UpdatedBy = actor.Name
	logger.Info("Product status changed", map[string]interface{}{
		"product_id": product.ID,
		"from":       from,
		"status":     next,
	})
	return product, nil
}

func (s *productService) Hide(actor Actor, id, restaurantID uint) (*model.Product, error) {
	return s.setForSale(actor, id, restaurantID, false)
}

func (s *productService) Unhide(actor Actor, id, restaurantID uint) (*model.Product, error) {
	return s.setForSale(actor, id, restaurantID, true)
}

// setForSale flips the sale flag. Status is not involved.
func (s *productService) setForSale(actor Actor, id, restaurantID uint, forSale bool) (*model.Product, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	product, err := s.load(s.productRepo, id, restaurantID)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted {
		return nil, ErrProductNotFound
	}
	if product.ForSale == forSale {
		if forSale {
			return nil, invalidf("product is not hidden")
		}
		return nil, invalidf("product is already hidden")
	}
	if err := s.productRepo.SetForSale(product.ID, forSale, actor.Name); err != nil {
		return nil, err
	}

	product.ForSale = forSale
	product.UpdatedBy = actor.Name
	return product, nil
}

// GetDetail hides non-active products from everyone but their owner.
func (s *productService) GetDetail(id uint, viewer *Actor) (*ProductDetail, error) {
	now := s.now()
	product, err := s.productRepo.FindDetail(id, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	owner := viewer != nil && viewer.Role == model.RoleRestaurant && viewer.ID == product.RestaurantID
	if !owner && !product.IsActive {
		return nil, ErrProductNotFound
	}

	ratings, err := s.rateRepo.Aggregate([]uint{product.ID})
	if err != nil {
		return nil, err
	}
	if agg, ok := ratings[product.ID]; ok {
		product.AverageRating = agg.Average
		product.RatingCount = agg.Count
	}
	if viewer != nil && viewer.Role == model.RoleCustomer {
		if product.IsFavorite, err = s.favoriteRepo.IsFavorite(viewer.ID, product.ID); err != nil {
			return nil, err
		}
	}

	detail := &ProductDetail{Product: product, Discounts: []model.Offer{}, PleasingOffers: []model.Offer{}}
	for _, offer := range product.Offers {
		if offer.IsPleasing {
			detail.PleasingOffers = append(detail.PleasingOffers, offer)
		} else {
			detail.Discounts = append(detail.Discounts, offer)
		}
	}
	product.Offers = nil
	return detail, nil
}

// ListByCategory is the storefront listing: active, for-sale products of an
// active category.
func (s *productService) ListByCategory(categoryID uint) ([]model.Product, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, ErrCategoryNotFound
	}

	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		CategoryID:  &categoryID,
		Statuses:    []model.Status{model.StatusActive},
		ForSaleOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return s.withRatings(products)
}

func (s *productService) ListMine(actor Actor) ([]model.Product, error) {
	if err := actor.authorizeRestaurant(actor.ID); err != nil {
		return nil, err
	}
	return s.productRepo.FindWithFilter(repository.ProductFilter{
		RestaurantID: &actor.ID,
		Statuses:     []model.Status{model.StatusActive, model.StatusDeactivated, model.StatusPending},
	})
}

func (s *productService) ListDeleted(actor Actor, restaurantID uint) ([]model.Product, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}
	return s.productRepo.FindWithFilter(repository.ProductFilter{
		RestaurantID: &restaurantID,
		Statuses:     []model.Status{model.StatusDeleted},
	})
}

func (s *productService) withRatings(products []model.Product) ([]model.Product, error) {
	ids := make([]uint, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	ratings, err := s.rateRepo.Aggregate(ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if agg, ok := ratings[products[i].ID]; ok {
			products[i].AverageRating = agg.Average
			products[i].RatingCount = agg.Count
		}
	}
	return products, nil
}
