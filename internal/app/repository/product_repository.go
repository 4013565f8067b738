package repository

import (
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductFilter struct {
	RestaurantID *uint
	CategoryID   *uint
	Statuses     []model.Status
	ForSaleOnly  bool
	Search       string
	Limit        int
	Offset       int
}

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindDetail(id uint, now time.Time) (*model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByIDsForRestaurant(restaurantID uint, ids []uint, status model.Status) ([]model.Product, error)
	Update(product *model.Product) error
	SetStatus(id uint, status model.Status, updatedBy string) error
	SetStatusByCategory(categoryID uint, status model.Status, updatedBy string) (int64, error)
	CountByCategory(categoryID uint, status model.Status) (int64, error)
	SetForSale(id uint, forSale bool, updatedBy string) error

	AddonIDs(productID uint) ([]uint, error)
	AttachAddons(productID uint, addonIDs []uint, status model.Status) error
	DetachAddons(productID uint, addonIDs []uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":          product.Name,
		"category_id":   product.CategoryID,
		"restaurant_id": product.RestaurantID,
	})

	if err := r.db.Omit(clause.Associations).Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":          product.Name,
			"category_id":   product.CategoryID,
			"restaurant_id": product.RestaurantID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		logFindError("Failed to find product by ID", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with its category, active addons and the
// offers effective at now.
func (r *productRepository) FindDetail(id uint, now time.Time) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Preload("Category").
		Preload("AddonLinks", "status = ?", model.StatusActive).
		Preload("AddonLinks.Addon", "status = ?", model.StatusActive).
		Preload("Offers", func(db *gorm.DB) *gorm.DB {
			return effectiveOffers(db, now).Order("is_pleasing ASC, created_at DESC")
		}).
		First(&product, id).Error
	if err != nil {
		logFindError("Failed to find product detail", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	product.Addons = make([]model.Addon, 0, len(product.AddonLinks))
	for _, link := range product.AddonLinks {
		if link.Addon != nil {
			product.Addons = append(product.Addons, *link.Addon)
		}
	}
	return &product, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	query := r.db.Model(&model.Product{})
	if filter.RestaurantID != nil {
		query = query.Where("restaurant_id = ?", *filter.RestaurantID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	query = withStatuses(query, "status", filter.Statuses)
	if filter.ForSaleOnly {
		query = query.Where("for_sale = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Order("created_at ASC, id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"restaurant_id": filter.RestaurantID,
			"category_id":   filter.CategoryID,
		})
		return nil, err
	}
	return products, nil
}

// FindByIDsForRestaurant returns the subset of ids that belong to the
// restaurant and are in status.
func (r *productRepository) FindByIDsForRestaurant(restaurantID uint, ids []uint, status model.Status) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []model.Product
	err := r.db.Where("id IN ? AND restaurant_id = ? AND status = ?", ids, restaurantID, status).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by IDs", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"ids":           ids,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Omit(clause.Associations).Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) SetStatus(id uint, status model.Status, updatedBy string) error {
	cols := model.StatusColumns(status)
	cols["updated_by"] = updatedBy

	if err := r.db.Model(&model.Product{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		logger.Error("Failed to set product status", err, map[string]interface{}{
			"product_id": id,
			"status":     status,
		})
		return err
	}
	return nil
}

func (r *productRepository) SetStatusByCategory(categoryID uint, status model.Status, updatedBy string) (int64, error) {
	cols := model.StatusColumns(status)
	cols["updated_by"] = updatedBy

	result := r.db.Model(&model.Product{}).Where("category_id = ?", categoryID).Updates(cols)
	if result.Error != nil {
		logger.Error("Failed to set product status by category", result.Error, map[string]interface{}{
			"category_id": categoryID,
			"status":      status,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *productRepository) CountByCategory(categoryID uint, status model.Status) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("category_id = ? AND status = ?", categoryID, status).
		Count(&count).Error
	return count, err
}

func (r *productRepository) SetForSale(id uint, forSale bool, updatedBy string) error {
	return r.db.Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"for_sale": forSale, "updated_by": updatedBy}).Error
}

func (r *productRepository) AddonIDs(productID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.AddonPerProduct{}).
		Where("product_id = ?", productID).
		Order("id ASC").
		Pluck("addon_id", &ids).Error
	return ids, err
}

func (r *productRepository) AttachAddons(productID uint, addonIDs []uint, status model.Status) error {
	if len(addonIDs) == 0 {
		return nil
	}
	links := make([]model.AddonPerProduct, 0, len(addonIDs))
	for _, addonID := range addonIDs {
		link := model.AddonPerProduct{ProductID: productID, AddonID: addonID}
		link.SetStatus(status)
		links = append(links, link)
	}
	if err := r.db.Omit(clause.Associations).Create(&links).Error; err != nil {
		logger.Error("Failed to attach addons", err, map[string]interface{}{
			"product_id": productID,
			"addon_ids":  addonIDs,
		})
		return err
	}
	return nil
}

// DetachAddons hard-deletes the join rows.
func (r *productRepository) DetachAddons(productID uint, addonIDs []uint) error {
	if len(addonIDs) == 0 {
		return nil
	}
	err := r.db.Where("product_id = ? AND addon_id IN ?", productID, addonIDs).
		Delete(&model.AddonPerProduct{}).Error
	if err != nil {
		logger.Error("Failed to detach addons", err, map[string]interface{}{
			"product_id": productID,
			"addon_ids":  addonIDs,
		})
	}
	return err
}
