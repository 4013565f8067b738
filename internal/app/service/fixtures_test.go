package service

import (
	"testing"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testRestaurantID  uint = 1
	otherRestaurantID uint = 2
)

var (
	owner    = Actor{ID: testRestaurantID, Role: model.RoleRestaurant, Name: "Pizza Place"}
	stranger = Actor{ID: otherRestaurantID, Role: model.RoleRestaurant, Name: "Burger Hut"}
	customer = Actor{ID: 30, Role: model.RoleCustomer, Name: "Sam"}
	admin    = Actor{ID: 1, Role: model.RoleAdmin, Name: "root"}
)

type catalogFixture struct {
	db *gorm.DB

	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	addonRepo    repository.AddonRepository
	comboRepo    repository.ComboRepository
	offerRepo    repository.OfferRepository
	rateRepo     repository.RateRepository
	favoriteRepo repository.FavoriteRepository

	categories CategoryService
	products   ProductService
	addons     AddonService
	combos     ComboService
	offers     OfferService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	f := &catalogFixture{
		db:           testDB,
		categoryRepo: repository.NewCategoryRepository(testDB),
		productRepo:  repository.NewProductRepository(testDB),
		addonRepo:    repository.NewAddonRepository(testDB),
		comboRepo:    repository.NewComboRepository(testDB),
		offerRepo:    repository.NewOfferRepository(testDB),
		rateRepo:     repository.NewRateRepository(testDB),
		favoriteRepo: repository.NewFavoriteRepository(testDB),
	}
	f.categories = NewCategoryService(testDB, f.categoryRepo, f.productRepo)
	f.products = NewProductService(testDB, f.productRepo, f.categoryRepo, f.addonRepo, f.comboRepo, f.offerRepo, f.rateRepo, f.favoriteRepo)
	f.addons = NewAddonService(testDB, f.addonRepo)
	f.combos = NewComboService(testDB, f.comboRepo, f.productRepo)
	f.offers = NewOfferService(f.offerRepo, f.productRepo)
	return f
}

func (f *catalogFixture) category(t *testing.T, name string) *model.Category {
	t.Helper()
	category, err := f.categories.Create(owner, CategoryInput{RestaurantID: testRestaurantID, Name: name})
	require.NoError(t, err)
	return category
}

func (f *catalogFixture) product(t *testing.T, category *model.Category, name string) *model.Product {
	t.Helper()
	product, err := f.products.Create(owner, ProductInput{
		CategoryID:   category.ID,
		RestaurantID: category.RestaurantID,
		Name:         name,
		SalePrice:    12.5,
	})
	require.NoError(t, err)
	return product
}

func (f *catalogFixture) addon(t *testing.T, name string) *model.Addon {
	t.Helper()
	addon, err := f.addons.Create(owner, AddonInput{RestaurantID: testRestaurantID, Name: name, Price: 1})
	require.NoError(t, err)
	return addon
}

func (f *catalogFixture) combo(t *testing.T, name string, lines ...ProductQuantity) *model.Combo {
	t.Helper()
	combo, err := f.combos.Create(owner, ComboInput{
		RestaurantID:  testRestaurantID,
		Name:          name,
		Price:         20,
		AddedProducts: lines,
	})
	require.NoError(t, err)
	return combo
}

func (f *catalogFixture) reloadProduct(t *testing.T, id uint) *model.Product {
	t.Helper()
	product, err := f.productRepo.FindByID(id)
	require.NoError(t, err)
	return product
}

func (f *catalogFixture) reloadCombo(t *testing.T, id uint) *model.Combo {
	t.Helper()
	combo, err := f.comboRepo.FindWithItems(id)
	require.NoError(t, err)
	return combo
}
