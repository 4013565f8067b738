package service

import (
	"testing"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addonSet(ids ...uint) *AddonIDs {
	set := AddonIDs(ids)
	return &set
}

func TestProductService_CreateInheritsCategoryStatus(t *testing.T) {
	f := newCatalogFixture(t)
	active := f.category(t, "Drinks")
	hidden, err := f.categories.Create(owner, CategoryInput{RestaurantID: testRestaurantID, Name: "Seasonal", Status: model.StatusDeactivated})
	require.NoError(t, err)

	cola := f.product(t, active, "Cola")
	assert.Equal(t, model.StatusActive, cola.Status)
	assert.True(t, cola.ForSale)

	pumpkin := f.product(t, hidden, "Pumpkin pie")
	assert.Equal(t, model.StatusDeactivated, pumpkin.Status)
	assert.False(t, pumpkin.IsActive)
}

func TestProductService_CreateValidation(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	negative := -5

	tests := []struct {
		name    string
		actor   Actor
		input   ProductInput
		wantErr error
	}{
		{
			name:    "missing category",
			actor:   owner,
			input:   ProductInput{CategoryID: 9999, RestaurantID: testRestaurantID, Name: "Cola"},
			wantErr: ErrCategoryNotFound,
		},
		{
			name:    "negative prep time",
			actor:   owner,
			input:   ProductInput{CategoryID: category.ID, RestaurantID: testRestaurantID, Name: "Cola", PrepTimeMinutes: &negative},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative price",
			actor:   owner,
			input:   ProductInput{CategoryID: category.ID, RestaurantID: testRestaurantID, Name: "Cola", SalePrice: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown addon",
			actor:   owner,
			input:   ProductInput{CategoryID: category.ID, RestaurantID: testRestaurantID, Name: "Cola", Addons: addonSet(4242)},
			wantErr: ErrAddonNotFound,
		},
		{
			name:    "foreign restaurant",
			actor:   stranger,
			input:   ProductInput{CategoryID: category.ID, RestaurantID: testRestaurantID, Name: "Cola"},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "category of another restaurant",
			actor:   stranger,
			input:   ProductInput{CategoryID: category.ID, RestaurantID: otherRestaurantID, Name: "Cola"},
			wantErr: ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := f.products.Create(tt.actor, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, product)
		})
	}
}

func TestProductService_AddonSetReconciliation(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Pizza")
	cheese := f.addon(t, "Cheese")
	olives := f.addon(t, "Olives")
	chili := f.addon(t, "Chili")

	product, err := f.products.Create(owner, ProductInput{
		CategoryID:   category.ID,
		RestaurantID: testRestaurantID,
		Name:         "Margherita",
		SalePrice:    9,
		Addons:       addonSet(cheese.ID, olives.ID),
	})
	require.NoError(t, err)

	var cheeseLink model.AddonPerProduct
	require.NoError(t, f.db.Where("product_id = ? AND addon_id = ?", product.ID, cheese.ID).First(&cheeseLink).Error)

	update := func(addons *AddonIDs) {
		_, _, err := f.products.Update(owner, product.ID, ProductInput{
			RestaurantID: testRestaurantID,
			Name:         "Margherita",
			SalePrice:    9,
			Addons:       addons,
		})
		require.NoError(t, err)
	}

	update(addonSet(cheese.ID, chili.ID))
	ids, err := f.productRepo.AddonIDs(product.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{cheese.ID, chili.ID}, ids)

	// kept rows are not recreated
	var kept model.AddonPerProduct
	require.NoError(t, f.db.Where("product_id = ? AND addon_id = ?", product.ID, cheese.ID).First(&kept).Error)
	assert.Equal(t, cheeseLink.ID, kept.ID)

	// the dropped row is gone, not soft-deleted
	var dropped int64
	f.db.Model(&model.AddonPerProduct{}).Where("product_id = ? AND addon_id = ?", product.ID, olives.ID).Count(&dropped)
	assert.Zero(t, dropped)

	update(nil)
	ids, err = f.productRepo.AddonIDs(product.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	update(addonSet())
	ids, err = f.productRepo.AddonIDs(product.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProductService_DeleteRejectedWhileInCombo(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	combo := f.combo(t, "Lunch", ProductQuantity{ProductID: cola.ID, Quantity: 1})

	_, err := f.products.Delete(owner, cola.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrProductInCombo)
	assert.Equal(t, model.StatusActive, f.reloadProduct(t, cola.ID).Status)

	// a deleted combo no longer blocks
	_, err = f.combos.Delete(owner, combo.ID, testRestaurantID)
	require.NoError(t, err)

	deleted, err := f.products.Delete(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
}

func TestProductService_DeleteCascadesToOffers(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	offer, err := f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Summer", DiscountPercent: 10})
	require.NoError(t, err)

	_, err = f.products.Delete(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)

	found, err := f.offerRepo.FindByID(offer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, found.Status)

	// restore leaves offers alone
	restored, err := f.products.Restore(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, restored.Status)

	found, err = f.offerRepo.FindByID(offer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, found.Status)
}

func TestProductService_DeactivateCascadesToCombosAndOffers(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	fries := f.product(t, category, "Fries")

	comboA := f.combo(t, "A", ProductQuantity{ProductID: cola.ID, Quantity: 1}, ProductQuantity{ProductID: fries.ID, Quantity: 1})
	comboB := f.combo(t, "B", ProductQuantity{ProductID: fries.ID, Quantity: 2})
	offer, err := f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Happy hour", DiscountPercent: 25})
	require.NoError(t, err)

	_, err = f.products.Deactivate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)

	a := f.reloadCombo(t, comboA.ID)
	assert.Equal(t, model.StatusDeactivated, a.Status)
	for _, item := range a.Items {
		assert.Equal(t, model.StatusDeactivated, item.Status)
	}
	assert.Equal(t, model.StatusActive, f.reloadCombo(t, comboB.ID).Status)

	found, err := f.offerRepo.FindByID(offer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeactivated, found.Status)

	// activating the product does not bring the combo back
	_, err = f.products.Activate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeactivated, f.reloadCombo(t, comboA.ID).Status)

	_, err = f.products.Activate(owner, cola.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestProductService_DeactivateLeavesDeletedCombos(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	combo := f.combo(t, "Old", ProductQuantity{ProductID: cola.ID, Quantity: 1})
	_, err := f.combos.Delete(owner, combo.ID, testRestaurantID)
	require.NoError(t, err)

	_, err = f.products.Deactivate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, f.reloadCombo(t, combo.ID).Status)
}

func TestProductService_HideUnhide(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")

	_, err := f.products.Unhide(owner, cola.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	hidden, err := f.products.Hide(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	assert.False(t, hidden.ForSale)
	assert.Equal(t, model.StatusActive, hidden.Status)

	listed, err := f.products.ListByCategory(category.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = f.products.Hide(owner, cola.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.products.Unhide(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	listed, err = f.products.ListByCategory(category.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestProductService_GetDetail(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Pizza")
	cheese := f.addon(t, "Cheese")
	product, err := f.products.Create(owner, ProductInput{
		CategoryID:   category.ID,
		RestaurantID: testRestaurantID,
		Name:         "Margherita",
		SalePrice:    9,
		Addons:       addonSet(cheese.ID),
	})
	require.NoError(t, err)

	_, err = f.offers.Create(owner, product.ID, OfferInput{RestaurantID: testRestaurantID, Title: "10% off", DiscountPercent: 10})
	require.NoError(t, err)
	_, err = f.offers.Create(owner, product.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Free drink", DiscountPercent: 100, IsPleasing: true})
	require.NoError(t, err)
	past := time.Now().Add(-48 * time.Hour)
	ended := time.Now().Add(-24 * time.Hour)
	_, err = f.offers.Create(owner, product.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Gone", DiscountPercent: 5, StartDate: &past, EndDate: &ended})
	require.NoError(t, err)

	rates := NewRateService(f.rateRepo, f.productRepo)
	_, err = rates.Rate(customer.ID, product.ID, 4, "good")
	require.NoError(t, err)
	_, err = NewFavoriteService(f.favoriteRepo, f.productRepo).Add(customer.ID, product.ID)
	require.NoError(t, err)

	viewer := customer
	detail, err := f.products.GetDetail(product.ID, &viewer)
	require.NoError(t, err)
	require.Len(t, detail.Addons, 1)
	assert.Equal(t, "Cheese", detail.Addons[0].Name)
	require.Len(t, detail.Discounts, 1)
	assert.Equal(t, "10% off", detail.Discounts[0].Title)
	require.Len(t, detail.PleasingOffers, 1)
	assert.InDelta(t, 4.0, detail.AverageRating, 0.001)
	assert.Equal(t, int64(1), detail.RatingCount)
	assert.True(t, detail.IsFavorite)

	_, err = f.products.Deactivate(owner, product.ID, testRestaurantID)
	require.NoError(t, err)

	_, err = f.products.GetDetail(product.ID, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)

	ownerView := owner
	detail, err = f.products.GetDetail(product.ID, &ownerView)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeactivated, detail.Status)
}
