package service

import (
	"testing"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddonService_StatusCascadesToLinks(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Pizza")
	cheese := f.addon(t, "Cheese")
	product, err := f.products.Create(owner, ProductInput{
		CategoryID:   category.ID,
		RestaurantID: testRestaurantID,
		Name:         "Margherita",
		Addons:       addonSet(cheese.ID),
	})
	require.NoError(t, err)

	linkStatus := func() model.Status {
		var link model.AddonPerProduct
		require.NoError(t, f.db.Where("product_id = ? AND addon_id = ?", product.ID, cheese.ID).First(&link).Error)
		return link.Status
	}

	_, err = f.addons.Deactivate(owner, cheese.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeactivated, linkStatus())

	detail, err := f.products.GetDetail(product.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, detail.Addons)

	_, err = f.addons.Activate(owner, cheese.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, linkStatus())

	_, err = f.addons.Delete(owner, cheese.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, linkStatus())

	// deleted addons cannot be attached
	_, err = f.products.Create(owner, ProductInput{
		CategoryID:   category.ID,
		RestaurantID: testRestaurantID,
		Name:         "Quattro",
		Addons:       addonSet(cheese.ID),
	})
	assert.ErrorIs(t, err, ErrAddonNotFound)
}

func TestAddonService_CreateAndList(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.addons.Create(owner, AddonInput{RestaurantID: testRestaurantID, Name: " ", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.addons.Create(owner, AddonInput{RestaurantID: testRestaurantID, Name: "Cheese", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.addons.Create(stranger, AddonInput{RestaurantID: testRestaurantID, Name: "Cheese"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	f.addon(t, "Cheese")
	_, err = f.addons.Create(owner, AddonInput{RestaurantID: testRestaurantID, Name: "Olives", Status: model.StatusDeactivated})
	require.NoError(t, err)

	mine, err := f.addons.ListMine(owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	public, err := f.addons.ListPublic(testRestaurantID)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Cheese", public[0].Name)

	updated, err := f.addons.Update(owner, public[0].ID, AddonInput{RestaurantID: testRestaurantID, Name: "Extra cheese", Price: 2})
	require.NoError(t, err)
	assert.Equal(t, "Extra cheese", updated.Name)
}
