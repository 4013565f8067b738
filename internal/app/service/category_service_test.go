package service

import (
	"strings"
	"testing"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	f := newCatalogFixture(t)

	tests := []struct {
		name    string
		actor   Actor
		input   CategoryInput
		wantErr error
		status  model.Status
	}{
		{
			name:   "defaults to active",
			actor:  owner,
			input:  CategoryInput{RestaurantID: testRestaurantID, Name: "Drinks"},
			status: model.StatusActive,
		},
		{
			name:   "created deactivated",
			actor:  owner,
			input:  CategoryInput{RestaurantID: testRestaurantID, Name: "Desserts", Status: model.StatusDeactivated},
			status: model.StatusDeactivated,
		},
		{
			name:    "other restaurant",
			actor:   stranger,
			input:   CategoryInput{RestaurantID: testRestaurantID, Name: "Drinks"},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "customer",
			actor:   customer,
			input:   CategoryInput{RestaurantID: testRestaurantID, Name: "Drinks"},
			wantErr: ErrNotRestaurant,
		},
		{
			name:    "name too long",
			actor:   owner,
			input:   CategoryInput{RestaurantID: testRestaurantID, Name: strings.Repeat("x", 121)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "short name too long",
			actor:   owner,
			input:   CategoryInput{RestaurantID: testRestaurantID, Name: "Drinks", ShortName: strings.Repeat("x", 61)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "deleted is not a creation status",
			actor:   owner,
			input:   CategoryInput{RestaurantID: testRestaurantID, Name: "Drinks", Status: model.StatusDeleted},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := f.categories.Create(tt.actor, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, category)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, category.Status)
			assert.Equal(t, tt.status == model.StatusActive, category.IsActive)
			assert.Equal(t, owner.Name, category.CreatedBy)
		})
	}
}

func TestCategoryService_DeleteRejectsActiveProducts(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	product := f.product(t, category, "Cola")

	_, err := f.categories.Delete(owner, category.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrCategoryHasProducts)

	found, err := f.categoryRepo.FindByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, found.Status)
	assert.Equal(t, model.StatusActive, f.reloadProduct(t, product.ID).Status)
}

func TestCategoryService_DeleteCascadesToAllProducts(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	juice := f.product(t, category, "Juice")

	_, err := f.products.Deactivate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	_, err = f.products.Deactivate(owner, juice.ID, testRestaurantID)
	require.NoError(t, err)

	deleted, err := f.categories.Delete(owner, category.ID, testRestaurantID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	for _, id := range []uint{cola.ID, juice.ID} {
		product := f.reloadProduct(t, id)
		assert.Equal(t, model.StatusDeleted, product.Status)
		assert.False(t, product.IsActive)
	}

	// a deleted category is gone for a second delete
	_, err = f.categories.Delete(owner, category.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteOwnership(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")

	_, err := f.categories.Delete(stranger, category.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// caller owns the path id but not the row
	_, err = f.categories.Delete(stranger, category.ID, otherRestaurantID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = f.categories.Delete(owner, 9999, testRestaurantID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_ActivateDeactivateGuards(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	product := f.product(t, category, "Cola")

	_, err := f.categories.Activate(owner, category.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrInvalidState)

	deactivated, err := f.categories.Deactivate(owner, category.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeactivated, deactivated.Status)
	assert.False(t, deactivated.IsActive)

	// no cascade either way
	assert.Equal(t, model.StatusActive, f.reloadProduct(t, product.ID).Status)

	_, err = f.categories.Deactivate(owner, category.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrInvalidState)

	activated, err := f.categories.Activate(owner, category.ID, testRestaurantID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
}

func TestCategoryService_RestoreReactivatesAllProducts(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	_, err := f.products.Deactivate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)

	_, err = f.categories.Restore(owner, category.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.categories.Delete(owner, category.ID, testRestaurantID)
	require.NoError(t, err)

	restored, err := f.categories.Restore(owner, category.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, restored.Status)

	// deactivated before the delete, active after the restore
	product := f.reloadProduct(t, cola.ID)
	assert.Equal(t, model.StatusActive, product.Status)
	assert.True(t, product.IsActive)
}

func TestCategoryService_UpdateReturnsReplacedPhoto(t *testing.T) {
	f := newCatalogFixture(t)
	category, err := f.categories.Create(owner, CategoryInput{
		RestaurantID: testRestaurantID,
		Name:         "Drinks",
		Photo:        "/uploads/categories/old.png",
	})
	require.NoError(t, err)

	updated, replaced, err := f.categories.Update(owner, category.ID, CategoryInput{
		RestaurantID: testRestaurantID,
		Name:         "Cold drinks",
		Photo:        "/uploads/categories/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/categories/old.png", replaced)
	assert.Equal(t, "/uploads/categories/new.png", updated.Photo)
	assert.Equal(t, "Cold drinks", updated.Name)

	_, replaced, err = f.categories.Update(owner, category.ID, CategoryInput{
		RestaurantID: testRestaurantID,
		Name:         "Cold drinks",
	})
	require.NoError(t, err)
	assert.Empty(t, replaced)
}

func TestCategoryService_Lists(t *testing.T) {
	f := newCatalogFixture(t)
	drinks := f.category(t, "Drinks")
	f.category(t, "Pizza")
	_, err := f.categories.Deactivate(owner, drinks.ID, testRestaurantID)
	require.NoError(t, err)

	mine, err := f.categories.ListMine(owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	public, err := f.categories.ListPublic(testRestaurantID)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Pizza", public[0].Name)

	_, err = f.categories.Delete(owner, drinks.ID, testRestaurantID)
	require.NoError(t, err)
	deleted, err := f.categories.ListDeleted(owner, testRestaurantID)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, drinks.ID, deleted[0].ID)

	_, err = f.categories.ListDeleted(stranger, testRestaurantID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
