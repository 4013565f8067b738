package service

import (
	"testing"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferService_CreateValidation(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	start := time.Now()
	before := start.Add(-time.Hour)

	tests := []struct {
		name    string
		input   OfferInput
		wantErr error
	}{
		{"zero discount", OfferInput{RestaurantID: testRestaurantID, Title: "x", DiscountPercent: 0}, ErrInvalidInput},
		{"over 100", OfferInput{RestaurantID: testRestaurantID, Title: "x", DiscountPercent: 101}, ErrInvalidInput},
		{"missing title", OfferInput{RestaurantID: testRestaurantID, DiscountPercent: 10}, ErrInvalidInput},
		{"end before start", OfferInput{RestaurantID: testRestaurantID, Title: "x", DiscountPercent: 10, StartDate: &start, EndDate: &before}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.offers.Create(owner, cola.ID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := f.products.Deactivate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	_, err = f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "x", DiscountPercent: 10})
	assert.ErrorIs(t, err, ErrProductNotActive)
}

func TestOfferService_ActivateRequiresActiveProduct(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	offer, err := f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Promo", DiscountPercent: 20})
	require.NoError(t, err)

	_, err = f.products.Deactivate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)

	_, err = f.offers.Activate(owner, offer.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrProductNotActive)

	_, err = f.products.Activate(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	activated, err := f.offers.Activate(owner, offer.ID, testRestaurantID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	_, err = f.offers.Activate(stranger, offer.ID, otherRestaurantID)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestOfferService_ListEffectiveAndExpire(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	running, err := f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Running", DiscountPercent: 10, StartDate: &yesterday, EndDate: &tomorrow})
	require.NoError(t, err)
	_, err = f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Gift", DiscountPercent: 50, IsPleasing: true})
	require.NoError(t, err)
	ended, err := f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Ended", DiscountPercent: 15, StartDate: &lastWeek, EndDate: &yesterday})
	require.NoError(t, err)
	_, err = f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Future", DiscountPercent: 15, StartDate: &tomorrow})
	require.NoError(t, err)

	effective, err := f.offers.ListEffective(cola.ID)
	require.NoError(t, err)
	require.Len(t, effective.Discounts, 1)
	assert.Equal(t, running.ID, effective.Discounts[0].ID)
	require.Len(t, effective.PleasingOffers, 1)
	assert.Equal(t, "Gift", effective.PleasingOffers[0].Title)

	expired, err := f.offers.ExpireOffers(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	found, err := f.offerRepo.FindByID(ended.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeactivated, found.Status)

	all, err := f.offers.ListByProduct(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestOfferService_Delete(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.category(t, "Drinks")
	cola := f.product(t, category, "Cola")
	offer, err := f.offers.Create(owner, cola.ID, OfferInput{RestaurantID: testRestaurantID, Title: "Promo", DiscountPercent: 20})
	require.NoError(t, err)

	deleted, err := f.offers.Delete(owner, offer.ID, testRestaurantID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	_, err = f.offers.Delete(owner, offer.ID, testRestaurantID)
	assert.ErrorIs(t, err, ErrInvalidState)

	all, err := f.offers.ListByProduct(owner, cola.ID, testRestaurantID)
	require.NoError(t, err)
	assert.Empty(t, all)
}
