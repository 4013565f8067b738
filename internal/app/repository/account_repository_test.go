package repository

import (
	"testing"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAccountTest(t *testing.T) (*gorm.DB, AccountRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testDB, NewAccountRepository(testDB)
}

func newCustomer(phone string) *model.Customer {
	c := &model.Customer{Account: model.Account{
		Name:         "Test Customer",
		Phone:        phone,
		PasswordHash: "hashedpassword",
	}}
	c.SetStatus(model.StatusPending)
	return c
}

func TestAccountRepository_Create(t *testing.T) {
	_, repo := setupAccountTest(t)

	tests := []struct {
		name    string
		holder  model.AccountHolder
		wantErr bool
	}{
		{
			name:    "Valid customer",
			holder:  newCustomer("0999000001"),
			wantErr: false,
		},
		{
			name:    "Duplicate phone",
			holder:  newCustomer("0999000001"),
			wantErr: true,
		},
		{
			name: "Same phone on another kind",
			holder: &model.Restaurant{Account: model.Account{
				Name:         "Pizza Place",
				Phone:        "0999000001",
				PasswordHash: "hashedpassword",
				Lifecycle:    model.Lifecycle{Status: model.StatusPending},
			}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.holder)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.holder.AccountID())
			}
		})
	}
}

func TestAccountRepository_FindByPhone(t *testing.T) {
	_, repo := setupAccountTest(t)
	customer := newCustomer("0999000002")
	require.NoError(t, repo.Create(customer))

	tests := []struct {
		name    string
		role    model.UserRole
		phone   string
		wantErr bool
	}{
		{name: "Existing phone", role: model.RoleCustomer, phone: "0999000002"},
		{name: "Unknown phone", role: model.RoleCustomer, phone: "0999999999", wantErr: true},
		{name: "Wrong kind", role: model.RoleRestaurant, phone: "0999000002", wantErr: true},
		{name: "Unknown role", role: model.UserRole("guest"), phone: "0999000002", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByPhone(tt.role, tt.phone)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, customer.ID, found.AccountID())
			assert.Equal(t, model.RoleCustomer, found.AccountRole())
			assert.Equal(t, "Test Customer", found.AccountData().Name)
		})
	}
}

func TestAccountRepository_FindByID(t *testing.T) {
	_, repo := setupAccountTest(t)
	customer := newCustomer("0999000003")
	require.NoError(t, repo.Create(customer))

	found, err := repo.FindByID(model.RoleCustomer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "0999000003", found.AccountData().Phone)

	_, err = repo.FindByID(model.RoleCustomer, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAccountRepository_SetStatus(t *testing.T) {
	_, repo := setupAccountTest(t)
	customer := newCustomer("0999000004")
	require.NoError(t, repo.Create(customer))
	assert.False(t, customer.IsActive)

	require.NoError(t, repo.SetStatus(model.RoleCustomer, customer.ID, model.StatusActive))

	found, err := repo.FindByID(model.RoleCustomer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, found.AccountData().Status)
	assert.True(t, found.AccountData().IsActive)
}

func TestAccountRepository_WithTxRollsBack(t *testing.T) {
	testDB, repo := setupAccountTest(t)

	err := testDB.Transaction(func(tx *gorm.DB) error {
		if err := repo.WithTx(tx).Create(newCustomer("0999000005")); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)

	_, err = repo.FindByPhone(model.RoleCustomer, "0999000005")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
