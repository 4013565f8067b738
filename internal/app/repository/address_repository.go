package repository

import (
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByCustomerID(customerID uint) ([]model.Address, error)
	FindByID(id uint) (*model.Address, error)
	CountByCustomerID(customerID uint) (int64, error)
	Update(address *model.Address) error
	Delete(id uint) error
	SetDefault(customerID, addressID uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"customer_id": address.CustomerID,
			"label":       address.Label,
		})
		return err
	}

	logger.Debug("Address created in database", map[string]interface{}{
		"address_id":  address.ID,
		"customer_id": address.CustomerID,
	})
	return nil
}

func (r *addressRepository) FindByCustomerID(customerID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		logFindError("Failed to find address by ID in database", err, map[string]interface{}{
			"address_id": id,
		})
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) CountByCustomerID(customerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Address{}).Where("customer_id = ?", customerID).Count(&count).Error
	return count, err
}

func (r *addressRepository) Update(address *model.Address) error {
	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id":  address.ID,
			"customer_id": address.CustomerID,
		})
		return err
	}
	return nil
}

func (r *addressRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Address{}, id).Error; err != nil {
		logger.Error("Failed to delete address from database", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}

	logger.Debug("Address deleted from database", map[string]interface{}{
		"address_id": id,
	})
	return nil
}

// SetDefault makes addressID the customer's only default address.
func (r *addressRepository) SetDefault(customerID, addressID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Address{}).
			Where("customer_id = ? AND id <> ?", customerID, addressID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Address{}).
			Where("id = ? AND customer_id = ?", addressID, customerID).
			Update("is_default", true).Error
	})
	if err != nil {
		logger.Error("Failed to set default address", err, map[string]interface{}{
			"customer_id": customerID,
			"address_id":  addressID,
		})
		return err
	}

	logger.Debug("Default address set successfully", map[string]interface{}{
		"customer_id": customerID,
		"address_id":  addressID,
	})
	return nil
}
