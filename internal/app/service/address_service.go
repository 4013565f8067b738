package service

import (
	"errors"
	"strings"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressService interface {
	GetCustomerAddresses(customerID uint) ([]model.Address, error)
	CreateAddress(customerID uint, address *model.Address) error
	UpdateAddress(customerID, addressID uint, updated *model.Address) (*model.Address, error)
	DeleteAddress(customerID, addressID uint) error
	SetDefaultAddress(customerID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{
		addressRepo: addressRepo,
	}
}

func validateAddress(address *model.Address) error {
	address.Label = strings.TrimSpace(address.Label)
	address.City = strings.TrimSpace(address.City)
	address.Street = strings.TrimSpace(address.Street)
	if address.Label == "" || address.City == "" || address.Street == "" {
		return invalidf("label, city and street are required")
	}
	return nil
}

func (s *addressService) GetCustomerAddresses(customerID uint) ([]model.Address, error) {
	addresses, err := s.addressRepo.FindByCustomerID(customerID)
	if err != nil {
		logger.Error("Failed to fetch customer addresses", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return addresses, nil
}

// CreateAddress makes the customer's first address the default one.
func (s *addressService) CreateAddress(customerID uint, address *model.Address) error {
	if err := validateAddress(address); err != nil {
		return err
	}
	address.ID = 0
	address.CustomerID = customerID

	count, err := s.addressRepo.CountByCustomerID(customerID)
	if err != nil {
		return err
	}
	if count == 0 {
		address.IsDefault = true
	}

	wantDefault := address.IsDefault
	address.IsDefault = false
	if err := s.addressRepo.Create(address); err != nil {
		return err
	}
	if wantDefault {
		if err := s.addressRepo.SetDefault(customerID, address.ID); err != nil {
			return err
		}
		address.IsDefault = true
	}

	logger.Info("Address created", map[string]interface{}{
		"address_id":  address.ID,
		"customer_id": customerID,
		"is_default":  address.IsDefault,
	})
	return nil
}

func (s *addressService) owned(customerID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.CustomerID != customerID {
		logger.Warn("Address belongs to another customer", map[string]interface{}{
			"address_id":  addressID,
			"customer_id": customerID,
		})
		return nil, ErrAddressNotFound
	}
	return address, nil
}

func (s *addressService) UpdateAddress(customerID, addressID uint, updated *model.Address) (*model.Address, error) {
	if err := validateAddress(updated); err != nil {
		return nil, err
	}
	address, err := s.owned(customerID, addressID)
	if err != nil {
		return nil, err
	}

	address.Label = updated.Label
	address.City = updated.City
	address.Street = updated.Street
	address.Details = updated.Details
	address.Latitude = updated.Latitude
	address.Longitude = updated.Longitude
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	if updated.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(customerID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}
	return address, nil
}

func (s *addressService) DeleteAddress(customerID, addressID uint) error {
	address, err := s.owned(customerID, addressID)
	if err != nil {
		return err
	}
	if err := s.addressRepo.Delete(address.ID); err != nil {
		return err
	}

	logger.Info("Address deleted", map[string]interface{}{
		"address_id":  addressID,
		"customer_id": customerID,
	})
	return nil
}

func (s *addressService) SetDefaultAddress(customerID, addressID uint) error {
	if _, err := s.owned(customerID, addressID); err != nil {
		return err
	}
	return s.addressRepo.SetDefault(customerID, addressID)
}
