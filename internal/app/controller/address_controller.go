package controller

import (
	"net/http"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	Label     string   `json:"label" binding:"required"`
	City      string   `json:"city" binding:"required"`
	Street    string   `json:"street" binding:"required"`
	Details   string   `json:"details"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsDefault bool     `json:"is_default"`
}

func (r AddressRequest) toModel() *model.Address {
	return &model.Address{
		Label:     r.Label,
		City:      r.City,
		Street:    r.Street,
		Details:   r.Details,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		IsDefault: r.IsDefault,
	}
}

// ListAddresses returns the customer's addresses
// GET /api/address
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	addresses, err := ctrl.addressService.GetCustomerAddresses(actor.ID)
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "fetch addresses")
		return
	}

	log.Debug("Addresses fetched", map[string]interface{}{
		"customer_id": actor.ID,
		"count":       len(addresses),
	})

	apperrors.RespondOK(c, http.StatusOK, "Addresses fetched", gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress creates a new address
// POST /api/address/create
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create address request", map[string]interface{}{
			"customer_id": actor.ID,
			"error":       err.Error(),
		})
		apperrors.RespondWithValidationError(c, err)
		return
	}

	address := req.toModel()
	if err := ctrl.addressService.CreateAddress(actor.ID, address); err != nil {
		apperrors.RespondWithServiceError(c, err, "create address")
		return
	}

	apperrors.RespondOK(c, http.StatusCreated, "Address created successfully", gin.H{"address": address})
}

// UpdateAddress updates an existing address
// POST /api/address/update/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update address request", map[string]interface{}{
			"customer_id": actor.ID,
			"address_id":  id,
			"error":       err.Error(),
		})
		apperrors.RespondWithValidationError(c, err)
		return
	}

	address, err := ctrl.addressService.UpdateAddress(actor.ID, id, req.toModel())
	if err != nil {
		apperrors.RespondWithServiceError(c, err, "update address")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Address updated successfully", gin.H{"address": address})
}

// DeleteAddress deletes an address
// POST /api/address/delete/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.DeleteAddress(actor.ID, id); err != nil {
		apperrors.RespondWithServiceError(c, err, "delete address")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Address deleted successfully", nil)
}

// SetDefaultAddress sets an address as the default
// POST /api/address/default/:id
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addressService.SetDefaultAddress(actor.ID, id); err != nil {
		apperrors.RespondWithServiceError(c, err, "set default address")
		return
	}

	apperrors.RespondOK(c, http.StatusOK, "Default address set successfully", nil)
}
