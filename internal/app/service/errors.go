package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidState  = errors.New("invalid state")
	ErrNotRestaurant = errors.New("only restaurants can manage the catalog")
)

func init() {
	apperrors.Register(ErrUnauthorized, apperrors.KindAuthorization, apperrors.AuthzOwnerOnly, "Unauthorized")
	apperrors.Register(ErrNotRestaurant, apperrors.KindAuthorization, apperrors.AuthzForbidden, "Unauthorized")
	apperrors.Register(ErrInvalidInput, apperrors.KindValidation, apperrors.ValidationInvalidInput, "")
	apperrors.Register(ErrInvalidState, apperrors.KindNotFound, apperrors.ResourceInvalidState, "")

	apperrors.Register(ErrCategoryNotFound, apperrors.KindNotFound, apperrors.CategoryNotFound, "Category not found")
	apperrors.Register(ErrCategoryHasProducts, apperrors.KindConflict, apperrors.CategoryHasProducts, "Category has products")

	apperrors.Register(ErrProductNotFound, apperrors.KindNotFound, apperrors.ProductNotFound, "Product not found")
	apperrors.Register(ErrProductInCombo, apperrors.KindConflict, apperrors.ProductInCombo, "Product is part of a combo, remove it from combos first")
	apperrors.Register(ErrProductNotActive, apperrors.KindConflict, apperrors.ProductNotActive, "Product is not active")
	apperrors.Register(ErrAddonNotFound, apperrors.KindNotFound, apperrors.AddonNotFound, "Addon not found")

	apperrors.Register(ErrComboNotFound, apperrors.KindNotFound, apperrors.ComboNotFound, "Combo not found")
	apperrors.Register(ErrComboProductsNotFound, apperrors.KindNotFound, apperrors.ProductNotFound, "")
	apperrors.Register(ErrComboEmpty, apperrors.KindConflict, apperrors.ComboEmpty, "Combo has no products")
	apperrors.Register(ErrComboInactiveProduct, apperrors.KindConflict, apperrors.ComboInactiveProduct, "")

	apperrors.Register(ErrOfferNotFound, apperrors.KindNotFound, apperrors.OfferNotFound, "Offer not found")

	apperrors.Register(ErrAccountExists, apperrors.KindValidation, apperrors.AuthPhoneExists, "Phone number is already registered")
	apperrors.Register(ErrInvalidCredentials, apperrors.KindAuthorization, apperrors.AuthInvalidCredentials, "Invalid phone or password")
	apperrors.Register(ErrAccountNotVerified, apperrors.KindAuthorization, apperrors.AuthPhoneNotVerified, "Phone number is not verified")
	apperrors.Register(ErrAccountNotFound, apperrors.KindNotFound, apperrors.ResourceNotFound, "Account not found")
	apperrors.Register(ErrAlreadyVerified, apperrors.KindValidation, apperrors.AuthAlreadyVerified, "Account is already verified")
	apperrors.Register(ErrOTPInvalid, apperrors.KindValidation, apperrors.AuthCodeInvalid, "Invalid verification code")
	apperrors.Register(ErrOTPExpired, apperrors.KindValidation, apperrors.AuthCodeExpired, "Verification code has expired")
	apperrors.Register(ErrOTPCooldown, apperrors.KindValidation, apperrors.AuthOTPCooldown, "Please wait before requesting another code")
	apperrors.Register(ErrOTPDelivery, apperrors.KindUnexpected, apperrors.InternalExternalAPI, "")
	apperrors.Register(ErrInvalidToken, apperrors.KindAuthorization, apperrors.AuthTokenInvalid, "Invalid token")

	apperrors.Register(ErrFavoriteNotFound, apperrors.KindNotFound, apperrors.FavoriteNotFound, "Favorite not found")
	apperrors.Register(ErrInvalidRate, apperrors.KindValidation, apperrors.RateInvalidValue, "Rate must be between 1 and 5")
	apperrors.Register(ErrHomeAdNotFound, apperrors.KindNotFound, apperrors.HomeAdNotFound, "Home ad not found")
	apperrors.Register(ErrAddressNotFound, apperrors.KindNotFound, apperrors.AddressNotFound, "Address not found")
	apperrors.Register(ErrRestaurantNotFound, apperrors.KindNotFound, apperrors.ResourceNotFound, "Restaurant not found")
}

// invalidf builds a validation error carrying a client-facing message.
func invalidf(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalidInput }

// stateError reports a lifecycle move the entity's current status does not allow.
type stateError struct {
	entity string
	from   model.Status
	want   []model.Status
}

func (e *stateError) Error() string {
	want := make([]string, len(e.want))
	for i, s := range e.want {
		want[i] = string(s)
	}
	return fmt.Sprintf("%s is %s, expected %s", e.entity, e.from, strings.Join(want, " or "))
}

func (e *stateError) Is(target error) bool { return target == ErrInvalidState }

// requireStatus fails unless current is one of want.
func requireStatus(entity string, current model.Status, want ...model.Status) error {
	for _, w := range want {
		if current == w {
			return nil
		}
	}
	return &stateError{entity: entity, from: current, want: want}
}

// idList formats ids for error messages.
func idList(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
