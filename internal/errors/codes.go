package errors

// Error codes returned in the "error" field of every failure response.
// Format: AREA_DETAIL. Clients map on the code, not on the message.

const (
	// auth
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthPhoneExists        = "AUTH_PHONE_EXISTS"
	AuthPhoneNotVerified   = "AUTH_PHONE_NOT_VERIFIED"
	AuthCodeInvalid        = "AUTH_CODE_INVALID"
	AuthCodeExpired        = "AUTH_CODE_EXPIRED"
	AuthAlreadyVerified    = "AUTH_ALREADY_VERIFIED"
	AuthOTPCooldown        = "AUTH_OTP_COOLDOWN"

	// authorization
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// validation
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"
	ValidationTooLong      = "VALIDATION_TOO_LONG"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// generic resources
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"
	ResourceInvalidState  = "RESOURCE_INVALID_STATE"

	// catalog
	CategoryNotFound     = "CATEGORY_NOT_FOUND"
	CategoryHasProducts  = "CATEGORY_HAS_PRODUCTS"
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductInCombo       = "PRODUCT_IN_COMBO"
	ProductNotActive     = "PRODUCT_NOT_ACTIVE"
	AddonNotFound        = "ADDON_NOT_FOUND"
	ComboNotFound        = "COMBO_NOT_FOUND"
	ComboEmpty           = "COMBO_EMPTY"
	ComboInactiveProduct = "COMBO_INACTIVE_PRODUCT"
	OfferNotFound        = "OFFER_NOT_FOUND"

	// customer side
	FavoriteNotFound = "FAVORITE_NOT_FOUND"
	RateInvalidValue = "RATE_INVALID_VALUE"
	AddressNotFound  = "ADDRESS_NOT_FOUND"
	HomeAdNotFound   = "HOME_AD_NOT_FOUND"

	// upload
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
