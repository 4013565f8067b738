package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is what a failed request reports to the client.
type ErrorInfo struct {
	Kind    Kind
	Code    string
	Message string
}

// ParseError turns an unregistered error (usually straight from the driver)
// into a client-safe ErrorInfo. Constraint names and SQL never reach the client.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Kind: KindUnexpected, Code: InternalServerError, Message: getDefaultErrorMessage(context)}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Kind: KindNotFound, Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	errLower := strings.ToLower(err.Error())

	// postgres 23505 / sqlite UNIQUE
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// postgres 23503 / sqlite FOREIGN KEY
	if strings.Contains(errLower, "foreign key constraint") {
		if strings.Contains(errLower, "still referenced") {
			return ErrorInfo{Kind: KindConflict, Code: ResourceConflict, Message: "The record is still referenced by other data"}
		}
		return ErrorInfo{Kind: KindNotFound, Code: ResourceNotFound, Message: "Referenced data was not found"}
	}

	// postgres 23502 / sqlite NOT NULL
	if strings.Contains(errLower, "not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{Kind: KindValidation, Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errLower, "check constraint") {
		return ErrorInfo{Kind: KindValidation, Code: ValidationInvalidRange, Message: "A field value is out of range"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{Kind: KindUnexpected, Code: InternalExternalAPI, Message: "An upstream service is unavailable, please retry later"}
	}

	return ErrorInfo{Kind: KindUnexpected, Code: InternalServerError, Message: getDefaultErrorMessage(context)}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "phone"):
		return ErrorInfo{Kind: KindValidation, Code: AuthPhoneExists, Message: "Phone number is already registered"}
	case strings.Contains(errLower, "favorite"):
		return ErrorInfo{Kind: KindConflict, Code: ResourceAlreadyExists, Message: "Product is already a favorite"}
	case strings.Contains(errLower, "combo_product") || strings.Contains(errLower, "combo_items"):
		return ErrorInfo{Kind: KindConflict, Code: ResourceConflict, Message: "Product already belongs to this combo"}
	case strings.Contains(errLower, "addon_product") || strings.Contains(errLower, "addon_per_products"):
		return ErrorInfo{Kind: KindConflict, Code: ResourceConflict, Message: "Addon is already attached to this product"}
	}
	return ErrorInfo{Kind: KindConflict, Code: ResourceAlreadyExists, Message: "The record already exists"}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	for _, entity := range []string{"category", "product", "combo", "addon", "offer", "address", "favorite", "restaurant"} {
		if strings.Contains(contextLower, entity) {
			return strings.ToUpper(entity[:1]) + entity[1:] + " not found"
		}
	}
	if strings.Contains(contextLower, "home ad") {
		return "Home ad not found"
	}
	return "The requested data was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create, please retry later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update, please retry later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete, please retry later"
	}
	return "Internal server error, please retry later"
}
