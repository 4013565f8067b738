package errors

import (
	"errors"
	"net/http"
	"sync"
)

// Kind classifies a service error into one of the response families.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "unexpected"
}

// HTTPStatus maps a kind to its response status. Conflicts are reported as 400.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type registration struct {
	target  error
	kind    Kind
	code    string
	message string
}

var (
	registryMu sync.RWMutex
	registry   []registration
)

// Register binds a sentinel error to its kind, code and client message.
// An empty message falls back to the error text.
func Register(target error, kind Kind, code, message string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, registration{target: target, kind: kind, code: code, message: message})
}

// Classify resolves err against the registry first and the database error
// parser second. Wrapped sentinels keep their detail text in the message.
func Classify(err error, context string) ErrorInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, r := range registry {
		if !errors.Is(err, r.target) {
			continue
		}
		msg := r.message
		if msg == "" || err != r.target {
			msg = err.Error()
		}
		if r.kind == KindUnexpected {
			msg = getDefaultErrorMessage(context)
		}
		return ErrorInfo{Kind: r.kind, Code: r.code, Message: msg}
	}
	return ParseError(err, context)
}
