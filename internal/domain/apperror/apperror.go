// Package apperror defines the typed failures returned by the catalog services.
// The HTTP layer maps each Kind to a status code; nothing matches on message text.
package apperror

import "errors"

type Kind uint8

const (
	// KindStore is the zero value so that unclassified failures surface as store errors.
	KindStore Kind = iota
	KindValidation
	KindInvalidID
	KindConflict
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidID:
		return "invalid_id"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "store"
	}
}

// Error carries a Kind, an optional stable Code and a caller-facing Message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches by Code when the target has one, otherwise by Kind.
// An InvalidID error also matches the Validation kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" {
		return t.Code == e.Code
	}
	if t.Kind == KindValidation && e.Kind == KindInvalidID {
		return true
	}
	return t.Kind == e.Kind
}

// Kind-only sentinels for errors.Is checks.
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrInvalidID    = &Error{Kind: KindInvalidID}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrStore        = &Error{Kind: KindStore}
)

var (
	ErrDuplicateEmail     = &Error{Kind: KindConflict, Code: "duplicate_email", Message: "Email already exists!"}
	ErrNotFoundOrDisabled = &Error{Kind: KindUnauthorized, Code: "not_found_or_disabled", Message: "User not found or not enabled!"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Code: "invalid_credentials", Message: "Invalid password!"}
	ErrCategoryExists     = &Error{Kind: KindConflict, Code: "category_exists", Message: "Category already exists!"}
	ErrCategoryNotFound   = &Error{Kind: KindNotFound, Code: "category_not_found", Message: "Category not found"}
	ErrCategoryInUse      = &Error{Kind: KindConflict, Code: "category_in_use", Message: "Category still has products"}
	ErrCategoryMissing    = &Error{Kind: KindValidation, Code: "category_missing", Message: "Category ID does not reference an existing category!"}
	ErrProductNotFound    = &Error{Kind: KindNotFound, Code: "product_not_found", Message: "Product not found"}
	ErrInvalidFilterKey   = &Error{Kind: KindValidation, Code: "invalid_filter_key", Message: "Invalid filter key"}
	ErrNoPrincipal        = &Error{Kind: KindUnauthorized, Code: "no_principal", Message: "unauthorized"}
)

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func InvalidID(msg string) *Error { return &Error{Kind: KindInvalidID, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Store wraps an unexpected persistence or credential failure.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Code: "store", Message: "Server error", Err: err}
}

// KindOf classifies err. Errors that are not *Error are store errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}
