package errx

import (
	"errors"
	"fmt"
)

// Type classifies an error for transport-agnostic handling.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeUnavailable   Type = "UNAVAILABLE"
	TypeInternal      Type = "INTERNAL"
)

// Code is a registered error code handle. Codes are created once at package
// init via Registry.Register and passed to New/NewWithCause.
type Code struct {
	registry   string
	code       string
	errType    Type
	httpStatus int
	message    string
}

// String returns the fully qualified code, e.g. "SCREENING.EMPTY_BATCH".
func (c Code) String() string {
	return c.registry + "." + c.code
}

// Registry groups error codes under a domain prefix.
type Registry struct {
	prefix string
}

// NewRegistry creates a registry for the given domain prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register declares a new error code under this registry.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	return Code{
		registry:   r.prefix,
		code:       code,
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
}

// New creates an error for the given code.
func (r *Registry) New(c Code) *Error {
	return &Error{
		Code:       c.String(),
		Type:       c.errType,
		Message:    c.message,
		HTTPStatus: c.httpStatus,
		code:       c,
	}
}

// NewWithCause creates an error for the given code wrapping an underlying cause.
func (r *Registry) NewWithCause(c Code, cause error) *Error {
	e := r.New(c)
	e.cause = cause
	return e
}

// Error is the canonical application error carrying a registered code,
// structured details and an optional cause.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`

	code  Code
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a single key/value detail and returns the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the given map into the error details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// Is reports whether target carries the same registered code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ToHTTPResponse returns the JSON-serializable response body for this error.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// IsCode reports whether err (or anything it wraps) was created from code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code.String()
	}
	return false
}
