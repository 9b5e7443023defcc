package adoption

import "errors"

// Sentinel errors for framework and catalog validation.
var (
	// ErrInvalidParameter indicates a model parameter (r, K, d, U0) is out of range or not finite.
	ErrInvalidParameter = errors.New("invalid model parameter")
	// ErrInvalidDate indicates a launch date is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid launch date")
	// ErrInvalidColor indicates a display color is not a #RRGGBB hex string.
	ErrInvalidColor = errors.New("invalid color")
	// ErrMissingField indicates a required field (e.g. name) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateName indicates two or more frameworks share the same name.
	ErrDuplicateName = errors.New("duplicate framework name")
	// ErrEmptyCatalog indicates a catalog with no frameworks.
	ErrEmptyCatalog = errors.New("catalog has no frameworks")
	// ErrUnknownFramework indicates a lookup for a name that is not in the catalog.
	ErrUnknownFramework = errors.New("unknown framework")
	// ErrInvalidOptions indicates non-positive step or negative horizon.
	ErrInvalidOptions = errors.New("invalid simulation options")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	// ValCatMissingField indicates a required field is empty.
	ValCatMissingField ValidationCategory = "missing_field"
	// ValCatBounds indicates a numeric field is out of its valid range.
	ValCatBounds ValidationCategory = "bounds_violation"
	// ValCatDate indicates an unparseable launch date.
	ValCatDate ValidationCategory = "bad_date"
	// ValCatColor indicates an unparseable display color.
	ValCatColor ValidationCategory = "bad_color"
	// ValCatDuplicate indicates two frameworks share a name.
	ValCatDuplicate ValidationCategory = "duplicate_name"
)

// ValidationError records a validation problem with framework context.
type ValidationError struct {
	Category  ValidationCategory
	Framework string
	Field     string
	Err       error
}

// Error returns a human-readable string including framework and field context.
func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Framework != "" {
		return "framework " + e.Framework + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
