package models

import "errors"

// Error codes for the domain taxonomy. Handlers map these to HTTP statuses;
// stores translate storage-level failures into them so that raw driver
// errors never cross the unit-of-work boundary.
const (
	CodeEmptyOrder        = "EmptyOrder"
	CodeItemNotFound      = "ItemNotFound"
	CodeAddOnNotFound     = "AddOnNotFound"
	CodeAmbiguousItem     = "AmbiguousItem"
	CodeDuplicateItem     = "DuplicateItem"
	CodeInvalidOrderState = "InvalidOrderState"
	CodeNotFound          = "NotFound"
)

// AppError is a domain error with a stable message and a structured details
// object keyed to the offending field or request fragment.
type AppError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

// AsAppError unwraps err into an *AppError if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrEmptyOrder rejects an order request with no items.
func ErrEmptyOrder() *AppError {
	return &AppError{
		Code:    CodeEmptyOrder,
		Message: "Items must be added to an order",
		Details: map[string]interface{}{"items": "at least one item is required"},
	}
}

// ErrItemNotFound reports a line item that matched no menu item. The detail
// is the offending item request so clients can highlight the exact input.
func ErrItemNotFound(item OrderItemRequest) *AppError {
	return &AppError{
		Code:    CodeItemNotFound,
		Message: "A matching menu item could not be found. Did you forget to specify size? Menu items are case sensitive. Did you spell it correctly?",
		Details: item.asDetails(),
	}
}

// ErrAmbiguousItem reports a line item that matched more than one menu item
// because the request omitted the disambiguating size.
func ErrAmbiguousItem(item OrderItemRequest) *AppError {
	return &AppError{
		Code:    CodeAmbiguousItem,
		Message: "Multiple menu items match this name. Specify a size to disambiguate.",
		Details: item.asDetails(),
	}
}

// ErrAddOnNotFound reports an add-on name that matched no add-on.
func ErrAddOnNotFound(name string) *AppError {
	return &AppError{
		Code:    CodeAddOnNotFound,
		Message: "A matching addon could not be found",
		Details: map[string]interface{}{"name": name},
	}
}

// ErrDuplicateItem reports a uniqueness conflict surfaced by the store.
func ErrDuplicateItem(details map[string]interface{}) *AppError {
	if details == nil {
		details = map[string]interface{}{}
	}
	return &AppError{
		Code:    CodeDuplicateItem,
		Message: "An item like this already exists",
		Details: details,
	}
}

// ErrInvalidOrderState reports a status token outside the enumerated set.
func ErrInvalidOrderState(got string) *AppError {
	return ErrInvalidStatusToken(got, OrderStatusNames())
}

// ErrInvalidStatusToken reports a status token outside the set the
// operation accepts. The detail lists that operation's tokens, which may
// be narrower than the full lifecycle.
func ErrInvalidStatusToken(got string, allowed []string) *AppError {
	return &AppError{
		Code:    CodeInvalidOrderState,
		Message: "Invalid order state",
		Details: map[string]interface{}{
			"status":         got,
			"must_be_one_of": allowed,
		},
	}
}

// ErrNotFound reports a missing resource by id.
func ErrNotFound(resource string, id int64) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: "The item requested does not exist",
		Details: map[string]interface{}{"resource": resource, "id": id},
	}
}
