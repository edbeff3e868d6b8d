package model

// Standard error codes for facade responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeItemNotFound    = "ITEM_NOT_FOUND"
	ErrCodeEmptyCart       = "EMPTY_CART"
	ErrCodeNoPaymentMethod = "NO_PAYMENT_METHOD"
	ErrCodeNoSession       = "NO_SESSION"
	ErrCodeWrongState      = "WRONG_STATE"
	ErrCodeSubmitInFlight  = "SUBMIT_IN_FLIGHT"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside the message so handlers can
// map business failures to HTTP statuses without string matching.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least one")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found in catalog")
	ErrItemNotFound    = NewDomainError(ErrCodeItemNotFound, "Item not found in cart")
	ErrEmptyCart       = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrNoPaymentMethod = NewDomainError(ErrCodeNoPaymentMethod, "A payment method must be selected")
	ErrNoSession       = NewDomainError(ErrCodeNoSession, "An active session is required")
	ErrWrongState      = NewDomainError(ErrCodeWrongState, "Operation not allowed in the current checkout state")
	ErrSubmitInFlight  = NewDomainError(ErrCodeSubmitInFlight, "An order submission is already in flight")
)
