package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrExpenseNotFound      = errors.New("operational expense not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrOverpayment          = errors.New("payment exceeds remaining amount")
	ErrValidation           = errors.New("validation failed")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrCodeTenantNotFound       = "TENANT_NOT_FOUND"
	ErrCodeRoomNotFound         = "ROOM_NOT_FOUND"
	ErrCodeNotificationNotFound = "NOTIFICATION_NOT_FOUND"
	ErrCodeExpenseNotFound      = "EXPENSE_NOT_FOUND"
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
	ErrCodeInvalidPaymentAmount = "INVALID_PAYMENT_AMOUNT"
	ErrCodeOverpayment          = "OVERPAYMENT"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeQueueError           = "QUEUE_ERROR"
)

func WrapPaymentNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %d not found", id),
		ErrPaymentNotFound,
	)
}

func WrapTenantNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodeTenantNotFound,
		fmt.Sprintf("Tenant with ID %d not found", id),
		ErrTenantNotFound,
	)
}

func WrapRoomNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomNotFound,
		fmt.Sprintf("Room with ID %d not found", id),
		ErrRoomNotFound,
	)
}

func WrapNotificationNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodeNotificationNotFound,
		fmt.Sprintf("Notification with ID %d not found", id),
		ErrNotificationNotFound,
	)
}

func WrapExpenseNotFound(id int64) *BusinessError {
	return NewBusinessError(
		ErrCodeExpenseNotFound,
		fmt.Sprintf("Operational expense with ID %d not found", id),
		ErrExpenseNotFound,
	)
}

func WrapUserNotFound(email string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("User %s not found", email),
		ErrUserNotFound,
	)
}

func WrapInvalidPaymentAmount(amount decimal.Decimal) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount.StringFixed(2)),
		ErrInvalidPaymentAmount,
	)
}

func WrapOverpayment(amount, remaining decimal.Decimal) *BusinessError {
	return NewBusinessError(
		ErrCodeOverpayment,
		fmt.Sprintf("Payment amount %s exceeds remaining amount %s", amount.StringFixed(2), remaining.StringFixed(2)),
		ErrOverpayment,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		"request validation failed",
		errors.Join(ErrValidation, err),
	)
}

func WrapForbidden(message string) *BusinessError {
	return NewBusinessError(ErrCodeForbidden, message, ErrForbidden)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"email or password is incorrect",
		ErrInvalidCredentials,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapQueueError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeQueueError,
		"queue operation failed",
		err,
	)
}

// HTTPStatus maps an error to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrPaymentNotFound),
		errors.Is(err, ErrTenantNotFound),
		errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrNotificationNotFound),
		errors.Is(err, ErrExpenseNotFound),
		errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPaymentAmount),
		errors.Is(err, ErrOverpayment),
		errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
