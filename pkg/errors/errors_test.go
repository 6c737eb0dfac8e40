package errors

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"payment not found", WrapPaymentNotFound(7), http.StatusNotFound},
		{"notification not found", WrapNotificationNotFound(3), http.StatusNotFound},
		{"invalid amount", WrapInvalidPaymentAmount(decimal.NewFromInt(-5)), http.StatusBadRequest},
		{"overpayment", WrapOverpayment(decimal.NewFromInt(10), decimal.NewFromInt(5)), http.StatusBadRequest},
		{"validation", WrapValidation(errors.New("amount is required")), http.StatusBadRequest},
		{"forbidden", WrapForbidden("not your notification"), http.StatusForbidden},
		{"credentials", WrapInvalidCredentials(), http.StatusUnauthorized},
		{"database", WrapDatabaseError(sql.ErrConnDone), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestBusinessError_Unwrap(t *testing.T) {
	err := WrapDatabaseError(sql.ErrNoRows)

	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.Equal(t, "DATABASE_ERROR: database operation failed (sql: no rows in result set)", err.Error())

	var be *BusinessError
	assert.True(t, errors.As(err, &be))
	assert.Equal(t, ErrCodeDatabaseError, be.Code)
}

func TestWrapInvalidPaymentAmount_Message(t *testing.T) {
	err := WrapInvalidPaymentAmount(decimal.Zero)
	assert.Equal(t, "Invalid payment amount: 0.00", err.Message)
}
