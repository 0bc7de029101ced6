package orderhttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mundipagg/gateway-core/internal/domain/order"
	"github.com/mundipagg/gateway-core/internal/model"
	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
)

// handleError maps order domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode, model.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	var statusCode int
	var errorCode string
	var message string

	switch {
	case errors.Is(err, order.ErrPlatformOrderNotFound), errors.Is(err, order.ErrOrderNotFound):
		statusCode = http.StatusNotFound
		errorCode = "order_not_found"
		message = "Order not found"

	case errors.Is(err, order.ErrChargesNotCanceled):
		statusCode = http.StatusConflict
		errorCode = "charges_not_canceled"
		message = err.Error()

	case errors.Is(err, order.ErrPaymentSumMismatch):
		statusCode = http.StatusBadRequest
		errorCode = "payment_sum_mismatch"
		message = "The sum of payments is different than the order amount!"

	case errors.Is(err, order.ErrRecurrenceConflict):
		statusCode = http.StatusBadRequest
		errorCode = "recurrence_conflict"
		message = err.Error()

	case errors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		errorCode = "gateway_unavailable"
		message = "Payment gateway temporarily unavailable"

	case errors.Is(err, apperrors.ErrGateway):
		statusCode = http.StatusBadGateway
		errorCode = "gateway_error"
		message = err.Error()

	default:
		statusCode = http.StatusInternalServerError
		errorCode = "internal_error"
		message = "Internal server error"
	}

	c.JSON(statusCode, model.ErrorResponse{
		Code:    errorCode,
		Message: message,
	})
}
