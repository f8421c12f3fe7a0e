package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sapdoc/services/scheduling"
	"sapdoc/utils"
)

// retryAfterSeconds is advertised when the booking store is unreachable.
const retryAfterSeconds = "5"

// Error kinds raised by handlers themselves rather than the scheduling service.
const (
	kindUnavailable = "unavailable" // feature not enabled in this deployment
	kindUpstream    = "upstream"    // an external recognizer or model failed
)

func statusFor(kind scheduling.Kind) int {
	switch kind {
	case scheduling.KindValidation, scheduling.KindConflict, scheduling.KindInvalidSlotID, scheduling.KindInvalidRange:
		return http.StatusBadRequest
	case scheduling.KindNotFound:
		return http.StatusNotFound
	case scheduling.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error to its status and the standard error body.
func respondError(c *gin.Context, err error) {
	kind := scheduling.KindOf(err)
	status := statusFor(kind)
	message := err.Error()

	switch status {
	case http.StatusServiceUnavailable:
		getLogger(c).Warn("Booking store unavailable", zap.Error(err))
		c.Header("Retry-After", retryAfterSeconds)
		message = "The booking store is temporarily unavailable. Please retry shortly."
	case http.StatusInternalServerError:
		getLogger(c).Error("Unexpected error", zap.Error(err))
		message = "An unexpected error occurred. Please try again later."
	}
	_ = c.Error(err)
	utils.JSONError(c, status, string(kind), message)
}
