package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/apiclient"
	"frontdesk/internal/repository"
	"frontdesk/internal/service"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err == nil && id <= 0 {
		return 0, service.ErrInvalidInput
	}
	return id, err
}

func mapErrorToStatus(err error) int {
	var apiErr *apiclient.Error
	switch {
	case service.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNoTable):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		// client errors from the server pass through, the rest is a bad gateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the text shown in a toast or a JSON error.
func userMessage(err error) string {
	var apiErr *apiclient.Error
	switch {
	case service.IsValidation(err):
		return service.Describe(err)
	case errors.Is(err, repository.ErrNotFound):
		return "not found, the page may be out of date"
	case errors.Is(err, service.ErrEmptyCart):
		return "your cart is empty"
	case errors.Is(err, service.ErrNoTable):
		return "choose your table first"
	case errors.As(err, &apiErr):
		return "server: " + apiErr.Message
	}
	return err.Error()
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(mapErrorToStatus(err), gin.H{"error": userMessage(err)})
}
