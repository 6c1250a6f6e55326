package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/domain/customer"
	"vetclinic-service/internal/domain/doctor"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondServiceError maps domain errors onto HTTP statuses:
// not-found → 404, invalid PIN → 400, unavailable date → 409,
// removal failure and anything unexpected → 500. Messages are surfaced
// verbatim; they are written for end users.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, doctor.ErrTimingDetailsNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, customer.ErrInvalidPIN):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrDateUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrRemovalFailed):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid "+param+": must be a positive integer")
		return 0, false
	}
	return id, true
}

func parsePageRequest(c *gin.Context) domain.PageRequest {
	return domain.PageRequest{
		Page: parseQueryInt(c, "page", 0),
		Size: parseQueryInt(c, "size", 20),
		Sort: c.Query("sort"),
	}.Normalize()
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return defaultVal
}
