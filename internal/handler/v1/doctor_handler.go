package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/service"
)

type DoctorHandler struct {
	doctors *service.DoctorService
}

func NewDoctorHandler(doctors *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

func (h *DoctorHandler) List(c *gin.Context) {
	page, err := h.doctors.ListDoctors(c.Request.Context(), parsePageRequest(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, page)
}

func (h *DoctorHandler) ListAppointments(c *gin.Context) {
	doctorID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var date *domain.Date
	if raw := c.Query("date"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		date = &parsed
	}

	page, err := h.doctors.ListDoctorAppointments(c.Request.Context(), doctorID, date, parsePageRequest(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, page)
}
