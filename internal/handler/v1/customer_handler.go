package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/service"
)

type CustomerHandler struct {
	customers *service.CustomerService
}

func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, err := h.customers.ListCustomers(c.Request.Context(), parsePageRequest(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, page)
}

func (h *CustomerHandler) MakeAppointment(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req appointment.Request
	if !bindJSON(c, &req) {
		return
	}
	if !validAppointmentRequest(c, req, true) {
		return
	}

	created, err := h.customers.MakeAppointment(c.Request.Context(), req, customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created)
}

func (h *CustomerHandler) CancelAppointment(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req appointment.Request
	if !bindJSON(c, &req) {
		return
	}
	if !validAppointmentRequest(c, req, false) {
		return
	}

	if err := h.customers.CancelAppointment(c.Request.Context(), req, customerID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// validAppointmentRequest enforces the boundary invariants: a 4-digit PIN,
// a present date, and (for booking) a target doctor.
func validAppointmentRequest(c *gin.Context, req appointment.Request, needDoctor bool) bool {
	var problems []string
	if req.CustomerPIN < 1000 || req.CustomerPIN > 9999 {
		problems = append(problems, "customerPin must be a 4-digit number")
	}
	if req.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if needDoctor && req.DoctorID <= 0 {
		problems = append(problems, "doctorId is required")
	}
	if len(problems) > 0 {
		respondError(c, http.StatusBadRequest, strings.Join(problems, "; "))
		return false
	}
	return true
}
