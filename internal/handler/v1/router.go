package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vetclinic-service/pkg/metrics"
)

// NewRouter wires the versioned API. Handlers hold no state of their own;
// everything cross-request lives in the cache service and the store.
func NewRouter(
	customers *CustomerHandler,
	doctors *DoctorHandler,
	log *zap.Logger,
	m *metrics.Collector,
	registry *prometheus.Registry,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(log), Metrics(m))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	api := router.Group("/api/v1")
	{
		api.GET("/customers", customers.List)
		api.POST("/customers/:id/appointments", customers.MakeAppointment)
		api.DELETE("/customers/:id/appointments", customers.CancelAppointment)

		api.GET("/doctors", doctors.List)
		api.GET("/doctors/:id/appointments", doctors.ListAppointments)
	}

	return router
}
