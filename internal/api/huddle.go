package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"huddle/internal/huddle"
	"huddle/internal/models"
	"huddle/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// HuddleAPI represents the HTTP surface of the morning huddle
type HuddleAPI struct {
	Router  *gin.Engine
	Service *huddle.Service
	Metrics *monitoring.MetricsCollector
	Monitor *monitoring.Monitor
}

// NewHuddleAPI creates a new huddle API instance
func NewHuddleAPI(service *huddle.Service, metrics *monitoring.MetricsCollector, monitor *monitoring.Monitor) *HuddleAPI {
	router := gin.New()
	router.Use(RequestID(), Logger(), gin.Recovery())

	api := &HuddleAPI{
		Router:  router,
		Service: service,
		Metrics: metrics,
		Monitor: monitor,
	}

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (h *HuddleAPI) setupRoutes() {
	h.Router.GET("/", h.Root)
	h.Router.GET("/health", h.Health)
	h.Router.GET("/huddle/:date", h.GetHuddle)
}

// Root returns the API banner
func (h *HuddleAPI) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Kitchen Morning Huddle API"})
}

// Health returns uptime and the last huddle snapshot
func (h *HuddleAPI) Health(c *gin.Context) {
	status := h.Monitor.GetMetrics()
	status["status"] = "ok"
	c.JSON(http.StatusOK, status)
}

// GetHuddle serves the huddle report for the date in the path
func (h *HuddleAPI) GetHuddle(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		h.Metrics.RecordOutcome(monitoring.OutcomeBadDate)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	start := time.Now()
	resp, err := h.Service.Build(c.Request.Context(), date)
	if err != nil {
		outcome := monitoring.OutcomeServerError
		var huddleErr *huddle.Error
		if errors.As(err, &huddleErr) && huddleErr.Kind == huddle.KindLoad {
			outcome = monitoring.OutcomeLoadError
		}
		h.Metrics.RecordOutcome(outcome)
		h.Monitor.RecordFailure(err)

		log.Printf("[huddle] %s request_id=%s date=%s: %v", outcome, RequestIDFromContext(c), date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	h.Metrics.RecordHuddle(resp, time.Since(start))
	h.Monitor.RecordHuddle(resp)

	c.JSON(http.StatusOK, resp)
}
