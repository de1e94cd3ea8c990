package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/taskhub/task-system/internal/errors"
	"github.com/taskhub/task-system/internal/services"
)

// DashboardHandler serves the index page counters.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Index returns the dashboard counts: workers, tasks, completed tasks,
// task types and positions.
func (h *DashboardHandler) Index(c *gin.Context) {
	counts, err := h.dashboardService.Counts()
	if err != nil {
		apierrors.InternalError(c, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, counts)
}
