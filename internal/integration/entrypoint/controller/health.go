// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "branch-ledger-api"

// HealthController reports liveness of the API and its database connection.
type HealthController struct {
	pingDB func() bool
}

type healthStatus struct {
	Service   string `json:"service"`
	Status    string `json:"status"`
	Database  string `json:"database"`
	CheckedAt string `json:"checked_at"`
}

// NewHealthController creates a health controller backed by the given
// database ping function.
func NewHealthController(pingDB func() bool) *HealthController {
	return &HealthController{pingDB: pingDB}
}

// Check handles GET /health. A failing database ping degrades the report
// and switches the response to 503 so load balancers can take the
// instance out of rotation.
func (h *HealthController) Check(c *gin.Context) {
	report := healthStatus{
		Service:   serviceName,
		Status:    "ok",
		Database:  "up",
		CheckedAt: time.Now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK

	if h.pingDB == nil || !h.pingDB() {
		report.Status = "degraded"
		report.Database = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, report)
}
