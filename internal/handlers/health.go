package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// HealthChecker is satisfied by *services.SlackClient.
type HealthChecker interface {
	AuthTest(ctx context.Context) error
}

type HealthHandler struct {
	slack HealthChecker
}

func NewHealthHandler(slack HealthChecker) *HealthHandler {
	return &HealthHandler{slack: slack}
}

// HealthCheck reports the upstream token as healthy or degraded. The relay
// itself is up if it can answer, so the status code stays 200.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	if err := h.slack.AuthTest(ctx); err == nil {
		checks["slack"] = "healthy"
	} else {
		checks["slack"] = "degraded"
	}

	overallStatus := "healthy"
	for _, status := range checks {
		if status != "healthy" {
			overallStatus = "degraded"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    overallStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
		"version":   Version,
	})
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Slack API Integration Server is running",
	})
}
