package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger is satisfied by *database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is one named dependency probe reported by /health.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// DatabaseCheck probes the database connection. A nil pinger is reported
// as not configured instead of failing.
func DatabaseCheck(db Pinger) HealthCheck {
	return HealthCheck{Name: "database", Probe: func(ctx context.Context) error {
		if db == nil {
			return errNotConfigured
		}
		return db.Ping(ctx)
	}}
}

var errNotConfigured = errors.New("not configured")

type HealthController struct {
	checks  []HealthCheck
	version string
	started time.Time
}

func NewHealthController(version string, checks ...HealthCheck) *HealthController {
	return &HealthController{
		checks:  checks,
		version: version,
		started: time.Now(),
	}
}

// Status runs every check and answers 503 if any of them failed.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	status := "healthy"
	for _, check := range h.checks {
		err := check.Probe(ctx)
		switch {
		case err == nil:
			results[check.Name] = "ok"
		case errors.Is(err, errNotConfigured):
			results[check.Name] = err.Error()
		default:
			results[check.Name] = "error: " + err.Error()
			status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Version: h.version,
		Checks:  results,
	})
}

// Ping is a liveness probe that touches nothing.
// GET /ping
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
