package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DependencyCheck pings an optional dependency such as the Redis cache.
type DependencyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler reports service liveness and dependency status.
type HealthHandler struct {
	db      *gorm.DB
	service string
	checks  []DependencyCheck
}

// NewHealthHandler creates a HealthHandler. The database is always checked.
func NewHealthHandler(db *gorm.DB, service string, checks ...DependencyCheck) *HealthHandler {
	return &HealthHandler{db: db, service: service, checks: checks}
}

// RegisterRoutes registers the health route.
func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := gin.H{"database": "up"}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		deps["database"] = "down"
	}

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			deps[check.Name] = "down"
			continue
		}
		deps[check.Name] = "up"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "unavailable"
	}
	c.JSON(status, gin.H{
		"status":       state,
		"service":      h.service,
		"dependencies": deps,
	})
}
