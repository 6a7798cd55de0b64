package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/publishing-house/internal/config"
	"github.com/localnerve/publishing-house/internal/logger"
	"github.com/localnerve/publishing-house/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck checks the database answers a ping
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB) HealthCheckResult {
	log := logger.FromContext(ctx)
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	if err := utils.PingDatabase(ctx, db, 1500*time.Millisecond); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database check failed: %v", err)
		log.WithError(err).Warn("health check failed")
		return result
	}

	result.Database = "ok"
	if cfg != nil {
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.Database()
	}
	log.Debug("health check passed")
	return result
}
