package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles GET /health, the liveness check.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check pings one dependency.
type Check func(ctx context.Context) error

// SchemaState reports the progress of the schema bootstrap.
type SchemaState interface {
	Ready() bool
	Err() error
}

// PostgresCheck pings the relational datastore.
func PostgresCheck(db *sqlx.DB) Check {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

// MongoCheck pings MongoDB and runs a command against the audit database.
func MongoCheck(db *mongo.Database) Check {
	return func(ctx context.Context) error {
		if err := db.Client().Ping(ctx, nil); err != nil {
			return err
		}
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

// RedisCheck pings the article cache.
func RedisCheck(rdb *redis.Client) Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

// HealthDependenciesHandler handles GET /health/ready, the readiness check.
// The service is ready once the schema bootstrap has completed and every
// dependency answers. Failure detail goes to the log, never the response.
type HealthDependenciesHandler struct {
	schema SchemaState
	checks map[string]Check
	log    zerolog.Logger
}

func NewHealthDependenciesHandler(schema SchemaState, checks map[string]Check, log zerolog.Logger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{schema: schema, checks: checks, log: log}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks)+1)
	healthy := true

	// --- Schema bootstrap ---
	switch {
	case h.schema.Ready():
		deps["migrations"] = dependencyStatus{Status: "ok"}
	case h.schema.Err() != nil:
		h.log.Error().Err(h.schema.Err()).Str("dependency", "migrations").Msg("readiness check failed")
		deps["migrations"] = dependencyStatus{Status: "failed"}
		healthy = false
	default:
		deps["migrations"] = dependencyStatus{Status: "pending"}
		healthy = false
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			deps[name] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
