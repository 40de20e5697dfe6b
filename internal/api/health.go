package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints.
//
//   - /healthz: always 200 while the process serves requests.
//   - /readyz: 200 when the database answers a ping, 503 otherwise. The cache
//     state is reported but never fails readiness, since snapshots are
//     rebuilt from the providers when Redis is down.
type HealthHandler struct {
	dbPing       func() error
	cacheEnabled func() bool
}

// NewHealthHandler builds a HealthHandler. Either function may be nil.
func NewHealthHandler(dbPing func() error, cacheEnabled func() bool) *HealthHandler {
	return &HealthHandler{dbPing: dbPing, cacheEnabled: cacheEnabled}
}

// Register mounts /healthz and /readyz on r.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness check
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// @Summary      Readiness check
	// @Description  Ready when Postgres is reachable; reports whether the Redis cache is active
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		body := gin.H{"status": "ready", "database": "up", "cache": h.cacheState()}
		if h.dbPing != nil && h.dbPing() != nil {
			body["status"] = "degraded"
			body["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	})
}

func (h *HealthHandler) cacheState() string {
	if h.cacheEnabled != nil && h.cacheEnabled() {
		return "enabled"
	}
	return "disabled"
}
