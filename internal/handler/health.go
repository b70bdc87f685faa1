package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/riaz37/job-finder-sub001/internal/model"
)

type HealthHandler struct {
	pool *pgxpool.Pool
	rdb  redis.UniversalClient
}

func NewHealthHandler(pool *pgxpool.Pool, rdb redis.UniversalClient) *HealthHandler {
	return &HealthHandler{pool: pool, rdb: rdb}
}

// Root godoc
// @Summary Service banner
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "job finder api",
	})
}

// Ping godoc
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /docs [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// Health godoc
// @Summary Readiness probe
// @Description Reports per-dependency status; degraded dependencies do
// not fail the endpoint.
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := model.HealthResponse{Status: "ok", Database: "ok", Redis: "ok"}

	if h.pool == nil {
		resp.Database = "not configured"
	} else if err := h.pool.Ping(c.Request.Context()); err != nil {
		resp.Database = "unreachable"
		resp.Status = "degraded"
	}

	if h.rdb == nil {
		resp.Redis = "not configured"
	} else if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
		resp.Redis = "unreachable"
		resp.Status = "degraded"
	}

	c.JSON(http.StatusOK, resp)
}
