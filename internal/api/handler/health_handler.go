package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
)

// Probe 依赖探活函数
type Probe func(ctx context.Context) error

// HealthHandler 健康检查
type HealthHandler struct {
	probes  map[string]Probe
	started time.Time
}

// NewHealthHandler 创建 HealthHandler；probes 的 key 为依赖名（database / redis）
func NewHealthHandler(probes map[string]Probe) *HealthHandler {
	return &HealthHandler{probes: probes, started: time.Now()}
}

// Health 任一依赖异常时返回 503
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(h.probes)),
		Uptime: time.Since(h.started).Round(time.Second).String(),
	}
	code := http.StatusOK
	for name, probe := range h.probes {
		if err := probe(ctx); err != nil {
			resp.Checks[name] = "down: " + err.Error()
			resp.Status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	c.JSON(code, resp)
}
