package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apitypes "github.com/weisyn/contributor/internal/api/http/types"
	"github.com/weisyn/contributor/internal/core/contributor/repository"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
)

// HealthHandler 健康检查
//
// 只检查存储是否可读；托管方未初始化不影响健康状态。
type HealthHandler struct {
	store     storage.BadgerStore
	version   string
	startTime time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(store storage.BadgerStore, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version, startTime: time.Now()}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.GetHealth)
}

// GetHealth GET /healthz
func (h *HealthHandler) GetHealth(c *gin.Context) {
	resp := apitypes.HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		Uptime:     time.Since(h.startTime).Truncate(time.Second).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: map[string]string{"storage": "ok"},
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if _, err := h.store.Exists(ctx, repository.CustodianKey()); err != nil {
			resp.Status = "unhealthy"
			resp.Components["storage"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}
