package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/types"
)

// CustodianHandlers 托管方初始化与查询
type CustodianHandlers struct {
	service contributoriface.Service
}

// NewCustodianHandlers 创建托管方处理器
func NewCustodianHandlers(service contributoriface.Service) *CustodianHandlers {
	return &CustodianHandlers{service: service}
}

// RegisterRoutes 注册路由
func (h *CustodianHandlers) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/custodian", h.Initialize)
	r.GET("/custodian", h.Get)
}

type initializeCustodianRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// Initialize POST /v1/custodian
func (h *CustodianHandlers) Initialize(c *gin.Context) {
	var req initializeCustodianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	owner, err := types.ParseAddress32(req.Owner)
	if err != nil {
		fail(c, badRequest("owner: %v", err))
		return
	}
	custodian, err := h.service.InitializeCustodian(c.Request.Context(), owner)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, custodian)
}

// Get GET /v1/custodian
func (h *CustodianHandlers) Get(c *gin.Context) {
	custodian, err := h.service.GetCustodian(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, custodian)
}
