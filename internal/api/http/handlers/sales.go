package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"

	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/types"
)

// SaleHandlers 销售生命周期相关的处理器
type SaleHandlers struct {
	service contributoriface.Service
}

// NewSaleHandlers 创建销售处理器
func NewSaleHandlers(service contributoriface.Service) *SaleHandlers {
	return &SaleHandlers{service: service}
}

// RegisterRoutes 注册路由
//
//	POST /sales                                  登记销售（SaleInit）
//	POST /sales/seal                             应用封存消息
//	POST /sales/abort                            应用中止消息
//	GET  /sales/:id                              查询销售
//	POST /sales/:id/contributions                出资
//	POST /sales/:id/attestations                 上报出资汇总
//	GET  /sales/:id/buyers                       出资人列表
//	GET  /sales/:id/buyers/:buyer                查询出资人
//	POST /sales/:id/buyers/:buyer/claim          结算
//	POST /sales/:id/assets/:index/sweep          归集出资
func (h *SaleHandlers) RegisterRoutes(r *gin.RouterGroup) {
	sales := r.Group("/sales")
	sales.POST("", h.InitializeSale)
	sales.POST("/seal", h.ApplySeal)
	sales.POST("/abort", h.ApplyAbort)
	sales.GET("/:id", h.GetSale)
	sales.POST("/:id/contributions", h.Contribute)
	sales.POST("/:id/attestations", h.ReportAttestation)
	sales.GET("/:id/buyers", h.ListBuyers)
	sales.GET("/:id/buyers/:buyer", h.GetBuyer)
	sales.POST("/:id/buyers/:buyer/claim", h.Claim)
	sales.POST("/:id/assets/:index/sweep", h.Sweep)
}

func bindInbound(c *gin.Context) (*types.InboundMessage, bool) {
	var req InboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("%v", err))
		return nil, false
	}
	msg, err := req.ToMessage()
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return msg, true
}

// InitializeSale POST /v1/sales
func (h *SaleHandlers) InitializeSale(c *gin.Context) {
	msg, ok := bindInbound(c)
	if !ok {
		return
	}
	sale, err := h.service.InitializeSale(c.Request.Context(), msg)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, sale)
}

// ApplySeal POST /v1/sales/seal
func (h *SaleHandlers) ApplySeal(c *gin.Context) {
	msg, ok := bindInbound(c)
	if !ok {
		return
	}
	sale, err := h.service.ApplySeal(c.Request.Context(), msg)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

// ApplyAbort POST /v1/sales/abort
func (h *SaleHandlers) ApplyAbort(c *gin.Context) {
	msg, ok := bindInbound(c)
	if !ok {
		return
	}
	sale, err := h.service.ApplyAbort(c.Request.Context(), msg)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

// GetSale GET /v1/sales/:id
func (h *SaleHandlers) GetSale(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	sale, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

// ContributeRequest 出资请求体
type ContributeRequest struct {
	Buyer        string `json:"buyer" binding:"required"`
	AssetIndex   uint8  `json:"asset_index"`
	Amount       string `json:"amount" binding:"required"` // 十进制或0x十六进制
	KycSignature string `json:"kyc_signature,omitempty"`   // 65字节，0x十六进制
}

// Contribute POST /v1/sales/:id/contributions
func (h *SaleHandlers) Contribute(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var body ContributeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, badRequest("%v", err))
		return
	}
	buyer, err := types.ParseAddress32(body.Buyer)
	if err != nil {
		fail(c, badRequest("buyer: %v", err))
		return
	}
	amount, err := parseAmount(body.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	var sig []byte
	if body.KycSignature != "" {
		if sig, err = hexutil.Decode(body.KycSignature); err != nil {
			fail(c, badRequest("kyc_signature: %v", err))
			return
		}
	}

	record, err := h.service.Contribute(c.Request.Context(), &contributoriface.ContributeRequest{
		SaleID:       id,
		Buyer:        buyer,
		AssetIndex:   body.AssetIndex,
		Amount:       amount,
		KycSignature: sig,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, record)
}

// ReportAttestation POST /v1/sales/:id/attestations
func (h *SaleHandlers) ReportAttestation(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	msg, err := h.service.ReportAttestation(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusAccepted, gin.H{
		"sale_id":    msg.SaleID,
		"payload_id": msg.PayloadID.String(),
		"payload":    hexutil.Encode(msg.Payload),
		"sequence":   msg.Sequence,
	})
}

// ListBuyers GET /v1/sales/:id/buyers
func (h *SaleHandlers) ListBuyers(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	buyers, err := h.service.ListBuyers(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, buyers)
}

// GetBuyer GET /v1/sales/:id/buyers/:buyer
func (h *SaleHandlers) GetBuyer(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	owner, err := buyerParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	buyer, err := h.service.GetBuyer(c.Request.Context(), id, owner)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, buyer)
}

// Claim POST /v1/sales/:id/buyers/:buyer/claim
//
// 金库划转失败时结算已记录，错误照常返回，指令可通过事件总线获取。
func (h *SaleHandlers) Claim(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	owner, err := buyerParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	instruction, err := h.service.Claim(c.Request.Context(), id, owner)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, instruction)
}

// Sweep POST /v1/sales/:id/assets/:index/sweep
func (h *SaleHandlers) Sweep(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	index, err := assetIndexParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	transfer, err := h.service.SweepContributions(c.Request.Context(), id, index)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, transfer)
}
