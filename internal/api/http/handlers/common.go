// Package handlers 出资方核心的HTTP处理器
package handlers

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"

	"github.com/weisyn/contributor/internal/api/http/middleware"
	apitypes "github.com/weisyn/contributor/internal/api/http/types"
	"github.com/weisyn/contributor/pkg/types"
)

// InboundMessageRequest 入站跨链消息（传输层已完成认证）
type InboundMessageRequest struct {
	EmitterChain   uint16 `json:"emitter_chain"`
	EmitterAddress string `json:"emitter_address" binding:"required"`
	Sequence       uint64 `json:"sequence"`
	Payload        string `json:"payload" binding:"required"` // 0x前缀十六进制
}

// ToMessage 转换为核心消息
func (r *InboundMessageRequest) ToMessage() (*types.InboundMessage, error) {
	addr, err := types.ParseAddress32(r.EmitterAddress)
	if err != nil {
		return nil, badRequest("emitter_address: %v", err)
	}
	payload, err := hexutil.Decode(r.Payload)
	if err != nil {
		return nil, badRequest("payload: %v", err)
	}
	return &types.InboundMessage{
		Provenance: types.Provenance{
			EmitterChain:   types.ChainID(r.EmitterChain),
			EmitterAddress: addr,
			Sequence:       r.Sequence,
		},
		Payload: payload,
	}, nil
}

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", middleware.ErrBadRequest, fmt.Sprintf(format, args...))
}

func saleIDParam(c *gin.Context) (types.SaleID, error) {
	id, err := types.ParseSaleID(c.Param("id"))
	if err != nil {
		return id, badRequest("sale id: %v", err)
	}
	return id, nil
}

func buyerParam(c *gin.Context) (types.Address32, error) {
	addr, err := types.ParseAddress32(c.Param("buyer"))
	if err != nil {
		return addr, badRequest("buyer: %v", err)
	}
	return addr, nil
}

func assetIndexParam(c *gin.Context) (uint8, error) {
	v, err := strconv.ParseUint(c.Param("index"), 10, 8)
	if err != nil {
		return 0, badRequest("asset index: %v", err)
	}
	return uint8(v), nil
}

// parseAmount 解析十进制或0x十六进制金额
func parseAmount(s string) (*uint256.Int, error) {
	if len(s) > 1 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err := uint256.FromHex(s)
		if err != nil {
			return nil, badRequest("amount: %v", err)
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, badRequest("amount: %v", err)
	}
	return v, nil
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, apitypes.NewSuccessResponse(data).WithRequestID(middleware.GetRequestID(c)))
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

