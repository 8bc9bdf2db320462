// Package codec 跨链载荷编解码
//
// 📦 四种载荷均为大端定长布局，首字节为类型标签，紧随其后的32字节为销售ID：
//
//	1 SaleInit               销售条款
//	2 ContributionsAttested  本链各资产的出资汇总（出站）
//	3 SaleSealed             销售封存（尾部的分配数据忽略）
//	4 SaleAborted            销售中止
package codec

import (
	"github.com/weisyn/contributor/pkg/types"
)

const (
	tagSize    = 1
	saleIDSize = 32
	chainSize  = 2
	u128Size   = 16
	u256Size   = 32
	addrSize   = 32
	kycSize    = 20

	// headerSize 标签 + 销售ID
	headerSize = tagSize + saleIDSize

	// saleInitFixedSize 不含资产列表的初始化载荷长度
	saleInitFixedSize = headerSize +
		addrSize + chainSize + // 销售代币
		u256Size + 1 + // tokenAmount, tokenDecimals
		u256Size + u256Size + // minRaise, maxRaise
		u256Size + u256Size + // saleStart, saleEnd
		1 + 1 + // rateDecimals, 资产数
		addrSize + addrSize + kycSize // recipient, refundRecipient, kycAuthority

	// initAssetSize 单个可接受资产的编码长度
	initAssetSize = addrSize + chainSize + u128Size + u256Size

	// attestedEntrySize 单条出资汇总的编码长度
	attestedEntrySize = 1 + u256Size
)

// Message 解码后的载荷
type Message interface {
	PayloadID() types.PayloadID
	SaleID() types.SaleID
}

// PeekPayloadID 读取载荷类型标签
func PeekPayloadID(payload []byte) (types.PayloadID, error) {
	if len(payload) < tagSize {
		return 0, types.ErrMalformedPayload.WithDetail("载荷为空")
	}
	return types.PayloadID(payload[0]), nil
}

// PeekSaleID 读取偏移1处的销售ID
func PeekSaleID(payload []byte) (types.SaleID, error) {
	var id types.SaleID
	if len(payload) < headerSize {
		return id, types.ErrMalformedPayload.WithDetail("载荷长度%d不足以包含销售ID", len(payload))
	}
	copy(id[:], payload[tagSize:headerSize])
	return id, nil
}

// Decode 按类型标签解码载荷
func Decode(payload []byte) (Message, error) {
	id, err := PeekPayloadID(payload)
	if err != nil {
		return nil, err
	}
	switch id {
	case types.PayloadSaleInit:
		return DecodeSaleInit(payload)
	case types.PayloadContributionsAttested:
		return DecodeContributionsAttested(payload)
	case types.PayloadSaleSealed:
		return DecodeSaleSealed(payload)
	case types.PayloadSaleAborted:
		return DecodeSaleAborted(payload)
	default:
		return nil, types.ErrMalformedPayload.WithDetail("未知的载荷类型: %d", id)
	}
}

// Encode 编码载荷
func Encode(msg Message) ([]byte, error) {
	switch m := msg.(type) {
	case *SaleInit:
		return m.Encode()
	case *ContributionsAttested:
		return m.Encode()
	case *SaleSealed:
		return m.Encode(), nil
	case *SaleAborted:
		return m.Encode(), nil
	default:
		return nil, types.ErrMalformedPayload.WithDetail("不支持编码的消息类型: %T", msg)
	}
}
