package codec

import (
	"github.com/weisyn/contributor/pkg/types"
)

// SaleSealed 销售封存载荷
type SaleSealed struct {
	ID types.SaleID
}

// PayloadID 实现 Message
func (m *SaleSealed) PayloadID() types.PayloadID { return types.PayloadSaleSealed }

// SaleID 实现 Message
func (m *SaleSealed) SaleID() types.SaleID { return m.ID }

// DecodeSaleSealed 解码封存载荷
// 指挥链可能在销售ID之后附带分配数据，出资方按本地出资计算分配，忽略尾部
func DecodeSaleSealed(payload []byte) (*SaleSealed, error) {
	if len(payload) < headerSize {
		return nil, types.ErrMalformedPayload.WithDetail("封存载荷长度%d不足", len(payload))
	}
	if types.PayloadID(payload[0]) != types.PayloadSaleSealed {
		return nil, types.ErrMalformedPayload.WithDetail("载荷类型%d不是SaleSealed", payload[0])
	}
	r := &reader{buf: payload, off: tagSize}
	return &SaleSealed{ID: r.saleID()}, nil
}

// Encode 编码封存载荷
func (m *SaleSealed) Encode() []byte {
	w := newWriter(headerSize)
	w.u8(uint8(types.PayloadSaleSealed))
	w.saleID(m.ID)
	return w.buf
}

// SaleAborted 销售中止载荷
type SaleAborted struct {
	ID types.SaleID
}

// PayloadID 实现 Message
func (m *SaleAborted) PayloadID() types.PayloadID { return types.PayloadSaleAborted }

// SaleID 实现 Message
func (m *SaleAborted) SaleID() types.SaleID { return m.ID }

// DecodeSaleAborted 解码中止载荷，长度必须精确
func DecodeSaleAborted(payload []byte) (*SaleAborted, error) {
	if len(payload) != headerSize {
		return nil, types.ErrMalformedPayload.WithDetail("中止载荷长度应为%d，实际%d", headerSize, len(payload))
	}
	if types.PayloadID(payload[0]) != types.PayloadSaleAborted {
		return nil, types.ErrMalformedPayload.WithDetail("载荷类型%d不是SaleAborted", payload[0])
	}
	r := &reader{buf: payload, off: tagSize}
	return &SaleAborted{ID: r.saleID()}, nil
}

// Encode 编码中止载荷
func (m *SaleAborted) Encode() []byte {
	w := newWriter(headerSize)
	w.u8(uint8(types.PayloadSaleAborted))
	w.saleID(m.ID)
	return w.buf
}
