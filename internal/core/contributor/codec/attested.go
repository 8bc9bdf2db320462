package codec

import (
	"github.com/holiman/uint256"
	"github.com/weisyn/contributor/pkg/types"
)

// AttestedEntry 单个资产的出资汇总
type AttestedEntry struct {
	AssetIndex uint8
	Amount     *uint256.Int
}

// ContributionsAttested 出资汇总载荷，由出资方发往指挥链
type ContributionsAttested struct {
	ID      types.SaleID
	ChainID types.ChainID
	Entries []AttestedEntry
}

// PayloadID 实现 Message
func (m *ContributionsAttested) PayloadID() types.PayloadID {
	return types.PayloadContributionsAttested
}

// SaleID 实现 Message
func (m *ContributionsAttested) SaleID() types.SaleID { return m.ID }

// DecodeContributionsAttested 解码出资汇总载荷
func DecodeContributionsAttested(payload []byte) (*ContributionsAttested, error) {
	const fixed = headerSize + chainSize + 1
	if len(payload) < fixed {
		return nil, types.ErrMalformedPayload.WithDetail("汇总载荷长度%d不足", len(payload))
	}
	if types.PayloadID(payload[0]) != types.PayloadContributionsAttested {
		return nil, types.ErrMalformedPayload.WithDetail("载荷类型%d不是ContributionsAttested", payload[0])
	}

	r := &reader{buf: payload, off: tagSize}
	m := &ContributionsAttested{}
	m.ID = r.saleID()
	m.ChainID = r.chain()
	n := int(r.u8())
	if expected := fixed + n*attestedEntrySize; len(payload) != expected {
		return nil, types.ErrMalformedPayload.WithDetail("汇总载荷长度%d与%d条记录不符", len(payload), n)
	}

	m.Entries = make([]AttestedEntry, n)
	for i := range m.Entries {
		m.Entries[i].AssetIndex = r.u8()
		m.Entries[i].Amount = r.u256()
	}
	return m, nil
}

// Encode 编码出资汇总载荷
func (m *ContributionsAttested) Encode() ([]byte, error) {
	if len(m.Entries) > 255 {
		return nil, types.ErrMalformedPayload.WithDetail("汇总记录数%d超过255", len(m.Entries))
	}
	w := newWriter(headerSize + chainSize + 1 + len(m.Entries)*attestedEntrySize)
	w.u8(uint8(types.PayloadContributionsAttested))
	w.saleID(m.ID)
	w.chain(m.ChainID)
	w.u8(uint8(len(m.Entries)))
	for _, e := range m.Entries {
		w.u8(e.AssetIndex)
		w.u256(e.Amount)
	}
	return w.buf, nil
}
