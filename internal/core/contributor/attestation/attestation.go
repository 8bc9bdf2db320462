// Package attestation 出资汇总
//
// 汇总是开放期间任意时刻的快照：可以反复生成，不修改销售状态。
// 指挥方按自身的序号跟踪只采用最新的一份。
package attestation

import (
	"github.com/weisyn/contributor/internal/core/contributor/codec"
	"github.com/weisyn/contributor/internal/core/contributor/custodian"
	"github.com/weisyn/contributor/pkg/types"
)

// Build 生成本链各资产当前累计出资的出站消息
func Build(sale *types.Sale, ctx custodian.Context) (*types.OutboundMessage, error) {
	if sale.Status != types.SaleStatusOpen {
		return nil, types.ErrSaleNotOpen.WithDetail("状态=%s", sale.Status)
	}

	msg := &codec.ContributionsAttested{
		ID:      sale.ID,
		ChainID: ctx.LocalChain,
	}
	for i, a := range sale.AcceptedAssets {
		if !ctx.IsLocal(a.Asset) {
			continue
		}
		entry := codec.AttestedEntry{AssetIndex: uint8(i)}
		if i < len(sale.Totals) && sale.Totals[i] != nil {
			entry.Amount = sale.Totals[i].Clone()
		}
		msg.Entries = append(msg.Entries, entry)
	}

	payload, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	return &types.OutboundMessage{
		SaleID:    sale.ID,
		PayloadID: types.PayloadContributionsAttested,
		Payload:   payload,
	}, nil
}
