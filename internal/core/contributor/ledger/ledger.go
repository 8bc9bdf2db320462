// Package ledger 出资记账
//
// 只负责出资人记录的会计变更，不移动代币：代币划转由外部金库在同一个
// 原子操作中先行完成，记账是最后一步。
package ledger

import (
	"github.com/holiman/uint256"
	"github.com/weisyn/contributor/pkg/types"
)

// NewBuyer 创建空的出资记录
func NewBuyer(saleID types.SaleID, owner types.Address32, assetCount int) *types.Buyer {
	contributions := make([]*uint256.Int, assetCount)
	for i := range contributions {
		contributions[i] = new(uint256.Int)
	}
	return &types.Buyer{
		SaleID:        saleID,
		Owner:         owner,
		Contributions: contributions,
	}
}

// Add 在出资记录上累加一笔出资，返回新的记录，入参不被修改
//
// buyer 为nil时按需创建。
func Add(buyer *types.Buyer, saleID types.SaleID, owner types.Address32, assetCount int, assetIndex uint8, amount *uint256.Int) (*types.Buyer, error) {
	if amount == nil || amount.IsZero() {
		return nil, types.ErrZeroContribution
	}
	if int(assetIndex) >= assetCount {
		return nil, types.ErrUnsupportedAsset.WithDetail("资产下标%d超出范围", assetIndex)
	}

	var next *types.Buyer
	if buyer == nil {
		next = NewBuyer(saleID, owner, assetCount)
	} else {
		next = buyer.Clone()
		// 旧记录的资产槽位可能不足
		for len(next.Contributions) < assetCount {
			next.Contributions = append(next.Contributions, new(uint256.Int))
		}
	}

	sum, overflow := new(uint256.Int).AddOverflow(next.Contribution(assetIndex), amount)
	if overflow {
		return nil, types.ErrAmountOverflow
	}
	next.Contributions[assetIndex] = sum
	return next, nil
}
