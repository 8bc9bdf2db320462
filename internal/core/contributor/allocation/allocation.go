// Package allocation 结算计算
//
// 销售封存后按固定兑换率计算每个出资人的销售代币分配，中止后原样退还出资。
// 分配额对每个出资人先求和再做一次除法（先乘后除），因此所有出资人的分配之和
// 不会超过总出资按兑换率折算的代币量。
package allocation

import (
	"github.com/holiman/uint256"
	"github.com/weisyn/contributor/pkg/types"
)

// RateDenominator 计算 10^decimals，超出256位时返回 ErrAmountOverflow
func RateDenominator(decimals uint8) (*uint256.Int, error) {
	ten := uint256.NewInt(10)
	d := uint256.NewInt(1)
	for i := uint8(0); i < decimals; i++ {
		var overflow bool
		d, overflow = new(uint256.Int).MulOverflow(d, ten)
		if overflow {
			return nil, types.ErrAmountOverflow.WithDetail("10^%d", decimals)
		}
	}
	return d, nil
}

// Convert 计算 floor(Σ amounts[i] × rates[i] / 10^decimals)
func Convert(amounts, rates []*uint256.Int, decimals uint8) (*uint256.Int, error) {
	denominator, err := RateDenominator(decimals)
	if err != nil {
		return nil, err
	}

	numerator := new(uint256.Int)
	for i, amount := range amounts {
		if amount == nil || amount.IsZero() || i >= len(rates) || rates[i] == nil {
			continue
		}
		product, overflow := new(uint256.Int).MulOverflow(amount, rates[i])
		if overflow {
			return nil, types.ErrAmountOverflow
		}
		if _, overflow = numerator.AddOverflow(numerator, product); overflow {
			return nil, types.ErrAmountOverflow
		}
	}
	return numerator.Div(numerator, denominator), nil
}

// SaleRates 按资产下标返回兑换率
func SaleRates(sale *types.Sale) []*uint256.Int {
	rates := make([]*uint256.Int, len(sale.AcceptedAssets))
	for i := range sale.AcceptedAssets {
		rates[i] = sale.AcceptedAssets[i].ConversionRate
	}
	return rates
}

// Settle 计算出资人的结算指令
//
// 返回已置位 Claimed 的新出资记录，调用方必须先提交该记录再执行转账，
// 转账失败由金库处理，不得回退 Claimed。
func Settle(sale *types.Sale, buyer *types.Buyer, custody types.Address32) (*types.Buyer, *types.SettlementInstruction, error) {
	switch sale.Status {
	case types.SaleStatusSealed, types.SaleStatusAborted:
	case types.SaleStatusOpen:
		return nil, nil, types.ErrSaleStillOpen
	default:
		return nil, nil, types.ErrSaleNotFound
	}
	if buyer == nil {
		return nil, nil, types.ErrBuyerNotFound
	}
	if buyer.Claimed {
		return nil, nil, types.ErrAlreadyClaimed
	}

	claimed := buyer.Clone()
	claimed.Claimed = true

	instruction := &types.SettlementInstruction{
		SaleID:    sale.ID,
		Buyer:     buyer.Owner,
		Transfers: []types.TransferInstruction{},
	}

	if sale.Status == types.SaleStatusAborted {
		instruction.Kind = types.SettlementRefund
		for i := range sale.AcceptedAssets {
			amount := buyer.Contribution(uint8(i))
			if amount.IsZero() {
				continue
			}
			instruction.Transfers = append(instruction.Transfers, types.TransferInstruction{
				Asset:  sale.AcceptedAssets[i].Asset,
				From:   custody,
				To:     buyer.Owner,
				Amount: amount,
			})
		}
		return claimed, instruction, nil
	}

	instruction.Kind = types.SettlementAllocation
	amount, err := Convert(buyer.Contributions, SaleRates(sale), sale.RateDecimals)
	if err != nil {
		return nil, nil, err
	}
	if !amount.IsZero() {
		instruction.Transfers = append(instruction.Transfers, types.TransferInstruction{
			Asset:  sale.SaleToken,
			From:   custody,
			To:     buyer.Owner,
			Amount: amount,
		})
	}
	return claimed, instruction, nil
}

// SweepInstruction 销售封存后将某资产的全部出资从托管划给销售接收方
func SweepInstruction(sale *types.Sale, assetIndex uint8, custody types.Address32) (*types.TransferInstruction, error) {
	asset, ok := sale.Asset(assetIndex)
	if !ok {
		return nil, types.ErrUnsupportedAsset.WithDetail("资产下标%d", assetIndex)
	}
	total := new(uint256.Int)
	if int(assetIndex) < len(sale.Totals) && sale.Totals[assetIndex] != nil {
		total.Set(sale.Totals[assetIndex])
	}
	return &types.TransferInstruction{
		Asset:  asset.Asset,
		From:   custody,
		To:     sale.Recipient,
		Amount: total,
	}, nil
}
