// Package registry 销售状态机
//
// 状态只能单向推进：Uninitialized → Open → Sealed | Aborted。
// 封存与中止都以 Open 为前置条件，因此两者互斥且各自最多发生一次。
package registry

import (
	"github.com/holiman/uint256"

	"github.com/weisyn/contributor/internal/core/contributor/allocation"
	"github.com/weisyn/contributor/internal/core/contributor/codec"
	"github.com/weisyn/contributor/internal/core/contributor/custodian"
	"github.com/weisyn/contributor/internal/core/contributor/ledger"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/types"
)

// Registry 销售登记
type Registry struct {
	ctx custodian.Context
}

// New 创建销售登记
func New(ctx custodian.Context) *Registry {
	return &Registry{ctx: ctx}
}

// Load 读取销售，不存在时返回 ErrSaleNotFound
func Load(store contributoriface.EntityStore, id types.SaleID) (*types.Sale, error) {
	sale, err := store.GetSale(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, types.ErrSaleNotFound.WithDetail("%s", id.Hex())
	}
	return sale, nil
}

// Initialize 根据已校验的初始化消息创建销售
func (r *Registry) Initialize(store contributoriface.EntityStore, msg *codec.SaleInit, prov types.Provenance) (*types.Sale, error) {
	existing, err := store.GetSale(msg.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, types.ErrSaleAlreadyExists.WithDetail("%s", msg.ID.Hex())
	}

	if err := validateTerms(msg); err != nil {
		return nil, err
	}

	n := len(msg.Assets)
	sale := &types.Sale{
		ID:              msg.ID,
		SaleToken:       msg.Token,
		TokenAmount:     amountOrZero(msg.TokenAmount),
		TokenDecimals:   msg.TokenDecimals,
		MinRaise:        amountOrZero(msg.MinRaise),
		MaxRaise:        amountOrZero(msg.MaxRaise),
		SaleStart:       msg.SaleStart.Uint64(),
		SaleEnd:         msg.SaleEnd.Uint64(),
		RateDecimals:    msg.RateDecimals,
		AcceptedAssets:  make([]types.AcceptedAsset, n),
		Recipient:       msg.Recipient,
		RefundRecipient: msg.RefundRecipient,
		KycAuthority:    msg.KycAuthority,
		Status:          types.SaleStatusOpen,
		Totals:          make([]*uint256.Int, n),
		Swept:           make([]bool, n),
		InitSequence:    prov.Sequence,
	}
	for i, a := range msg.Assets {
		sale.AcceptedAssets[i] = types.AcceptedAsset{
			Index:          uint8(i),
			Asset:          a.Asset,
			ConversionRate: a.ConversionRate.Clone(),
			Cap:            a.Cap.Clone(),
		}
		sale.Totals[i] = new(uint256.Int)
	}

	if err := store.PutSale(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// validateTerms 检查销售条款的结构合法性
func validateTerms(msg *codec.SaleInit) error {
	n := len(msg.Assets)
	if n == 0 || n > types.MaxAcceptedAssets {
		return types.ErrMalformedSaleTerms.WithDetail("可接受资产数%d不在1..%d范围内", n, types.MaxAcceptedAssets)
	}
	if msg.SaleStart == nil || msg.SaleEnd == nil || !msg.SaleStart.IsUint64() || !msg.SaleEnd.IsUint64() {
		return types.ErrMalformedSaleTerms.WithDetail("销售起止时间超出u64")
	}
	if msg.SaleEnd.Lt(msg.SaleStart) {
		return types.ErrMalformedSaleTerms.WithDetail("结束时间早于开始时间")
	}

	seen := make(map[types.AssetID]struct{}, n)
	caps := make([]*uint256.Int, n)
	rates := make([]*uint256.Int, n)
	for i, a := range msg.Assets {
		if a.ConversionRate == nil || a.ConversionRate.IsZero() {
			return types.ErrMalformedSaleTerms.WithDetail("资产%d兑换率为零", i)
		}
		if a.Cap == nil || a.Cap.IsZero() {
			return types.ErrMalformedSaleTerms.WithDetail("资产%d上限为零", i)
		}
		if _, dup := seen[a.Asset]; dup {
			return types.ErrMalformedSaleTerms.WithDetail("资产%s重复", a.Asset)
		}
		seen[a.Asset] = struct{}{}
		caps[i] = a.Cap
		rates[i] = a.ConversionRate
	}

	// 全部资产达到上限时的分配总量不得超过销售代币数量
	maxAllocation, err := allocation.Convert(caps, rates, msg.RateDecimals)
	if err != nil {
		return types.ErrMalformedSaleTerms.WithDetail("上限折算溢出")
	}
	if maxAllocation.Gt(amountOrZero(msg.TokenAmount)) {
		return types.ErrMalformedSaleTerms.WithDetail("上限折算%s超过销售代币数量%s", maxAllocation, amountOrZero(msg.TokenAmount))
	}
	return nil
}

// RecordContribution 记录一笔出资，返回更新后的销售与出资记录
//
// 超出上限的出资整体拒绝，不做部分接受。
func (r *Registry) RecordContribution(store contributoriface.EntityStore, sale *types.Sale, buyer types.Address32, assetIndex uint8, amount *uint256.Int) (*types.Sale, *types.Buyer, error) {
	if sale.Status != types.SaleStatusOpen {
		return nil, nil, types.ErrSaleNotOpen.WithDetail("状态=%s", sale.Status)
	}
	asset, ok := sale.Asset(assetIndex)
	if !ok {
		return nil, nil, types.ErrUnsupportedAsset.WithDetail("资产下标%d", assetIndex)
	}
	if !r.ctx.IsLocal(asset.Asset) {
		return nil, nil, types.ErrUnsupportedAsset.WithDetail("资产%s不在本链", asset.Asset)
	}
	if amount == nil || amount.IsZero() {
		return nil, nil, types.ErrZeroContribution
	}

	newTotal, overflow := new(uint256.Int).AddOverflow(totalOf(sale, assetIndex), amount)
	if overflow || newTotal.Gt(asset.Cap) {
		return nil, nil, types.ErrContributionCapExceeded.WithDetail("资产%d上限%s", assetIndex, asset.Cap)
	}

	current, err := store.GetBuyer(sale.ID, buyer)
	if err != nil {
		return nil, nil, err
	}
	nextBuyer, err := ledger.Add(current, sale.ID, buyer, len(sale.AcceptedAssets), assetIndex, amount)
	if err != nil {
		return nil, nil, err
	}

	nextSale := sale.Clone()
	nextSale.Totals[assetIndex] = newTotal

	if err := store.PutBuyer(nextBuyer); err != nil {
		return nil, nil, err
	}
	if err := store.PutSale(nextSale); err != nil {
		return nil, nil, err
	}
	return nextSale, nextBuyer, nil
}

// Seal 应用封存消息
func (r *Registry) Seal(store contributoriface.EntityStore, sale *types.Sale, prov types.Provenance) (*types.Sale, error) {
	if err := checkTransition(sale, prov); err != nil {
		return nil, err
	}
	next := sale.Clone()
	next.Status = types.SaleStatusSealed
	seq := prov.Sequence
	next.SealedSequence = &seq
	if err := store.PutSale(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Abort 应用中止消息
func (r *Registry) Abort(store contributoriface.EntityStore, sale *types.Sale, prov types.Provenance) (*types.Sale, error) {
	if err := checkTransition(sale, prov); err != nil {
		return nil, err
	}
	next := sale.Clone()
	next.Status = types.SaleStatusAborted
	seq := prov.Sequence
	next.AbortedSequence = &seq
	if err := store.PutSale(next); err != nil {
		return nil, err
	}
	return next, nil
}

// checkTransition 终态销售或不晚于已应用序号的消息视为重复
func checkTransition(sale *types.Sale, prov types.Provenance) error {
	if sale.Status != types.SaleStatusOpen {
		return types.ErrDuplicateSealMessage.WithDetail("销售已处于%s状态", sale.Status)
	}
	if prov.Sequence <= sale.InitSequence {
		return types.ErrDuplicateSealMessage.WithDetail("序号%d不晚于初始化序号%d", prov.Sequence, sale.InitSequence)
	}
	return nil
}

// MarkSwept 标记某资产的出资已划给销售接收方
func (r *Registry) MarkSwept(store contributoriface.EntityStore, sale *types.Sale, assetIndex uint8) (*types.Sale, error) {
	if sale.Status != types.SaleStatusSealed {
		return nil, types.ErrSaleNotSealed.WithDetail("状态=%s", sale.Status)
	}
	asset, ok := sale.Asset(assetIndex)
	if !ok || !r.ctx.IsLocal(asset.Asset) {
		return nil, types.ErrUnsupportedAsset.WithDetail("资产下标%d", assetIndex)
	}
	if int(assetIndex) < len(sale.Swept) && sale.Swept[assetIndex] {
		return nil, types.ErrAlreadySwept.WithDetail("资产下标%d", assetIndex)
	}

	next := sale.Clone()
	for len(next.Swept) < len(next.AcceptedAssets) {
		next.Swept = append(next.Swept, false)
	}
	next.Swept[assetIndex] = true
	if err := store.PutSale(next); err != nil {
		return nil, err
	}
	return next, nil
}

func totalOf(sale *types.Sale, index uint8) *uint256.Int {
	if int(index) >= len(sale.Totals) || sale.Totals[index] == nil {
		return new(uint256.Int)
	}
	return sale.Totals[index]
}

func amountOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v.Clone()
}
