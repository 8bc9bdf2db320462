package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// MaxAcceptedAssets 单个销售允许的最大可接受资产数
const MaxAcceptedAssets = 8

// SaleStatus 销售状态
//
// 状态只能单向推进：Open → Sealed 或 Open → Aborted，终态之间互斥。
type SaleStatus uint8

const (
	SaleStatusUninitialized SaleStatus = iota
	SaleStatusOpen
	SaleStatusSealed
	SaleStatusAborted
)

// String 返回状态名称
func (s SaleStatus) String() string {
	switch s {
	case SaleStatusOpen:
		return "open"
	case SaleStatusSealed:
		return "sealed"
	case SaleStatusAborted:
		return "aborted"
	default:
		return "uninitialized"
	}
}

// MarshalText 以名称编码
func (s SaleStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 按名称解码
func (s *SaleStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "open":
		*s = SaleStatusOpen
	case "sealed":
		*s = SaleStatusSealed
	case "aborted":
		*s = SaleStatusAborted
	default:
		*s = SaleStatusUninitialized
	}
	return nil
}

// IsTerminal 是否为终态
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusSealed || s == SaleStatusAborted
}

// AcceptedAsset 可接受的出资资产及其兑换参数
type AcceptedAsset struct {
	Index          uint8        `json:"index"`
	Asset          AssetID      `json:"asset"`
	ConversionRate *uint256.Int `json:"conversion_rate"` // 每单位出资兑换的销售代币数量（分子）
	Cap            *uint256.Int `json:"cap"`             // 该资产的聚合上限
}

// Sale 一次跨链销售的本地状态
type Sale struct {
	ID              SaleID          `json:"id"`
	SaleToken       AssetID         `json:"sale_token"`
	TokenAmount     *uint256.Int    `json:"token_amount"`
	TokenDecimals   uint8           `json:"token_decimals"`
	MinRaise        *uint256.Int    `json:"min_raise"`
	MaxRaise        *uint256.Int    `json:"max_raise"`
	SaleStart       uint64          `json:"sale_start"`
	SaleEnd         uint64          `json:"sale_end"`
	RateDecimals    uint8           `json:"rate_decimals"` // 兑换率分母为 10^RateDecimals
	AcceptedAssets  []AcceptedAsset `json:"accepted_assets"`
	Recipient       Address32       `json:"recipient"`
	RefundRecipient Address32       `json:"refund_recipient"`
	KycAuthority    common.Address  `json:"kyc_authority"`

	Status SaleStatus     `json:"status"`
	Totals []*uint256.Int `json:"totals"` // 与 AcceptedAssets 按下标对齐
	Swept  []bool         `json:"swept"`

	InitSequence    uint64  `json:"init_sequence"`
	SealedSequence  *uint64 `json:"sealed_sequence,omitempty"`
	AbortedSequence *uint64 `json:"aborted_sequence,omitempty"`
}

// Asset 按下标查找可接受资产
func (s *Sale) Asset(index uint8) (*AcceptedAsset, bool) {
	if int(index) >= len(s.AcceptedAssets) {
		return nil, false
	}
	return &s.AcceptedAssets[index], true
}

// KycEnabled 是否要求KYC签名
func (s *Sale) KycEnabled() bool {
	return s.KycAuthority != (common.Address{})
}

// Clone 深拷贝，用于缓存与只读视图
func (s *Sale) Clone() *Sale {
	if s == nil {
		return nil
	}
	c := *s
	c.TokenAmount = cloneAmount(s.TokenAmount)
	c.MinRaise = cloneAmount(s.MinRaise)
	c.MaxRaise = cloneAmount(s.MaxRaise)
	c.AcceptedAssets = make([]AcceptedAsset, len(s.AcceptedAssets))
	for i, a := range s.AcceptedAssets {
		a.ConversionRate = cloneAmount(a.ConversionRate)
		a.Cap = cloneAmount(a.Cap)
		c.AcceptedAssets[i] = a
	}
	c.Totals = cloneAmounts(s.Totals)
	c.Swept = append([]bool(nil), s.Swept...)
	if s.SealedSequence != nil {
		v := *s.SealedSequence
		c.SealedSequence = &v
	}
	if s.AbortedSequence != nil {
		v := *s.AbortedSequence
		c.AbortedSequence = &v
	}
	return &c
}

// Buyer 某个出资人在某次销售中的出资记录
type Buyer struct {
	SaleID        SaleID         `json:"sale_id"`
	Owner         Address32      `json:"owner"`
	Contributions []*uint256.Int `json:"contributions"` // 与 Sale.AcceptedAssets 按下标对齐
	Claimed       bool           `json:"claimed"`
}

// Contribution 返回指定资产的出资额（不存在时为0）
func (b *Buyer) Contribution(index uint8) *uint256.Int {
	if b == nil || int(index) >= len(b.Contributions) || b.Contributions[index] == nil {
		return new(uint256.Int)
	}
	return b.Contributions[index].Clone()
}

// Clone 深拷贝
func (b *Buyer) Clone() *Buyer {
	if b == nil {
		return nil
	}
	c := *b
	c.Contributions = cloneAmounts(b.Contributions)
	return &c
}

// Custodian 托管方的持久化记录，部署后只创建一次
type Custodian struct {
	Owner Address32 `json:"owner"`
}

func cloneAmount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return v.Clone()
}

func cloneAmounts(in []*uint256.Int) []*uint256.Int {
	if in == nil {
		return nil
	}
	out := make([]*uint256.Int, len(in))
	for i, v := range in {
		out[i] = cloneAmount(v)
	}
	return out
}
