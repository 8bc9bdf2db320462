package codec

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/weisyn/contributor/pkg/types"
)

// InitAsset 初始化载荷中的一个可接受资产
type InitAsset struct {
	Asset          types.AssetID
	ConversionRate *uint256.Int // u128
	Cap            *uint256.Int
}

// SaleInit 销售初始化载荷
type SaleInit struct {
	ID              types.SaleID
	Token           types.AssetID
	TokenAmount     *uint256.Int
	TokenDecimals   uint8
	MinRaise        *uint256.Int
	MaxRaise        *uint256.Int
	SaleStart       *uint256.Int // 线上为u256，登记时要求不超过u64
	SaleEnd         *uint256.Int
	RateDecimals    uint8
	Assets          []InitAsset
	Recipient       types.Address32
	RefundRecipient types.Address32
	KycAuthority    common.Address
}

// PayloadID 实现 Message
func (m *SaleInit) PayloadID() types.PayloadID { return types.PayloadSaleInit }

// SaleID 实现 Message
func (m *SaleInit) SaleID() types.SaleID { return m.ID }

// DecodeSaleInit 解码销售初始化载荷，长度必须与资产数严格匹配
func DecodeSaleInit(payload []byte) (*SaleInit, error) {
	if len(payload) < saleInitFixedSize {
		return nil, types.ErrMalformedPayload.WithDetail("初始化载荷长度%d小于最小长度%d", len(payload), saleInitFixedSize)
	}
	if types.PayloadID(payload[0]) != types.PayloadSaleInit {
		return nil, types.ErrMalformedPayload.WithDetail("载荷类型%d不是SaleInit", payload[0])
	}

	r := &reader{buf: payload, off: tagSize}
	m := &SaleInit{}
	m.ID = r.saleID()
	m.Token.Address = r.addr()
	m.Token.Chain = r.chain()
	m.TokenAmount = r.u256()
	m.TokenDecimals = r.u8()
	m.MinRaise = r.u256()
	m.MaxRaise = r.u256()
	m.SaleStart = r.u256()
	m.SaleEnd = r.u256()
	m.RateDecimals = r.u8()

	n := int(r.u8())
	if expected := saleInitFixedSize + n*initAssetSize; len(payload) != expected {
		return nil, types.ErrMalformedPayload.WithDetail("初始化载荷长度%d与%d个资产不符（应为%d）", len(payload), n, expected)
	}

	m.Assets = make([]InitAsset, n)
	for i := 0; i < n; i++ {
		a := &m.Assets[i]
		a.Asset.Address = r.addr()
		a.Asset.Chain = r.chain()
		a.ConversionRate = r.u128()
		a.Cap = r.u256()
	}

	m.Recipient = r.addr()
	m.RefundRecipient = r.addr()
	m.KycAuthority = r.kyc()
	return m, nil
}

// Encode 编码销售初始化载荷
func (m *SaleInit) Encode() ([]byte, error) {
	if len(m.Assets) > 255 {
		return nil, types.ErrMalformedPayload.WithDetail("资产数%d超过255", len(m.Assets))
	}
	for i, a := range m.Assets {
		if a.ConversionRate != nil && a.ConversionRate.BitLen() > 128 {
			return nil, types.ErrMalformedPayload.WithDetail("资产%d的兑换率超过u128", i)
		}
	}

	w := newWriter(saleInitFixedSize + len(m.Assets)*initAssetSize)
	w.u8(uint8(types.PayloadSaleInit))
	w.saleID(m.ID)
	w.addr(m.Token.Address)
	w.chain(m.Token.Chain)
	w.u256(m.TokenAmount)
	w.u8(m.TokenDecimals)
	w.u256(m.MinRaise)
	w.u256(m.MaxRaise)
	w.u256(m.SaleStart)
	w.u256(m.SaleEnd)
	w.u8(m.RateDecimals)
	w.u8(uint8(len(m.Assets)))
	for _, a := range m.Assets {
		w.addr(a.Asset.Address)
		w.chain(a.Asset.Chain)
		w.u128(a.ConversionRate)
		w.u256(a.Cap)
	}
	w.addr(m.Recipient)
	w.addr(m.RefundRecipient)
	w.kyc(m.KycAuthority)
	return w.buf, nil
}
