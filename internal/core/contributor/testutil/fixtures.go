package testutil

import (
	"github.com/holiman/uint256"

	"github.com/weisyn/contributor/internal/core/contributor/codec"
	"github.com/weisyn/contributor/internal/core/contributor/custodian"
	"github.com/weisyn/contributor/pkg/types"
)

// 测试网络：指挥链为1，本链为2
const (
	ConductorChain types.ChainID = 1
	LocalChain     types.ChainID = 2
	ForeignChain   types.ChainID = 3
)

// Addr 末字节为b的32字节地址
func Addr(b byte) types.Address32 {
	var a types.Address32
	a[31] = b
	return a
}

// SaleID 末字节为b的销售ID
func SaleID(b byte) types.SaleID {
	var id types.SaleID
	id[0] = 0x5a
	id[31] = b
	return id
}

// ConductorAddress 测试用指挥合约地址
var ConductorAddress = Addr(0xc0)

// Custody 测试用托管所有者
var Custody = Addr(0xee)

// USDC 本链出资资产
var USDC = types.AssetID{Chain: LocalChain, Address: Addr(0x01)}

// ForeignAsset 其他链上的出资资产，本链不可收取
var ForeignAsset = types.AssetID{Chain: ForeignChain, Address: Addr(0x02)}

// SaleToken 销售代币
var SaleToken = types.AssetID{Chain: ConductorChain, Address: Addr(0x0f)}

// CustodianContext 测试用托管方上下文
func CustodianContext() custodian.Context {
	return custodian.New(ConductorChain, ConductorAddress, LocalChain)
}

// ConductorProvenance 来自指挥合约的来源信息
func ConductorProvenance(seq uint64) types.Provenance {
	return types.Provenance{
		EmitterChain:   ConductorChain,
		EmitterAddress: ConductorAddress,
		Sequence:       seq,
	}
}

// ScenarioSaleInit 上限1000 USDC、兑换率2的销售；另带一个外链资产
func ScenarioSaleInit(id types.SaleID) *codec.SaleInit {
	return &codec.SaleInit{
		ID:            id,
		Token:         SaleToken,
		TokenAmount:   uint256.NewInt(1_000_000),
		TokenDecimals: 18,
		MinRaise:      uint256.NewInt(100),
		MaxRaise:      uint256.NewInt(1000),
		SaleStart:     uint256.NewInt(1_700_000_000),
		SaleEnd:       uint256.NewInt(1_700_086_400),
		RateDecimals:  0,
		Assets: []codec.InitAsset{
			{Asset: USDC, ConversionRate: uint256.NewInt(2), Cap: uint256.NewInt(1000)},
			{Asset: ForeignAsset, ConversionRate: uint256.NewInt(3), Cap: uint256.NewInt(500)},
		},
		Recipient:       Addr(0xa1),
		RefundRecipient: Addr(0xa2),
	}
}

// InitMessage 编码为来自指挥合约的入站消息
func InitMessage(m *codec.SaleInit, seq uint64) *types.InboundMessage {
	payload, err := m.Encode()
	if err != nil {
		panic(err)
	}
	return &types.InboundMessage{Provenance: ConductorProvenance(seq), Payload: payload}
}

// SealMessage 封存消息
func SealMessage(id types.SaleID, seq uint64) *types.InboundMessage {
	return &types.InboundMessage{
		Provenance: ConductorProvenance(seq),
		Payload:    (&codec.SaleSealed{ID: id}).Encode(),
	}
}

// AbortMessage 中止消息
func AbortMessage(id types.SaleID, seq uint64) *types.InboundMessage {
	return &types.InboundMessage{
		Provenance: ConductorProvenance(seq),
		Payload:    (&codec.SaleAborted{ID: id}).Encode(),
	}
}
