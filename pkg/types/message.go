package types

import (
	"github.com/holiman/uint256"
)

// PayloadID 跨链消息载荷的类型标签（载荷首字节）
type PayloadID uint8

const (
	PayloadSaleInit              PayloadID = 1
	PayloadContributionsAttested PayloadID = 2
	PayloadSaleSealed            PayloadID = 3
	PayloadSaleAborted           PayloadID = 4
)

// String 返回类型名称
func (p PayloadID) String() string {
	switch p {
	case PayloadSaleInit:
		return "sale_init"
	case PayloadContributionsAttested:
		return "contributions_attested"
	case PayloadSaleSealed:
		return "sale_sealed"
	case PayloadSaleAborted:
		return "sale_aborted"
	default:
		return "unknown"
	}
}

// Provenance 跨链传输层提供的消息来源信息
type Provenance struct {
	EmitterChain   ChainID   `json:"emitter_chain"`
	EmitterAddress Address32 `json:"emitter_address"`
	Sequence       uint64    `json:"sequence"`
}

// InboundMessage 已由传输层完成认证的入站消息
type InboundMessage struct {
	Provenance Provenance `json:"provenance"`
	Payload    []byte     `json:"payload"`
}

// OutboundMessage 需要由传输层发往指挥链的出站消息
type OutboundMessage struct {
	SaleID    SaleID    `json:"sale_id"`
	PayloadID PayloadID `json:"payload_id"`
	Payload   []byte    `json:"payload"`
	// Sequence 由传输层在发布时分配，核心不负责排序
	Sequence uint64 `json:"sequence"`
}

// SettlementKind 结算类型
type SettlementKind string

const (
	SettlementAllocation SettlementKind = "allocation"
	SettlementRefund     SettlementKind = "refund"
)

// TransferInstruction 交给代币金库执行的一笔转账
type TransferInstruction struct {
	Asset  AssetID      `json:"asset"`
	From   Address32    `json:"from"`
	To     Address32    `json:"to"`
	Amount *uint256.Int `json:"amount"`
}

// SettlementInstruction 单个出资人的结算指令
type SettlementInstruction struct {
	SaleID    SaleID                `json:"sale_id"`
	Buyer     Address32             `json:"buyer"`
	Kind      SettlementKind        `json:"kind"`
	Transfers []TransferInstruction `json:"transfers"`
}
