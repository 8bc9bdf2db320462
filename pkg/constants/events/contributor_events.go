// Package events 出资方核心事件类型常量定义
//
// 命名规范：domain.category.action
package events

import (
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
)

// EventType 全局事件类型别名，兼容标准事件接口
type EventType = event.EventType

// 销售生命周期事件
const (
	// EventTypeSaleInitialized 销售已登记（Open）
	EventTypeSaleInitialized EventType = "contributor.sale.initialized"

	// EventTypeSaleSealed 销售已封存
	EventTypeSaleSealed EventType = "contributor.sale.sealed"

	// EventTypeSaleAborted 销售已中止
	EventTypeSaleAborted EventType = "contributor.sale.aborted"
)

// 账本事件
const (
	// EventTypeContributionRecorded 出资已入账
	EventTypeContributionRecorded EventType = "contributor.ledger.contribution_recorded"

	// EventTypeBuyerSettled 出资人已结算（分配或退款）
	// 负载：*types.SettlementInstruction
	EventTypeBuyerSettled EventType = "contributor.ledger.buyer_settled"

	// EventTypeContributionsSwept 已将募集资产转给销售接收方
	EventTypeContributionsSwept EventType = "contributor.ledger.contributions_swept"
)

// 传输事件
const (
	// EventTypeOutboundMessage 需要发往指挥链的出站消息
	// 负载：*types.OutboundMessage
	EventTypeOutboundMessage EventType = "contributor.transport.outbound"
)
