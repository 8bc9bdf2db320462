package types

import "time"

// EventType 事件类型
type EventType string

// ContributorEvent 出资方核心向事件总线发布的领域事件
//
// Data 承载具体负载，例如 *OutboundMessage 或 *SettlementInstruction。
type ContributorEvent struct {
	ID        string      `json:"id"`
	EventType EventType   `json:"event_type"`
	SaleID    SaleID      `json:"sale_id"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Type 实现 event.Event
func (e *ContributorEvent) Type() EventType {
	return e.EventType
}

// GetData 返回事件负载
func (e *ContributorEvent) GetData() interface{} {
	return e.Data
}
