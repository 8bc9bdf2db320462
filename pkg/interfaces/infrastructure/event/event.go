// Package event 定义事件总线接口
//
// 📣 出资方核心通过事件总线向传输层投递出站消息，
// 并广播销售状态变化，订阅方包括出站传输适配器与监控组件。
package event

import (
	"github.com/weisyn/contributor/pkg/types"
)

// 兼容别名
type EventType = types.EventType

// Event 事件接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// GetData 返回事件数据
	GetData() interface{}
}

// EventBus 事件总线接口
// 注意：事件总线由DI容器自动管理生命周期
type EventBus interface {
	// Subscribe 订阅事件
	Subscribe(eventType EventType, handler interface{}) error
	// SubscribeAsync 异步订阅事件
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})
	// PublishEvent 发布Event接口类型事件，以事件本身作为唯一参数
	PublishEvent(event Event)
	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error
	// WaitAsync 等待所有异步处理完成
	WaitAsync()
	// HasCallback 检查是否有回调函数
	HasCallback(eventType EventType) bool
}
