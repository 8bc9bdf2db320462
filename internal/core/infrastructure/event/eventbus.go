// Package event 基于 asaskevich/EventBus 的事件总线实现
package event

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	eventconfig "github.com/weisyn/contributor/internal/config/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/types"
)

// EventBus 事件总线实现
type EventBus struct {
	bus    evbus.Bus           // 底层事件总线
	config *eventconfig.Config // 配置

	running atomic.Bool // 运行状态

	published atomic.Uint64 // 已发布事件数
}

// New 创建事件总线
func New(config *eventconfig.Config) *EventBus {
	if config == nil {
		config = eventconfig.New(nil)
	}
	return &EventBus{
		bus:    evbus.New(),
		config: config,
	}
}

var _ event.EventBus = (*EventBus)(nil)

// Subscribe 订阅事件
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil // 如果事件系统未启用，静默成功
	}
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 异步订阅事件
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Publish 发布事件
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.config.IsEnabled() {
		return
	}
	eb.published.Add(1)
	eb.bus.Publish(string(eventType), args...)
}

// PublishEvent 发布Event接口类型事件
func (eb *EventBus) PublishEvent(e event.Event) {
	if e == nil || !eb.config.IsEnabled() {
		return
	}
	if ce, ok := e.(*types.ContributorEvent); ok {
		if ce.ID == "" {
			ce.ID = uuid.New().String()
		}
		if ce.Timestamp.IsZero() {
			ce.Timestamp = time.Now()
		}
	}
	eb.published.Add(1)
	eb.bus.Publish(string(e.Type()), e)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// WaitAsync 等待所有异步处理完成
func (eb *EventBus) WaitAsync() {
	if !eb.config.IsEnabled() {
		return
	}
	eb.bus.WaitAsync()
}

// HasCallback 检查是否有回调函数
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.config.IsEnabled() {
		return false
	}
	return eb.bus.HasCallback(string(eventType))
}

// Published 返回已发布事件总数
func (eb *EventBus) Published() uint64 {
	return eb.published.Load()
}

// Start 启动事件总线
func (eb *EventBus) Start(ctx context.Context) error {
	if eb.running.Load() {
		return fmt.Errorf("event bus already running")
	}
	eb.running.Store(true)
	return nil
}

// Stop 停止事件总线，等待异步订阅者处理完毕
func (eb *EventBus) Stop(ctx context.Context) error {
	if !eb.running.Load() {
		return fmt.Errorf("event bus not running")
	}
	eb.running.Store(false)
	eb.WaitAsync()
	return nil
}

// IsRunning 是否运行中
func (eb *EventBus) IsRunning() bool {
	return eb.running.Load()
}
