// Package emitter 出站消息发布
//
// 出站消息以事件的形式发布到事件总线，由订阅者（中继进程、测试）
// 取走并提交到跨链传输层。序号只在本进程内单调递增。
package emitter

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/weisyn/contributor/pkg/constants/events"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

var _ contributoriface.Transport = (*Emitter)(nil)

// Emitter 基于事件总线的出站传输
type Emitter struct {
	bus      event.EventBus
	logger   log.Logger
	sequence atomic.Uint64

	mu     sync.RWMutex
	recent []*types.OutboundMessage
	limit  int
}

// New 创建出站传输；limit 为保留的最近消息条数
func New(bus event.EventBus, logger log.Logger, limit int) *Emitter {
	if limit <= 0 {
		limit = 256
	}
	return &Emitter{bus: bus, logger: logger, limit: limit}
}

// Publish 分配序号并发布出站消息
func (e *Emitter) Publish(ctx context.Context, msg *types.OutboundMessage) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	out := *msg
	out.Payload = append([]byte(nil), msg.Payload...)
	out.Sequence = e.sequence.Add(1)

	e.mu.Lock()
	e.recent = append(e.recent, &out)
	if len(e.recent) > e.limit {
		e.recent = e.recent[len(e.recent)-e.limit:]
	}
	e.mu.Unlock()

	if e.bus != nil {
		e.bus.PublishEvent(&types.ContributorEvent{
			EventType: events.EventTypeOutboundMessage,
			SaleID:    out.SaleID,
			Data:      &out,
		})
	}
	if e.logger != nil {
		e.logger.Infof("出站消息已发布 sale=%s type=%s seq=%d", out.SaleID.Hex(), out.PayloadID, out.Sequence)
	}
	return out.Sequence, nil
}

// Recent 返回最近发布的出站消息（按序号升序）
func (e *Emitter) Recent() []*types.OutboundMessage {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*types.OutboundMessage(nil), e.recent...)
}
