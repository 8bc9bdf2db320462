// Package relay 将出站消息中继到Redis Stream
//
// 订阅事件总线上的出站消息事件，按发布顺序写入一个Redis Stream，
// 由外部的跨链中继进程消费并提交到传输层。写入失败只记录日志与指标，
// 不回滚核心状态：出站消息可通过 ReportAttestation 重新生成。
package relay

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"

	relayconfig "github.com/weisyn/contributor/internal/config/relay"
	"github.com/weisyn/contributor/pkg/constants/events"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

var relayedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "contributor",
		Subsystem: "relay",
		Name:      "messages_total",
		Help:      "Total number of outbound messages relayed to Redis by result",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(relayedTotal)
}

// Relay 出站消息Redis中继
type Relay struct {
	client  streamClient
	bus     event.EventBus
	logger  log.Logger
	stream  string
	maxLen  int64
	timeout time.Duration

	mu      sync.Mutex
	handler func(*types.ContributorEvent)
}

// New 按配置连接Redis并创建中继
func New(opts *relayconfig.RelayOptions, bus event.EventBus, logger log.Logger) (*Relay, error) {
	client, err := newGoRedisClient(opts)
	if err != nil {
		return nil, err
	}
	r, err := newRelay(client, opts, bus, logger)
	if err != nil {
		client.Close()
		return nil, err
	}
	return r, nil
}

func newRelay(client streamClient, opts *relayconfig.RelayOptions, bus event.EventBus, logger log.Logger) (*Relay, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if bus == nil {
		return nil, fmt.Errorf("event bus is required for outbound relay")
	}
	cfg := relayconfig.NewFromOptions(opts).GetOptions()
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Relay{
		client:  client,
		bus:     bus,
		logger:  logger,
		stream:  cfg.Stream,
		maxLen:  cfg.MaxLen,
		timeout: timeout,
	}, nil
}

// Start 订阅出站消息事件
//
// 使用事务型异步订阅，处理顺序与发布顺序一致，Redis写入不阻塞核心操作。
func (r *Relay) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handler != nil {
		return nil
	}
	handler := r.forward
	if err := r.bus.SubscribeAsync(events.EventTypeOutboundMessage, handler, true); err != nil {
		return fmt.Errorf("订阅出站消息失败: %w", err)
	}
	r.handler = handler
	return nil
}

// Stop 取消订阅，等待在途消息写完后关闭连接
func (r *Relay) Stop() error {
	r.mu.Lock()
	handler := r.handler
	r.handler = nil
	r.mu.Unlock()

	if handler != nil {
		if err := r.bus.Unsubscribe(events.EventTypeOutboundMessage, handler); err != nil && r.logger != nil {
			r.logger.Warnf("取消订阅出站消息失败: %v", err)
		}
		r.bus.WaitAsync()
	}
	return r.client.Close()
}

func (r *Relay) forward(ev *types.ContributorEvent) {
	msg, ok := ev.GetData().(*types.OutboundMessage)
	if !ok || msg == nil {
		relayedTotal.WithLabelValues("skipped").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	id, err := r.client.XAdd(ctx, r.stream, r.maxLen, streamValues(msg))
	if err != nil {
		relayedTotal.WithLabelValues("error").Inc()
		if r.logger != nil {
			r.logger.Errorf("出站消息写入Redis失败 sale=%s seq=%d: %v", msg.SaleID.Hex(), msg.Sequence, err)
		}
		return
	}
	relayedTotal.WithLabelValues("ok").Inc()
	if r.logger != nil {
		r.logger.Debugf("出站消息已中继 stream=%s id=%s seq=%d", r.stream, id, msg.Sequence)
	}
}

// streamValues Stream记录字段，载荷以0x十六进制存放
func streamValues(msg *types.OutboundMessage) map[string]interface{} {
	return map[string]interface{}{
		"sale_id":    msg.SaleID.Hex(),
		"payload_id": strconv.Itoa(int(msg.PayloadID)),
		"type":       msg.PayloadID.String(),
		"sequence":   strconv.FormatUint(msg.Sequence, 10),
		"payload":    hexutil.Encode(msg.Payload),
	}
}
