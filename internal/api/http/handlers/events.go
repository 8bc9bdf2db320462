package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/weisyn/contributor/pkg/constants/events"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

const (
	eventWriteTimeout = 10 * time.Second
	eventPingInterval = 30 * time.Second
	eventClientBuffer = 64
)

// streamedEventTypes 可推送的事件类型
var streamedEventTypes = []types.EventType{
	events.EventTypeSaleInitialized,
	events.EventTypeSaleSealed,
	events.EventTypeSaleAborted,
	events.EventTypeContributionRecorded,
	events.EventTypeBuyerSettled,
	events.EventTypeContributionsSwept,
	events.EventTypeOutboundMessage,
}

type eventClient struct {
	ch     chan *types.ContributorEvent
	filter map[types.EventType]bool
}

// EventStreamHandler 通过WebSocket推送出资方事件
//
// 每种事件类型在总线上只订阅一次，再扇出到所有连接；
// 连接消费过慢时丢弃该连接的新事件，不阻塞核心操作。
type EventStreamHandler struct {
	logger   log.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*eventClient]struct{}
}

// NewEventStreamHandler 创建事件推送处理器并订阅事件总线
func NewEventStreamHandler(bus event.EventBus, logger log.Logger) (*EventStreamHandler, error) {
	h := &EventStreamHandler{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*eventClient]struct{}),
	}
	for _, t := range streamedEventTypes {
		if err := bus.Subscribe(t, h.dispatch); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// RegisterRoutes 注册事件流路由
func (h *EventStreamHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/events", h.Stream)
}

// Stream GET /v1/events?types=a,b
func (h *EventStreamHandler) Stream(c *gin.Context) {
	client := &eventClient{
		ch:     make(chan *types.ContributorEvent, eventClientBuffer),
		filter: parseEventFilter(c.Query("types")),
	}
	// 先登记再升级，握手完成后发布的事件不会丢失
	h.register(client)
	defer h.unregister(client)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnf("WebSocket升级失败: %v", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debugf("WebSocket连接异常关闭: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(eventPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev := <-client.ch:
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.Debugf("推送事件失败: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventWriteTimeout)); err != nil {
				return
			}
		}
	}
}

func (h *EventStreamHandler) dispatch(ev *types.ContributorEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if len(client.filter) > 0 && !client.filter[ev.EventType] {
			continue
		}
		select {
		case client.ch <- ev:
		default:
			h.logger.Warnf("事件推送缓冲区已满，丢弃事件 type=%s sale=%s", ev.EventType, ev.SaleID.Hex())
		}
	}
}

func (h *EventStreamHandler) register(client *eventClient) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
}

func (h *EventStreamHandler) unregister(client *eventClient) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
}

func parseEventFilter(raw string) map[types.EventType]bool {
	if raw == "" {
		return nil
	}
	filter := make(map[types.EventType]bool)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			filter[types.EventType(part)] = true
		}
	}
	return filter
}
