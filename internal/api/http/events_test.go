package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/contributor/internal/config/event"
	"github.com/weisyn/contributor/internal/core/contributor/testutil"
	eventbus "github.com/weisyn/contributor/internal/core/infrastructure/event"
	"github.com/weisyn/contributor/pkg/constants/events"
	"github.com/weisyn/contributor/pkg/types"
)

func dialEvents(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/events" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) types.ContributorEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev types.ContributorEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestServer_EventStream(t *testing.T) {
	bus := eventbus.New(eventconfig.New(nil))
	s := newTestServerWithBus(t, bus)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	all := dialEvents(t, ts, "")
	sealedOnly := dialEvents(t, ts, "?types="+string(events.EventTypeSaleSealed))

	id := testutil.SaleID(5)
	code, _ := do(t, s, http.MethodPost, "/v1/custodian", map[string]string{"owner": testutil.Custody.Hex()})
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, s, http.MethodPost, "/v1/sales", inbound(testutil.InitMessage(testutil.ScenarioSaleInit(id), 3)))
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, s, http.MethodPost, "/v1/sales/seal", inbound(testutil.SealMessage(id, 4)))
	require.Equal(t, http.StatusOK, code)

	ev := readEvent(t, all)
	assert.Equal(t, events.EventTypeSaleInitialized, ev.EventType)
	assert.Equal(t, id, ev.SaleID)
	assert.NotEmpty(t, ev.ID)

	ev = readEvent(t, all)
	assert.Equal(t, events.EventTypeSaleSealed, ev.EventType)

	// 过滤后只收到封存事件
	ev = readEvent(t, sealedOnly)
	assert.Equal(t, events.EventTypeSaleSealed, ev.EventType)
	assert.Equal(t, id, ev.SaleID)
}

func TestServer_EventStreamDisabledWithoutBus(t *testing.T) {
	s := newTestServer(t)
	code, env := do(t, s, http.MethodGet, "/v1/events", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NotFound", env.Error.Code)
}
