package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiconfig "github.com/weisyn/contributor/internal/config/api"
	badgerconfig "github.com/weisyn/contributor/internal/config/storage/badger"
	"github.com/weisyn/contributor/internal/core/contributor/emitter"
	"github.com/weisyn/contributor/internal/core/contributor/repository"
	"github.com/weisyn/contributor/internal/core/contributor/service"
	"github.com/weisyn/contributor/internal/core/contributor/testutil"
	"github.com/weisyn/contributor/internal/core/contributor/vault"
	"github.com/weisyn/contributor/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithBus(t, nil)
}

func newTestServerWithBus(t *testing.T, bus event.EventBus) *Server {
	t.Helper()
	store, err := badger.New(badgerconfig.NewInMemory(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := &testutil.MockLogger{}
	svc := service.New(
		testutil.CustodianContext(),
		repository.New(store, nil, logger),
		vault.NewMemoryVault(true, logger),
		emitter.New(bus, logger, 0),
		bus,
		logger,
	)
	s, err := NewServer(apiconfig.HTTPConfig{MaxRequestSize: 1 << 16}, logger, svc, store, bus)
	require.NoError(t, err)
	return s
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"requestId"`
	Error     *struct {
		Code      string `json:"code"`
		Category  string `json:"category"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	} `json:"error"`
}

func do(t *testing.T, s *Server, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func inbound(msg *types.InboundMessage) map[string]interface{} {
	return map[string]interface{}{
		"emitter_chain":   uint16(msg.Provenance.EmitterChain),
		"emitter_address": msg.Provenance.EmitterAddress.Hex(),
		"sequence":        msg.Provenance.Sequence,
		"payload":         hexutil.Encode(msg.Payload),
	}
}

func TestServer_Healthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_SaleLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := testutil.SaleID(1)
	salePath := "/v1/sales/" + id.Hex()
	buyerA := testutil.Addr(0xa).Hex()
	buyerB := testutil.Addr(0xb).Hex()

	code, _ := do(t, s, http.MethodPost, "/v1/custodian", map[string]string{"owner": testutil.Custody.Hex()})
	require.Equal(t, http.StatusCreated, code)

	code, _ = do(t, s, http.MethodPost, "/v1/sales", inbound(testutil.InitMessage(testutil.ScenarioSaleInit(id), 10)))
	require.Equal(t, http.StatusCreated, code)

	code, _ = do(t, s, http.MethodPost, salePath+"/contributions", map[string]interface{}{"buyer": buyerA, "asset_index": 0, "amount": "600"})
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, s, http.MethodPost, salePath+"/contributions", map[string]interface{}{"buyer": buyerB, "asset_index": 0, "amount": "500"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ContributionCapExceeded", env.Error.Code)
	assert.Equal(t, "accounting", env.Error.Category)
	assert.NotEmpty(t, env.Error.RequestID)

	code, _ = do(t, s, http.MethodPost, salePath+"/contributions", map[string]interface{}{"buyer": buyerB, "asset_index": 0, "amount": "0x190"})
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, s, http.MethodPost, salePath+"/attestations", nil)
	require.Equal(t, http.StatusAccepted, code)
	assert.Contains(t, string(env.Data), `"payload_id":"contributions_attested"`)

	code, env = do(t, s, http.MethodPost, "/v1/sales/seal", inbound(testutil.SealMessage(id, 11)))
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"sealed"`)

	code, env = do(t, s, http.MethodPost, salePath+"/buyers/"+buyerA+"/claim", nil)
	require.Equal(t, http.StatusOK, code)
	var instruction types.SettlementInstruction
	require.NoError(t, json.Unmarshal(env.Data, &instruction))
	require.Len(t, instruction.Transfers, 1)
	assert.Equal(t, uint64(1200), instruction.Transfers[0].Amount.Uint64())

	code, env = do(t, s, http.MethodPost, salePath+"/buyers/"+buyerA+"/claim", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "AlreadyClaimed", env.Error.Code)

	code, env = do(t, s, http.MethodGet, salePath+"/buyers", nil)
	require.Equal(t, http.StatusOK, code)
	var buyers []types.Buyer
	require.NoError(t, json.Unmarshal(env.Data, &buyers))
	assert.Len(t, buyers, 2)

	code, _ = do(t, s, http.MethodPost, salePath+"/assets/0/sweep", nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = do(t, s, http.MethodPost, salePath+"/assets/0/sweep", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "AlreadySwept", env.Error.Code)
}

func TestServer_ErrorMapping(t *testing.T) {
	s := newTestServer(t)
	id := testutil.SaleID(2)

	code, env := do(t, s, http.MethodGet, "/v1/sales/"+id.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "SaleNotFound", env.Error.Code)

	code, env = do(t, s, http.MethodGet, "/v1/sales/0x1234", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidRequest", env.Error.Code)

	untrusted := testutil.InitMessage(testutil.ScenarioSaleInit(id), 1)
	untrusted.Provenance.EmitterAddress = testutil.Addr(0x66)
	code, env = do(t, s, http.MethodPost, "/v1/sales", inbound(untrusted))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "UntrustedOrigin", env.Error.Code)

	code, env = do(t, s, http.MethodPost, "/v1/sales", map[string]interface{}{
		"emitter_chain":   1,
		"emitter_address": testutil.ConductorAddress.Hex(),
		"payload":         "0xzz",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidRequest", env.Error.Code)

	code, env = do(t, s, http.MethodPost, "/v1/custodian", map[string]string{"owner": types.ZeroAddress32.Hex()})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "InvalidArgument", env.Error.Code)

	code, env = do(t, s, http.MethodGet, "/v1/custodian", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CustodianNotInitialized", env.Error.Code)

	code, env = do(t, s, http.MethodGet, "/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NotFound", env.Error.Code)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/v1/custodian", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "contributor_api_requests_total"))
}
