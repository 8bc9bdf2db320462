package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/contributor/internal/core/contributor/codec"
	"github.com/weisyn/contributor/internal/core/contributor/testutil"
	"github.com/weisyn/contributor/pkg/types"
)

func TestVerify_SaleInit(t *testing.T) {
	v := New(testutil.CustodianContext())
	msg := testutil.InitMessage(testutil.ScenarioSaleInit(testutil.SaleID(1)), 10)

	m, err := v.VerifySaleInit(msg)
	require.NoError(t, err)
	assert.Equal(t, testutil.SaleID(1), m.ID)
	assert.Len(t, m.Assets, 2)
}

func TestVerify_UntrustedOrigin(t *testing.T) {
	v := New(testutil.CustodianContext())
	msg := testutil.SealMessage(testutil.SaleID(1), 3)
	msg.Provenance.EmitterAddress = testutil.Addr(0x66)

	_, err := v.Verify(msg, types.PayloadSaleSealed, nil)
	assert.ErrorIs(t, err, types.ErrUntrustedOrigin)

	// 来源校验先于类型校验
	_, err = v.Verify(msg, types.PayloadSaleInit, nil)
	assert.ErrorIs(t, err, types.ErrUntrustedOrigin)
}

func TestVerify_UnexpectedMessageType(t *testing.T) {
	v := New(testutil.CustodianContext())
	msg := testutil.AbortMessage(testutil.SaleID(1), 3)

	_, err := v.VerifySaleSealed(msg, nil)
	assert.ErrorIs(t, err, types.ErrUnexpectedMessageType)
}

func TestVerify_SaleMismatch(t *testing.T) {
	v := New(testutil.CustodianContext())
	target := &types.Sale{ID: testutil.SaleID(2)}

	_, err := v.VerifySaleSealed(testutil.SealMessage(testutil.SaleID(1), 3), target)
	assert.ErrorIs(t, err, types.ErrSaleMismatch)

	m, err := v.VerifySaleSealed(testutil.SealMessage(testutil.SaleID(2), 3), target)
	require.NoError(t, err)
	assert.Equal(t, target.ID, m.ID)
}

func TestVerify_Malformed(t *testing.T) {
	v := New(testutil.CustodianContext())
	msg := &types.InboundMessage{
		Provenance: testutil.ConductorProvenance(1),
		Payload:    []byte{byte(types.PayloadSaleAborted), 0x01},
	}
	_, err := v.VerifySaleAborted(msg, nil)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)

	_, err = v.Verify(nil, types.PayloadSaleInit, nil)
	assert.ErrorIs(t, err, types.ErrMalformedPayload)
}

func TestVerify_ReturnsTypedMessage(t *testing.T) {
	v := New(testutil.CustodianContext())
	m, err := v.Verify(testutil.AbortMessage(testutil.SaleID(4), 1), types.PayloadSaleAborted, nil)
	require.NoError(t, err)
	_, ok := m.(*codec.SaleAborted)
	assert.True(t, ok)
}
