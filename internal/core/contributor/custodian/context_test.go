package custodian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/contributor/internal/config/contributor"
	"github.com/weisyn/contributor/internal/core/contributor/custodian"
	"github.com/weisyn/contributor/internal/core/contributor/testutil"
	"github.com/weisyn/contributor/pkg/types"
)

func TestContext_IsConductor(t *testing.T) {
	ctx := testutil.CustodianContext()

	assert.True(t, ctx.IsConductor(testutil.ConductorProvenance(1)))

	wrongChain := testutil.ConductorProvenance(1)
	wrongChain.EmitterChain = testutil.LocalChain
	assert.False(t, ctx.IsConductor(wrongChain))

	wrongAddr := testutil.ConductorProvenance(1)
	wrongAddr.EmitterAddress = testutil.Addr(0x01)
	assert.False(t, ctx.IsConductor(wrongAddr))
}

func TestContext_FromOptions(t *testing.T) {
	ctx := custodian.FromOptions(&contributor.ContributorOptions{
		ChainID:          7,
		ConductorChainID: 9,
		ConductorAddress: testutil.Addr(0x33),
	})
	assert.Equal(t, types.ChainID(7), ctx.LocalChain)
	assert.Equal(t, types.ChainID(9), ctx.ConductorChain)
	assert.True(t, ctx.IsLocal(types.AssetID{Chain: 7}))
	assert.False(t, ctx.IsLocal(types.AssetID{Chain: 9}))
}

func TestInitialize_Once(t *testing.T) {
	store := testutil.NewMemoryEntityStore()

	_, err := custodian.Require(store)
	assert.ErrorIs(t, err, types.ErrCustodianNotInitialized)

	c, err := custodian.Initialize(store, testutil.Custody)
	require.NoError(t, err)
	assert.Equal(t, testutil.Custody, c.Owner)

	_, err = custodian.Initialize(store, testutil.Addr(0x99))
	assert.ErrorIs(t, err, types.ErrCustodianAlreadyInitialized)

	c, err = custodian.Require(store)
	require.NoError(t, err)
	assert.Equal(t, testutil.Custody, c.Owner)
}
