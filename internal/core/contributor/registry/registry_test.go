package registry

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/contributor/internal/core/contributor/codec"
	"github.com/weisyn/contributor/internal/core/contributor/testutil"
	"github.com/weisyn/contributor/pkg/types"
)

func setup(t *testing.T) (*Registry, *testutil.MemoryEntityStore, *types.Sale) {
	t.Helper()
	r := New(testutil.CustodianContext())
	store := testutil.NewMemoryEntityStore()
	sale, err := r.Initialize(store, testutil.ScenarioSaleInit(testutil.SaleID(1)), testutil.ConductorProvenance(10))
	require.NoError(t, err)
	return r, store, sale
}

func TestInitialize(t *testing.T) {
	r, store, sale := setup(t)

	assert.Equal(t, types.SaleStatusOpen, sale.Status)
	assert.Equal(t, uint64(10), sale.InitSequence)
	assert.Equal(t, uint64(1_700_000_000), sale.SaleStart)
	require.Len(t, sale.AcceptedAssets, 2)
	assert.Equal(t, uint8(1), sale.AcceptedAssets[1].Index)
	assert.Len(t, sale.Totals, 2)
	assert.True(t, sale.Totals[0].IsZero())

	stored, err := Load(store, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale, stored)

	_, err = r.Initialize(store, testutil.ScenarioSaleInit(testutil.SaleID(1)), testutil.ConductorProvenance(11))
	assert.ErrorIs(t, err, types.ErrSaleAlreadyExists)
}

func TestInitialize_MalformedTerms(t *testing.T) {
	cases := map[string]func(m *codec.SaleInit){
		"无资产": func(m *codec.SaleInit) { m.Assets = nil },
		"资产过多": func(m *codec.SaleInit) {
			for len(m.Assets) <= types.MaxAcceptedAssets {
				a := m.Assets[0]
				a.Asset.Address[0] = byte(len(m.Assets))
				m.Assets = append(m.Assets, a)
			}
		},
		"兑换率为零":  func(m *codec.SaleInit) { m.Assets[0].ConversionRate = new(uint256.Int) },
		"上限为零":   func(m *codec.SaleInit) { m.Assets[1].Cap = new(uint256.Int) },
		"资产重复":   func(m *codec.SaleInit) { m.Assets[1].Asset = m.Assets[0].Asset },
		"结束早于开始": func(m *codec.SaleInit) { m.SaleEnd = uint256.NewInt(1) },
		"时间超出u64": func(m *codec.SaleInit) {
			m.SaleEnd = new(uint256.Int).Lsh(uint256.NewInt(1), 70)
		},
		"上限折算超过供应": func(m *codec.SaleInit) { m.TokenAmount = uint256.NewInt(100) },
		"分母溢出":     func(m *codec.SaleInit) { m.RateDecimals = 100 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := New(testutil.CustodianContext())
			store := testutil.NewMemoryEntityStore()
			msg := testutil.ScenarioSaleInit(testutil.SaleID(2))
			mutate(msg)

			_, err := r.Initialize(store, msg, testutil.ConductorProvenance(1))
			assert.ErrorIs(t, err, types.ErrMalformedSaleTerms)

			stored, err := store.GetSale(msg.ID)
			require.NoError(t, err)
			assert.Nil(t, stored)
		})
	}
}

func TestRecordContribution(t *testing.T) {
	r, store, sale := setup(t)
	a, b := testutil.Addr(0xa), testutil.Addr(0xb)

	sale, buyerA, err := r.RecordContribution(store, sale, a, 0, uint256.NewInt(600))
	require.NoError(t, err)
	assert.Equal(t, uint64(600), sale.Totals[0].Uint64())
	assert.Equal(t, uint64(600), buyerA.Contribution(0).Uint64())

	// 超出上限整体拒绝，状态不变
	_, _, err = r.RecordContribution(store, sale, b, 0, uint256.NewInt(500))
	assert.ErrorIs(t, err, types.ErrContributionCapExceeded)
	stored, err := Load(store, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), stored.Totals[0].Uint64())
	missing, err := store.GetBuyer(sale.ID, b)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// 恰好达到上限
	sale, _, err = r.RecordContribution(store, sale, b, 0, uint256.NewInt(400))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), sale.Totals[0].Uint64())
}

func TestRecordContribution_Rejections(t *testing.T) {
	r, store, sale := setup(t)
	buyer := testutil.Addr(0xa)

	_, _, err := r.RecordContribution(store, sale, buyer, 1, uint256.NewInt(1))
	assert.ErrorIs(t, err, types.ErrUnsupportedAsset, "外链资产不可在本链出资")

	_, _, err = r.RecordContribution(store, sale, buyer, 5, uint256.NewInt(1))
	assert.ErrorIs(t, err, types.ErrUnsupportedAsset)

	_, _, err = r.RecordContribution(store, sale, buyer, 0, new(uint256.Int))
	assert.ErrorIs(t, err, types.ErrZeroContribution)

	sealed, err := r.Seal(store, sale, testutil.ConductorProvenance(20))
	require.NoError(t, err)
	_, _, err = r.RecordContribution(store, sealed, buyer, 0, uint256.NewInt(1))
	assert.ErrorIs(t, err, types.ErrSaleNotOpen)
}

func TestSealAbort_MutuallyExclusive(t *testing.T) {
	r, store, sale := setup(t)

	sealed, err := r.Seal(store, sale, testutil.ConductorProvenance(20))
	require.NoError(t, err)
	assert.Equal(t, types.SaleStatusSealed, sealed.Status)
	require.NotNil(t, sealed.SealedSequence)
	assert.Equal(t, uint64(20), *sealed.SealedSequence)

	_, err = r.Seal(store, sealed, testutil.ConductorProvenance(21))
	assert.ErrorIs(t, err, types.ErrDuplicateSealMessage)
	_, err = r.Abort(store, sealed, testutil.ConductorProvenance(22))
	assert.ErrorIs(t, err, types.ErrDuplicateSealMessage)

	stored, err := Load(store, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, types.SaleStatusSealed, stored.Status)
	assert.Nil(t, stored.AbortedSequence)
}

func TestAbort_StaleSequence(t *testing.T) {
	r, store, sale := setup(t)

	_, err := r.Abort(store, sale, testutil.ConductorProvenance(10))
	assert.ErrorIs(t, err, types.ErrDuplicateSealMessage)

	aborted, err := r.Abort(store, sale, testutil.ConductorProvenance(11))
	require.NoError(t, err)
	assert.Equal(t, types.SaleStatusAborted, aborted.Status)
	assert.Equal(t, uint64(11), *aborted.AbortedSequence)
}

func TestMarkSwept(t *testing.T) {
	r, store, sale := setup(t)

	_, err := r.MarkSwept(store, sale, 0)
	assert.ErrorIs(t, err, types.ErrSaleNotSealed)

	sealed, err := r.Seal(store, sale, testutil.ConductorProvenance(20))
	require.NoError(t, err)

	_, err = r.MarkSwept(store, sealed, 1)
	assert.ErrorIs(t, err, types.ErrUnsupportedAsset)

	swept, err := r.MarkSwept(store, sealed, 0)
	require.NoError(t, err)
	assert.True(t, swept.Swept[0])

	_, err = r.MarkSwept(store, swept, 0)
	assert.ErrorIs(t, err, types.ErrAlreadySwept)
}
