package ledger

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/contributor/pkg/types"
)

var (
	saleID = types.SaleID{1}
	owner  = types.Address32{2}
)

func TestAdd_CreatesBuyerLazily(t *testing.T) {
	b, err := Add(nil, saleID, owner, 2, 1, uint256.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, saleID, b.SaleID)
	assert.Equal(t, owner, b.Owner)
	assert.False(t, b.Claimed)
	assert.Equal(t, uint64(0), b.Contribution(0).Uint64())
	assert.Equal(t, uint64(50), b.Contribution(1).Uint64())
}

func TestAdd_Accumulates(t *testing.T) {
	b, err := Add(nil, saleID, owner, 1, 0, uint256.NewInt(10))
	require.NoError(t, err)
	next, err := Add(b, saleID, owner, 1, 0, uint256.NewInt(5))
	require.NoError(t, err)

	assert.Equal(t, uint64(15), next.Contribution(0).Uint64())
	// 原记录不变
	assert.Equal(t, uint64(10), b.Contribution(0).Uint64())
}

func TestAdd_Rejections(t *testing.T) {
	_, err := Add(nil, saleID, owner, 1, 0, new(uint256.Int))
	assert.ErrorIs(t, err, types.ErrZeroContribution)

	_, err = Add(nil, saleID, owner, 1, 0, nil)
	assert.ErrorIs(t, err, types.ErrZeroContribution)

	_, err = Add(nil, saleID, owner, 1, 3, uint256.NewInt(1))
	assert.ErrorIs(t, err, types.ErrUnsupportedAsset)

	maxAmount := new(uint256.Int).SetAllOne()
	b, err := Add(nil, saleID, owner, 1, 0, maxAmount)
	require.NoError(t, err)
	_, err = Add(b, saleID, owner, 1, 0, uint256.NewInt(1))
	assert.ErrorIs(t, err, types.ErrAmountOverflow)
}
