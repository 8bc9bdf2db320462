package vault

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/contributor/pkg/types"
)

var (
	asset = types.AssetID{Chain: 2, Address: types.Address32{1}}
	alice = types.Address32{0xa}
	bob   = types.Address32{0xb}
)

func TestMemoryVault_Transfer(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault(false, nil)
	v.Deposit(asset, alice, uint256.NewInt(100))

	require.NoError(t, v.Transfer(ctx, asset, alice, bob, uint256.NewInt(40)))

	a, _ := v.BalanceOf(ctx, asset, alice)
	b, _ := v.BalanceOf(ctx, asset, bob)
	assert.Equal(t, uint64(60), a.Uint64())
	assert.Equal(t, uint64(40), b.Uint64())

	err := v.Transfer(ctx, asset, bob, alice, uint256.NewInt(41))
	ce, ok := types.AsContributorError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInsufficientBalance, ce.Code)

	b, _ = v.BalanceOf(ctx, asset, bob)
	assert.Equal(t, uint64(40), b.Uint64())
}

func TestMemoryVault_Overdraft(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault(true, nil)

	require.NoError(t, v.Transfer(ctx, asset, alice, bob, uint256.NewInt(5)))
	a, _ := v.BalanceOf(ctx, asset, alice)
	b, _ := v.BalanceOf(ctx, asset, bob)
	assert.True(t, a.IsZero())
	assert.Equal(t, uint64(5), b.Uint64())
}
