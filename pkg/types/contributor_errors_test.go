package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributorError_IsByCode(t *testing.T) {
	err := ErrContributionCapExceeded.WithDetail("asset=%d", 1)

	// 附带细节后仍与哨兵错误相等
	assert.ErrorIs(t, err, ErrContributionCapExceeded)
	assert.NotErrorIs(t, err, ErrZeroContribution)

	wrapped := fmt.Errorf("出资失败: %w", err)
	assert.ErrorIs(t, wrapped, ErrContributionCapExceeded)

	ce, ok := AsContributorError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CategoryAccounting, ce.Category)
	assert.Contains(t, ce.Error(), "asset=1")

	_, ok = AsContributorError(errors.New("plain"))
	assert.False(t, ok)
}

func TestContributorError_WithDetailDoesNotMutateSentinel(t *testing.T) {
	_ = ErrSaleNotOpen.WithDetail("x")
	assert.Empty(t, ErrSaleNotOpen.Detail)
}
