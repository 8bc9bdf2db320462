// Package vault 开发用内存代币金库
//
// 生产环境中代币托管由链上金库完成；这里的实现只维护余额表，
// 供本地运行与测试使用。
package vault

import (
	"context"
	"sync"

	"github.com/holiman/uint256"

	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

var _ contributoriface.TokenVault = (*MemoryVault)(nil)

// CodeInsufficientBalance 余额不足的错误码
var CodeInsufficientBalance = types.ErrorCode("InsufficientBalance")

type balanceKey struct {
	asset types.AssetID
	owner types.Address32
}

// MemoryVault 内存余额表
type MemoryVault struct {
	mu        sync.Mutex
	balances  map[balanceKey]*uint256.Int
	overdraft bool
	logger    log.Logger
}

// NewMemoryVault 创建内存金库；overdraft 为true时转出方余额不足按需补足
func NewMemoryVault(overdraft bool, logger log.Logger) *MemoryVault {
	return &MemoryVault{
		balances:  make(map[balanceKey]*uint256.Int),
		overdraft: overdraft,
		logger:    logger,
	}
}

// Deposit 为地址记入余额（仅用于开发与测试）
func (v *MemoryVault) Deposit(asset types.AssetID, owner types.Address32, amount *uint256.Int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	k := balanceKey{asset, owner}
	v.balances[k] = new(uint256.Int).Add(v.balanceLocked(k), amount)
}

// Transfer 划转余额
func (v *MemoryVault) Transfer(ctx context.Context, asset types.AssetID, from, to types.Address32, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	fk, tk := balanceKey{asset, from}, balanceKey{asset, to}
	fromBalance := v.balanceLocked(fk)
	if fromBalance.Lt(amount) {
		if !v.overdraft {
			return &types.ContributorError{
				Code:     CodeInsufficientBalance,
				Category: types.CategoryAccounting,
				Message:  "金库余额不足",
				Detail:   "asset=" + asset.String() + " owner=" + from.Hex(),
			}
		}
		fromBalance = amount.Clone()
	}

	v.balances[fk] = new(uint256.Int).Sub(fromBalance, amount)
	v.balances[tk] = new(uint256.Int).Add(v.balanceLocked(tk), amount)
	if v.logger != nil {
		v.logger.Debugf("金库划转 asset=%s from=%s to=%s amount=%s", asset, from.Hex(), to.Hex(), amount)
	}
	return nil
}

// BalanceOf 查询余额
func (v *MemoryVault) BalanceOf(ctx context.Context, asset types.AssetID, owner types.Address32) (*uint256.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balanceLocked(balanceKey{asset, owner}).Clone(), nil
}

func (v *MemoryVault) balanceLocked(k balanceKey) *uint256.Int {
	if b, ok := v.balances[k]; ok {
		return b
	}
	return new(uint256.Int)
}
