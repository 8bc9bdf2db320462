// Package custodian 托管方上下文
//
// 可信的指挥链身份与本链ID在部署时确定，以值的形式显式传递给校验器，
// 测试可以直接构造一个假的指挥方而不影响其他组件。托管所有者单独持久化，
// 且只能初始化一次。
package custodian

import (
	"github.com/weisyn/contributor/internal/config/contributor"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/types"
)

// Context 托管方上下文
type Context struct {
	ConductorChain   types.ChainID
	ConductorAddress types.Address32
	LocalChain       types.ChainID
}

// New 构造上下文
func New(conductorChain types.ChainID, conductorAddress types.Address32, localChain types.ChainID) Context {
	return Context{
		ConductorChain:   conductorChain,
		ConductorAddress: conductorAddress,
		LocalChain:       localChain,
	}
}

// FromOptions 从出资方配置构造上下文
func FromOptions(opts *contributor.ContributorOptions) Context {
	return New(opts.ConductorChainID, opts.ConductorAddress, opts.ChainID)
}

// IsConductor 来源是否为可信的指挥合约
func (c Context) IsConductor(p types.Provenance) bool {
	return p.EmitterChain == c.ConductorChain && p.EmitterAddress == c.ConductorAddress
}

// IsLocal 资产是否可在本链收取
func (c Context) IsLocal(asset types.AssetID) bool {
	return asset.Chain == c.LocalChain
}

// Initialize 持久化托管所有者，重复初始化返回 ErrCustodianAlreadyInitialized
func Initialize(store contributoriface.EntityStore, owner types.Address32) (*types.Custodian, error) {
	existing, err := store.GetCustodian()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, types.ErrCustodianAlreadyInitialized
	}
	c := &types.Custodian{Owner: owner}
	if err := store.PutCustodian(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Require 读取托管方记录，不存在时返回 ErrCustodianNotInitialized
func Require(store contributoriface.EntityStore) (*types.Custodian, error) {
	c, err := store.GetCustodian()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, types.ErrCustodianNotInitialized
	}
	return c, nil
}
