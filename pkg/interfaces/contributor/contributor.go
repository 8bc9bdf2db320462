// Package contributor 定义出资方核心对外的接口
//
// 核心本身只做会计与授权决策：实体持久化、代币划转与跨链传输都由外部协作方实现，
// 这里只声明它们的契约。
package contributor

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/weisyn/contributor/pkg/types"
)

// EntityStore 单个事务内可见的实体视图
// 查询不存在的实体时返回 nil, nil
type EntityStore interface {
	GetSale(id types.SaleID) (*types.Sale, error)
	PutSale(sale *types.Sale) error

	GetBuyer(id types.SaleID, owner types.Address32) (*types.Buyer, error)
	PutBuyer(buyer *types.Buyer) error
	// ListBuyers 按所有者地址升序返回某个销售的全部出资记录
	ListBuyers(id types.SaleID) ([]*types.Buyer, error)

	GetCustodian() (*types.Custodian, error)
	PutCustodian(custodian *types.Custodian) error
}

// Repository 实体仓储
//
// Update 中 fn 返回错误时所有写入被丢弃，实体保持调用前的状态。
type Repository interface {
	View(ctx context.Context, fn func(store EntityStore) error) error
	Update(ctx context.Context, fn func(store EntityStore) error) error
}

// TokenVault 外部代币金库
type TokenVault interface {
	Transfer(ctx context.Context, asset types.AssetID, from, to types.Address32, amount *uint256.Int) error
	BalanceOf(ctx context.Context, asset types.AssetID, owner types.Address32) (*uint256.Int, error)
}

// Transport 出站跨链传输，返回传输层分配的序号
type Transport interface {
	Publish(ctx context.Context, msg *types.OutboundMessage) (uint64, error)
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	SaleID       types.SaleID
	Buyer        types.Address32
	AssetIndex   uint8
	Amount       *uint256.Int
	KycSignature []byte // 销售未启用KYC时忽略
}

// Service 出资方边界操作
//
// 每个操作要么完整提交，要么不产生任何影响。
type Service interface {
	InitializeCustodian(ctx context.Context, owner types.Address32) (*types.Custodian, error)
	InitializeSale(ctx context.Context, msg *types.InboundMessage) (*types.Sale, error)
	Contribute(ctx context.Context, req *ContributeRequest) (*types.Buyer, error)
	ReportAttestation(ctx context.Context, id types.SaleID) (*types.OutboundMessage, error)
	ApplySeal(ctx context.Context, msg *types.InboundMessage) (*types.Sale, error)
	ApplyAbort(ctx context.Context, msg *types.InboundMessage) (*types.Sale, error)
	Claim(ctx context.Context, id types.SaleID, buyer types.Address32) (*types.SettlementInstruction, error)
	SweepContributions(ctx context.Context, id types.SaleID, assetIndex uint8) (*types.TransferInstruction, error)

	GetSale(ctx context.Context, id types.SaleID) (*types.Sale, error)
	GetBuyer(ctx context.Context, id types.SaleID, owner types.Address32) (*types.Buyer, error)
	ListBuyers(ctx context.Context, id types.SaleID) ([]*types.Buyer, error)
	GetCustodian(ctx context.Context) (*types.Custodian, error)
}
