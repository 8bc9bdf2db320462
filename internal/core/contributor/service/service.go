// Package service 出资方边界操作
//
// 每个写操作都在一个仓储事务中完成：任何一步被拒绝，事务整体丢弃，
// 实体保持调用前的状态。同一销售的写操作按销售ID串行化，
// 不同销售之间完全并行。
//
// 资金移动顺序：
//   - 出资：先由金库完成 出资人→托管 的划转，再提交账本；
//   - 领取/划转：先提交 Claimed/Swept 标记，再交给金库执行，
//     金库失败不回退标记。
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/holiman/uint256"

	"github.com/weisyn/contributor/internal/core/contributor/allocation"
	"github.com/weisyn/contributor/internal/core/contributor/attestation"
	"github.com/weisyn/contributor/internal/core/contributor/custodian"
	"github.com/weisyn/contributor/internal/core/contributor/kyc"
	"github.com/weisyn/contributor/internal/core/contributor/registry"
	"github.com/weisyn/contributor/internal/core/contributor/verifier"
	"github.com/weisyn/contributor/pkg/constants/events"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

var _ contributoriface.Service = (*Service)(nil)

// cachedSaleReader 支持缓存读取的仓储
type cachedSaleReader interface {
	CachedSale(ctx context.Context, id types.SaleID) (*types.Sale, error)
}

// Service 出资方核心服务
type Service struct {
	custodian custodian.Context
	verifier  *verifier.Verifier
	registry  *registry.Registry

	repo      contributoriface.Repository
	vault     contributoriface.TokenVault
	transport contributoriface.Transport
	eventBus  event.EventBus
	logger    log.Logger

	locks       *saleLocks
	custodianMu sync.Mutex
}

// New 创建出资方服务；eventBus 与 logger 可为nil
func New(
	ctx custodian.Context,
	repo contributoriface.Repository,
	vault contributoriface.TokenVault,
	transport contributoriface.Transport,
	eventBus event.EventBus,
	logger log.Logger,
) *Service {
	return &Service{
		custodian: ctx,
		verifier:  verifier.New(ctx),
		registry:  registry.New(ctx),
		repo:      repo,
		vault:     vault,
		transport: transport,
		eventBus:  eventBus,
		logger:    logger,
		locks:     newSaleLocks(),
	}
}

// InitializeCustodian 设置托管所有者，只能执行一次
func (s *Service) InitializeCustodian(ctx context.Context, owner types.Address32) (result *types.Custodian, err error) {
	defer func(start time.Time) { observe("initialize_custodian", start, err) }(time.Now())

	if owner.IsZero() {
		return nil, types.ErrInvalidArgument.WithDetail("托管所有者不能为零地址")
	}
	// 并发初始化时第二个调用应看到已初始化，而不是事务冲突
	s.custodianMu.Lock()
	defer s.custodianMu.Unlock()

	err = s.repo.Update(ctx, func(store contributoriface.EntityStore) error {
		var err error
		result, err = custodian.Initialize(store, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.infof("托管方已初始化 owner=%s", owner.Hex())
	return result, nil
}

// InitializeSale 根据指挥方的初始化消息登记销售
func (s *Service) InitializeSale(ctx context.Context, msg *types.InboundMessage) (sale *types.Sale, err error) {
	defer func(start time.Time) { observe("initialize_sale", start, err) }(time.Now())

	decoded, err := s.verifier.VerifySaleInit(msg)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(decoded.ID)
	defer unlock()

	err = s.repo.Update(ctx, func(store contributoriface.EntityStore) error {
		var err error
		sale, err = s.registry.Initialize(store, decoded, msg.Provenance)
		return err
	})
	if err != nil {
		return nil, err
	}

	salesByStatus.WithLabelValues(sale.Status.String()).Inc()
	s.publish(events.EventTypeSaleInitialized, sale.ID, sale.Clone())
	s.infof("销售已登记 sale=%s assets=%d seq=%d", sale.ID.Hex(), len(sale.AcceptedAssets), sale.InitSequence)
	return sale, nil
}

// Contribute 记录一笔出资
//
// 所有校验通过后在事务内执行金库划转，之后提交账本；
// 若提交失败则把已划转的资金退回出资人。请求上下文已取消时不再划转，
// 回退划转不受请求上下文取消的影响。
func (s *Service) Contribute(ctx context.Context, req *contributoriface.ContributeRequest) (buyer *types.Buyer, err error) {
	defer func(start time.Time) { observe("contribute", start, err) }(time.Now())

	if req == nil {
		return nil, types.ErrInvalidArgument.WithDetail("出资请求为空")
	}
	if req.Buyer.IsZero() {
		return nil, types.ErrInvalidArgument.WithDetail("出资人不能为零地址")
	}

	unlock := s.locks.lock(req.SaleID)
	defer unlock()

	var (
		transferred bool
		asset       types.AssetID
		custody     types.Address32
	)
	err = s.repo.Update(ctx, func(store contributoriface.EntityStore) error {
		c, err := custodian.Require(store)
		if err != nil {
			return err
		}
		custody = c.Owner

		sale, err := registry.Load(store, req.SaleID)
		if err != nil {
			return err
		}
		prior, err := store.GetBuyer(sale.ID, req.Buyer)
		if err != nil {
			return err
		}

		_, next, err := s.registry.RecordContribution(store, sale, req.Buyer, req.AssetIndex, req.Amount)
		if err != nil {
			return err
		}
		if err := kyc.VerifyContribution(sale, req.AssetIndex, req.Amount, req.Buyer, prior.Contribution(req.AssetIndex), req.KycSignature); err != nil {
			return err
		}

		asset = sale.AcceptedAssets[req.AssetIndex].Asset
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("出资请求已取消: %w", err)
		}
		if err := s.vault.Transfer(ctx, asset, req.Buyer, custody, req.Amount); err != nil {
			return fmt.Errorf("金库划转失败: %w", err)
		}
		transferred = true
		buyer = next
		return nil
	})
	if err != nil {
		if transferred {
			s.compensate(context.WithoutCancel(ctx), asset, custody, req.Buyer, req.Amount)
		}
		return nil, err
	}

	s.publish(events.EventTypeContributionRecorded, req.SaleID, buyer.Clone())
	s.debugf("出资已入账 sale=%s buyer=%s asset=%d amount=%s",
		req.SaleID.Hex(), req.Buyer.Hex(), req.AssetIndex, req.Amount)
	return buyer, nil
}

// compensate 账本提交失败时退回已划转的出资
func (s *Service) compensate(ctx context.Context, asset types.AssetID, custody, buyer types.Address32, amount *uint256.Int) {
	if err := s.vault.Transfer(ctx, asset, custody, buyer, amount); err != nil {
		vaultFailures.WithLabelValues("compensate").Inc()
		s.errorf("出资回退失败 asset=%s buyer=%s amount=%s: %v", asset, buyer.Hex(), amount, err)
	}
}

// ReportAttestation 生成出资汇总并交给出站传输
func (s *Service) ReportAttestation(ctx context.Context, id types.SaleID) (msg *types.OutboundMessage, err error) {
	defer func(start time.Time) { observe("report_attestation", start, err) }(time.Now())

	err = s.repo.View(ctx, func(store contributoriface.EntityStore) error {
		sale, err := registry.Load(store, id)
		if err != nil {
			return err
		}
		msg, err = attestation.Build(sale, s.custodian)
		return err
	})
	if err != nil {
		return nil, err
	}

	seq, err := s.transport.Publish(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("发布出资汇总失败: %w", err)
	}
	msg.Sequence = seq
	return msg, nil
}

// ApplySeal 应用指挥方的封存消息
func (s *Service) ApplySeal(ctx context.Context, msg *types.InboundMessage) (sale *types.Sale, err error) {
	defer func(start time.Time) { observe("apply_seal", start, err) }(time.Now())

	decoded, err := s.verifier.VerifySaleSealed(msg, nil)
	if err != nil {
		return nil, err
	}
	sale, err = s.transition(ctx, msg, decoded.ID, types.PayloadSaleSealed, s.registry.Seal)
	if err != nil {
		return nil, err
	}
	salesByStatus.WithLabelValues(sale.Status.String()).Inc()
	s.publish(events.EventTypeSaleSealed, sale.ID, sale.Clone())
	s.infof("销售已封存 sale=%s seq=%d", sale.ID.Hex(), *sale.SealedSequence)
	return sale, nil
}

// ApplyAbort 应用指挥方的中止消息
func (s *Service) ApplyAbort(ctx context.Context, msg *types.InboundMessage) (sale *types.Sale, err error) {
	defer func(start time.Time) { observe("apply_abort", start, err) }(time.Now())

	decoded, err := s.verifier.VerifySaleAborted(msg, nil)
	if err != nil {
		return nil, err
	}
	sale, err = s.transition(ctx, msg, decoded.ID, types.PayloadSaleAborted, s.registry.Abort)
	if err != nil {
		return nil, err
	}
	salesByStatus.WithLabelValues(sale.Status.String()).Inc()
	s.publish(events.EventTypeSaleAborted, sale.ID, sale.Clone())
	s.infof("销售已中止 sale=%s seq=%d", sale.ID.Hex(), *sale.AbortedSequence)
	return sale, nil
}

type transitionFunc func(store contributoriface.EntityStore, sale *types.Sale, prov types.Provenance) (*types.Sale, error)

func (s *Service) transition(ctx context.Context, msg *types.InboundMessage, id types.SaleID, expected types.PayloadID, apply transitionFunc) (*types.Sale, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	var result *types.Sale
	err := s.repo.Update(ctx, func(store contributoriface.EntityStore) error {
		sale, err := registry.Load(store, id)
		if err != nil {
			return err
		}
		if _, err := s.verifier.Verify(msg, expected, sale); err != nil {
			return err
		}
		result, err = apply(store, sale, msg.Provenance)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Claim 结算出资人的分配或退款
//
// Claimed 标记先于金库划转提交；划转失败时返回已提交的结算指令与错误，
// 再次领取会得到 ErrAlreadyClaimed。
func (s *Service) Claim(ctx context.Context, id types.SaleID, owner types.Address32) (instruction *types.SettlementInstruction, err error) {
	defer func(start time.Time) { observe("claim", start, err) }(time.Now())

	unlock := s.locks.lock(id)
	defer unlock()

	err = s.repo.Update(ctx, func(store contributoriface.EntityStore) error {
		c, err := custodian.Require(store)
		if err != nil {
			return err
		}
		sale, err := registry.Load(store, id)
		if err != nil {
			return err
		}
		buyer, err := store.GetBuyer(id, owner)
		if err != nil {
			return err
		}
		claimed, ins, err := allocation.Settle(sale, buyer, c.Owner)
		if err != nil {
			return err
		}
		if err := store.PutBuyer(claimed); err != nil {
			return err
		}
		instruction = ins
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.EventTypeBuyerSettled, id, instruction)
	for _, tr := range instruction.Transfers {
		if err := s.vault.Transfer(ctx, tr.Asset, tr.From, tr.To, tr.Amount); err != nil {
			vaultFailures.WithLabelValues("claim").Inc()
			s.errorf("结算划转失败 sale=%s buyer=%s asset=%s: %v", id.Hex(), owner.Hex(), tr.Asset, err)
			return instruction, fmt.Errorf("结算已记录，金库划转失败: %w", err)
		}
	}
	s.infof("出资人已结算 sale=%s buyer=%s kind=%s transfers=%d", id.Hex(), owner.Hex(), instruction.Kind, len(instruction.Transfers))
	return instruction, nil
}

// SweepContributions 销售封存后将某资产的募集总额划给销售接收方
func (s *Service) SweepContributions(ctx context.Context, id types.SaleID, assetIndex uint8) (transfer *types.TransferInstruction, err error) {
	defer func(start time.Time) { observe("sweep", start, err) }(time.Now())

	unlock := s.locks.lock(id)
	defer unlock()

	err = s.repo.Update(ctx, func(store contributoriface.EntityStore) error {
		c, err := custodian.Require(store)
		if err != nil {
			return err
		}
		sale, err := registry.Load(store, id)
		if err != nil {
			return err
		}
		swept, err := s.registry.MarkSwept(store, sale, assetIndex)
		if err != nil {
			return err
		}
		transfer, err = allocation.SweepInstruction(swept, assetIndex, c.Owner)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.EventTypeContributionsSwept, id, transfer)
	if err := s.vault.Transfer(ctx, transfer.Asset, transfer.From, transfer.To, transfer.Amount); err != nil {
		vaultFailures.WithLabelValues("sweep").Inc()
		s.errorf("募集划转失败 sale=%s asset=%d: %v", id.Hex(), assetIndex, err)
		return transfer, fmt.Errorf("划转已记录，金库划转失败: %w", err)
	}
	return transfer, nil
}

// GetSale 查询销售
func (s *Service) GetSale(ctx context.Context, id types.SaleID) (*types.Sale, error) {
	var (
		sale *types.Sale
		err  error
	)
	if reader, ok := s.repo.(cachedSaleReader); ok {
		sale, err = reader.CachedSale(ctx, id)
	} else {
		err = s.repo.View(ctx, func(store contributoriface.EntityStore) error {
			var err error
			sale, err = store.GetSale(id)
			return err
		})
	}
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, types.ErrSaleNotFound.WithDetail("%s", id.Hex())
	}
	return sale, nil
}

// GetBuyer 查询出资记录
func (s *Service) GetBuyer(ctx context.Context, id types.SaleID, owner types.Address32) (*types.Buyer, error) {
	var buyer *types.Buyer
	err := s.repo.View(ctx, func(store contributoriface.EntityStore) error {
		var err error
		buyer, err = store.GetBuyer(id, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, types.ErrBuyerNotFound.WithDetail("sale=%s buyer=%s", id.Hex(), owner.Hex())
	}
	return buyer, nil
}

// ListBuyers 查询销售的全部出资记录
func (s *Service) ListBuyers(ctx context.Context, id types.SaleID) ([]*types.Buyer, error) {
	var buyers []*types.Buyer
	err := s.repo.View(ctx, func(store contributoriface.EntityStore) error {
		if _, err := registry.Load(store, id); err != nil {
			return err
		}
		var err error
		buyers, err = store.ListBuyers(id)
		return err
	})
	return buyers, err
}

// GetCustodian 查询托管方
func (s *Service) GetCustodian(ctx context.Context) (*types.Custodian, error) {
	var c *types.Custodian
	err := s.repo.View(ctx, func(store contributoriface.EntityStore) error {
		var err error
		c, err = custodian.Require(store)
		return err
	})
	return c, err
}

// CustodianContext 返回托管方上下文
func (s *Service) CustodianContext() custodian.Context {
	return s.custodian
}

func (s *Service) publish(eventType types.EventType, id types.SaleID, data interface{}) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.PublishEvent(&types.ContributorEvent{
		EventType: eventType,
		SaleID:    id,
		Data:      data,
	})
}

func (s *Service) infof(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Infof(format, args...)
	}
}

func (s *Service) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debugf(format, args...)
	}
}

func (s *Service) errorf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Errorf(format, args...)
	}
}
