// Package contributor 出资方核心的依赖注入装配
//
// 组装顺序：托管上下文 → 销售缓存 → 实体仓储 → 金库 → 出站传输 → 核心服务，
// 配置了Redis时再挂上出站中继。
// 指挥链身份只从配置读取一次，再显式传入各组件。
package contributor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"

	cacheconfig "github.com/weisyn/contributor/internal/config/cache"
	eventconfig "github.com/weisyn/contributor/internal/config/event"
	"github.com/weisyn/contributor/internal/core/contributor/custodian"
	"github.com/weisyn/contributor/internal/core/contributor/emitter"
	"github.com/weisyn/contributor/internal/core/contributor/relay"
	"github.com/weisyn/contributor/internal/core/contributor/repository"
	"github.com/weisyn/contributor/internal/core/contributor/service"
	"github.com/weisyn/contributor/internal/core/contributor/vault"
	"github.com/weisyn/contributor/pkg/interfaces/config"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
)

// ModuleInput 出资方模块输入依赖
type ModuleInput struct {
	fx.In

	Provider    config.Provider
	Logger      log.Logger
	BadgerStore storage.BadgerStore
	EventBus    event.EventBus `optional:"true"`
	Lifecycle   fx.Lifecycle

	// 外部代币金库；prod 环境必须提供
	ExternalVault contributoriface.TokenVault `name:"external_vault" optional:"true"`
}

// ExternalVaultName 外部金库的注入名
const ExternalVaultName = "external_vault"

// ErrExternalVaultRequired 生产环境未接入外部金库
var ErrExternalVaultRequired = errors.New("生产环境必须接入外部代币金库")

// ModuleOutput 出资方模块输出
type ModuleOutput struct {
	fx.Out

	Service    contributoriface.Service
	Repository contributoriface.Repository
	Vault      contributoriface.TokenVault
	Transport  contributoriface.Transport
	Emitter    *emitter.Emitter
}

// Module 返回出资方核心模块
func Module() fx.Option {
	return fx.Module("contributor",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 构建出资方核心服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	logger := input.Logger.With("module", "contributor")

	opts := input.Provider.GetContributor()
	ctx := custodian.FromOptions(opts)

	tokenVault, err := selectVault(input, opts.VaultOverdraft, logger)
	if err != nil {
		return ModuleOutput{}, err
	}

	cache, err := repository.NewSaleCache(cacheconfig.NewFromOptions(input.Provider.GetCache()), logger.With("component", "sale_cache"))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建销售缓存失败: %w", err)
	}

	repo := repository.New(input.BadgerStore, cache, logger.With("component", "repository"))

	bufferSize := eventconfig.NewFromOptions(input.Provider.GetEvent()).GetBufferSize()
	em := emitter.New(input.EventBus, logger.With("component", "emitter"), bufferSize)

	svc := service.New(ctx, repo, tokenVault, em, input.EventBus, logger)

	var outboundRelay *relay.Relay
	if relayOpts := input.Provider.GetRelay(); relayOpts.Enabled {
		if input.EventBus == nil {
			return ModuleOutput{}, fmt.Errorf("启用出站中继需要事件总线")
		}
		outboundRelay, err = relay.New(relayOpts, input.EventBus, logger.With("component", "relay"))
		if err != nil {
			return ModuleOutput{}, fmt.Errorf("创建出站中继失败: %w", err)
		}
	}

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Infof("出资方核心启动 local_chain=%d conductor=%d:%s",
				ctx.LocalChain, ctx.ConductorChain, ctx.ConductorAddress.Hex())
			if outboundRelay != nil {
				return outboundRelay.Start()
			}
			return nil
		},
		OnStop: func(context.Context) error {
			if outboundRelay != nil {
				if err := outboundRelay.Stop(); err != nil {
					logger.Warnf("关闭出站中继失败: %v", err)
				}
			}
			return cache.Close()
		},
	})

	return ModuleOutput{
		Service:    svc,
		Repository: repo,
		Vault:      tokenVault,
		Transport:  em,
		Emitter:    em,
	}, nil
}

// selectVault 优先使用外部金库；非 prod 环境回退到内存金库
func selectVault(input ModuleInput, overdraft bool, logger log.Logger) (contributoriface.TokenVault, error) {
	if input.ExternalVault != nil {
		return input.ExternalVault, nil
	}
	if input.Provider.GetEnvironment() == "prod" {
		return nil, ErrExternalVaultRequired
	}
	if overdraft {
		logger.Warn("开发金库允许透支，仅用于开发环境")
	}
	return vault.NewMemoryVault(overdraft, logger.With("component", "vault")), nil
}
