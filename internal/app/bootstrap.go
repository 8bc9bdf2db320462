package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/weisyn/contributor/internal/api"
	config "github.com/weisyn/contributor/internal/config"
	"github.com/weisyn/contributor/internal/core/contributor"
	"github.com/weisyn/contributor/internal/core/infrastructure/event"
	log "github.com/weisyn/contributor/internal/core/infrastructure/log"
	"github.com/weisyn/contributor/internal/core/infrastructure/storage"
	configiface "github.com/weisyn/contributor/pkg/interfaces/config"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 基础设施层：配置、日志、事件、存储
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configiface.AppOptions { return b.opts }),
		config.Module(),
		log.Module(),
		event.Module(),
		storage.Module(),
	}
}

// SetupBusinessLayer 业务层：出资方核心
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	modules := []fx.Option{contributor.Module()}
	if v := b.opts.tokenVault; v != nil {
		modules = append(modules, fx.Provide(fx.Annotate(
			func() contributoriface.TokenVault { return v },
			fx.ResultTags(`name:"`+contributor.ExternalVaultName+`"`),
		)))
	}
	return modules
}

// SetupApplicationLayer 应用层：对外接口
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	if !b.opts.enableAPI {
		return nil
	}
	return []fx.Option{api.Module()}
}

// SetupModules 按依赖顺序组装所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var modules []fx.Option
	modules = append(modules, b.SetupInfrastructureLayer()...)
	modules = append(modules, b.SetupBusinessLayer()...)
	modules = append(modules, b.SetupApplicationLayer()...)
	return modules
}

// CreateFxApp 创建fx应用
func (b *Bootstrap) CreateFxApp(extra ...fx.Option) error {
	appOptions := []fx.Option{
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
	}
	appOptions = append(appOptions, extra...)

	b.fxApp = fx.New(appOptions...)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("装配应用失败: %w", err)
	}
	return nil
}

// StartApp 启动fx应用
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if b.fxApp == nil {
		return fmt.Errorf("应用尚未创建")
	}
	return b.fxApp.Start(ctx)
}

// StopApp 停止fx应用
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if b.fxApp == nil {
		return nil
	}
	return b.fxApp.Stop(ctx)
}
