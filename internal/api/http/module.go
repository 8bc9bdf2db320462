package http

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/contributor/pkg/interfaces/config"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
)

// ModuleParams HTTP模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Provider    config.Provider
	Logger      log.Logger
	Service     contributoriface.Service
	BadgerStore storage.BadgerStore
	EventBus    event.EventBus `optional:"true"`
}

// Module 返回HTTP模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建HTTP服务器；配置关闭时不注册启动钩子
func ProvideServer(params ModuleParams) (*Server, error) {
	logger := params.Logger.With("module", "http")
	cfg := params.Provider.GetAPI().HTTP

	server, err := NewServer(cfg, logger, params.Service, params.BadgerStore, params.EventBus)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		logger.Info("HTTP API 已在配置中禁用")
		return server, nil
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server, nil
}
