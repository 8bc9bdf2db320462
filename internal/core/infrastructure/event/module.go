package event

import (
	"context"

	"go.uber.org/fx"

	eventconfig "github.com/weisyn/contributor/internal/config/event"
	"github.com/weisyn/contributor/pkg/interfaces/config"
	eventInterface "github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle    // 生命周期管理
}

// ModuleOutput 事件模块输出
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 基础事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideEventBus),
	)
}

// ProvideEventBus 创建事件总线并注册生命周期钩子
func ProvideEventBus(input ModuleInput) (ModuleOutput, error) {
	bus := New(eventconfig.NewFromOptions(input.Provider.GetEvent()))

	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "event")
	}

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if logger != nil {
				logger.Info("事件总线启动")
			}
			return bus.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			if logger != nil {
				logger.Infof("事件总线停止，累计发布 %d 个事件", bus.Published())
			}
			return bus.Stop(ctx)
		},
	})

	return ModuleOutput{EventBus: bus}, nil
}
