// Package storage 存储模块：提供BadgerDB事务型键值存储
package storage

import (
	"context"
	"fmt"

	badgerconfig "github.com/weisyn/contributor/internal/config/storage/badger"
	"github.com/weisyn/contributor/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/contributor/pkg/interfaces/config"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleParams 存储模块依赖
type ModuleParams struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Logger    log.Logger      // 日志记录器
	Lifecycle fx.Lifecycle
}

// ModuleOutput 存储模块输出
type ModuleOutput struct {
	fx.Out

	BadgerStore storageInterface.BadgerStore // BadgerDB存储（必需，失败即错误）
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 打开BadgerDB并注册关闭钩子
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := params.Logger.With("module", "storage")

	store, err := badger.New(badgerconfig.NewFromOptions(params.Provider.GetBadger()), logger)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建BadgerDB存储失败: %w", err)
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("正在关闭存储服务...")
			return store.Close()
		},
	})

	return ModuleOutput{BadgerStore: store}, nil
}
