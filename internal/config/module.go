// Package config 提供应用配置管理功能
package config

import (
	"fmt"

	"github.com/weisyn/contributor/internal/config/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/config"
	"github.com/weisyn/contributor/pkg/types"
	"go.uber.org/fx"
)

// ConfigParams 定义配置模块的依赖参数
type ConfigParams struct {
	fx.In

	// 应用配置选项
	AppOptions config.AppOptions `optional:"true"`
}

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	// 配置提供者
	Provider config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			// 提供具体的配置类型用于依赖注入
			func(provider config.Provider) *contributor.ContributorOptions {
				return provider.GetContributor()
			},
		),
	)
}

// ProvideConfigServices 提供配置服务
func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}

	provider := NewProvider(appConfig)
	if err := provider.Validate(); err != nil {
		return ConfigOutput{}, fmt.Errorf("配置校验失败: %w", err)
	}

	return ConfigOutput{
		Provider: provider,
	}, nil
}

// staticAppOptions 以固定的AppConfig实现AppOptions
type staticAppOptions struct {
	appConfig *types.AppConfig
}

func (s staticAppOptions) GetAppConfig() *types.AppConfig { return s.appConfig }

// NewAppOptions 包装已加载的用户配置
func NewAppOptions(appConfig *types.AppConfig) config.AppOptions {
	return staticAppOptions{appConfig: appConfig}
}
