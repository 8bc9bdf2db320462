package app

import (
	"github.com/weisyn/contributor/pkg/interfaces/config"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项，实现 config.AppOptions
type options struct {
	// 配置文件路径
	configFilePath string

	// 用户配置（优先于配置文件）
	appConfig *types.AppConfig

	// API支持开关（默认启用）
	enableAPI bool

	// 外部代币金库，未设置时使用开发内存金库
	tokenVault contributoriface.TokenVault
}

var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接使用已构造的配置，跳过配置文件
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithoutAPI 禁用API模块
func WithoutAPI() Option {
	return func(o *options) {
		o.enableAPI = false
	}
}

// WithTokenVault 接入外部代币金库，生产环境必须设置
func WithTokenVault(v contributoriface.TokenVault) Option {
	return func(o *options) {
		o.tokenVault = v
	}
}

func newOptions(opts ...Option) *options {
	o := &options{enableAPI: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 实现 config.AppOptions
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
