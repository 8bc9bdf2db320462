package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/weisyn/contributor/internal/config/api"
	"github.com/weisyn/contributor/internal/config/cache"
	"github.com/weisyn/contributor/internal/config/contributor"
	"github.com/weisyn/contributor/internal/config/event"
	"github.com/weisyn/contributor/internal/config/log"
	"github.com/weisyn/contributor/internal/config/relay"
	"github.com/weisyn/contributor/internal/config/storage/badger"
	"github.com/weisyn/contributor/pkg/interfaces/config"
	"github.com/weisyn/contributor/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// LoadAppConfig 从JSON配置文件加载用户配置
func LoadAppConfig(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return &appConfig, nil
}

// GetContributor 获取出资方核心配置
func (p *Provider) GetContributor() *contributor.ContributorOptions {
	return contributor.New(p.appConfig.Contributor).GetOptions()
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	options := log.New(p.appConfig.Log).GetOptions()
	// 开发环境默认输出调试日志，显式配置优先
	if p.GetEnvironment() == "dev" && (p.appConfig.Log == nil || p.appConfig.Log.Level == nil) {
		options.Level = "debug"
	}
	return options
}

// GetBadger 获取BadgerDB存储配置
func (p *Provider) GetBadger() *badger.BadgerOptions {
	storage := p.appConfig.Storage
	if storage == nil && p.appConfig.DataDir != nil {
		// 兼容仅配置 data_dir 的旧配置
		storage = &types.UserStorageConfig{DataRoot: p.appConfig.DataDir}
	}
	return badger.New(storage).GetOptions()
}

// GetEvent 获取事件配置
func (p *Provider) GetEvent() *event.EventOptions {
	return event.New(p.appConfig.Event).GetOptions()
}

// GetCache 获取缓存配置
func (p *Provider) GetCache() *cache.CacheOptions {
	return cache.New(p.appConfig.Cache).GetOptions()
}

// GetRelay 获取出站中继配置
func (p *Provider) GetRelay() *relay.RelayOptions {
	return relay.New(p.appConfig.Relay).GetOptions()
}

// GetEnvironment 获取运行环境
func (p *Provider) GetEnvironment() string {
	if p.appConfig.Environment == nil || *p.appConfig.Environment == "" {
		return "prod"
	}
	return *p.appConfig.Environment
}

// Validate 校验启动所需的配置
func (p *Provider) Validate() error {
	switch env := p.GetEnvironment(); env {
	case "dev", "test", "prod":
	default:
		return fmt.Errorf("无效的运行环境: %s", env)
	}
	if err := contributor.New(p.appConfig.Contributor).Validate(); err != nil {
		return fmt.Errorf("出资方配置无效: %w", err)
	}
	return nil
}
