// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/weisyn/contributor/internal/config/api"
	cacheconfig "github.com/weisyn/contributor/internal/config/cache"
	contributorconfig "github.com/weisyn/contributor/internal/config/contributor"
	eventconfig "github.com/weisyn/contributor/internal/config/event"
	logconfig "github.com/weisyn/contributor/internal/config/log"
	relayconfig "github.com/weisyn/contributor/internal/config/relay"
	badgerconfig "github.com/weisyn/contributor/internal/config/storage/badger"
)

// Provider 配置提供者接口
type Provider interface {
	// GetContributor 获取出资方核心配置（本链ID、指挥链身份）
	GetContributor() *contributorconfig.ContributorOptions

	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetBadger 获取BadgerDB存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetEvent 获取事件配置
	GetEvent() *eventconfig.EventOptions

	// GetCache 获取销售视图缓存配置
	GetCache() *cacheconfig.CacheOptions

	// GetRelay 获取出站消息Redis中继配置
	GetRelay() *relayconfig.RelayOptions

	// GetEnvironment 获取运行环境：dev | test | prod
	// 未配置时默认为 "prod"（安全优先）
	GetEnvironment() string

	// Validate 校验启动所需的配置
	Validate() error
}
