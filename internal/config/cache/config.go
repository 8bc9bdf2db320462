// Package cache 销售视图缓存配置
package cache

import (
	"time"

	configtypes "github.com/weisyn/contributor/pkg/types"
)

// CacheOptions 缓存配置选项
type CacheOptions struct {
	Enabled    bool          `json:"enabled"`     // 是否启用
	LifeWindow time.Duration `json:"life_window"` // 条目存活时间
	MaxSizeMB  int           `json:"max_size_mb"` // 缓存上限(MB)，0表示不限
	Shards     int           `json:"shards"`      // 分片数（2的幂）
}

// Config 缓存配置实现
type Config struct {
	options *CacheOptions
}

// New 创建缓存配置实现
func New(userConfig interface{}) *Config {
	options := &CacheOptions{
		Enabled:    defaultEnabled,
		LifeWindow: defaultLifeWindow,
		MaxSizeMB:  defaultMaxSizeMB,
		Shards:     defaultShards,
	}

	if user, ok := userConfig.(*configtypes.UserCacheConfig); ok && user != nil {
		if user.Enabled != nil {
			options.Enabled = *user.Enabled
		}
		if user.LifeWindow != nil {
			if d, err := time.ParseDuration(*user.LifeWindow); err == nil && d > 0 {
				options.LifeWindow = d
			}
		}
		if user.MaxSizeMB != nil && *user.MaxSizeMB >= 0 {
			options.MaxSizeMB = *user.MaxSizeMB
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *CacheOptions {
	return c.options
}

// NewFromOptions 从CacheOptions创建配置实现
func NewFromOptions(options *CacheOptions) *Config {
	return &Config{options: options}
}

// IsEnabled 是否启用缓存
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetLifeWindow 获取条目存活时间
func (c *Config) GetLifeWindow() time.Duration {
	return c.options.LifeWindow
}

// GetMaxSizeMB 获取缓存上限
func (c *Config) GetMaxSizeMB() int {
	return c.options.MaxSizeMB
}

// GetShards 获取分片数
func (c *Config) GetShards() int {
	return c.options.Shards
}
