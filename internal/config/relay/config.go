// Package relay 出站消息Redis中继配置
package relay

import (
	"time"

	configtypes "github.com/weisyn/contributor/pkg/types"
)

// RelayOptions 中继配置选项
type RelayOptions struct {
	Enabled  bool          `json:"enabled"`   // 是否启用
	Addr     string        `json:"addr"`      // Redis地址 host:port
	Password string        `json:"password"`  // Redis密码
	DB       int           `json:"db"`        // 数据库编号
	Stream   string        `json:"stream"`    // 出站消息写入的Stream键
	MaxLen   int64         `json:"max_len"`   // Stream近似长度上限
	PoolSize int           `json:"pool_size"` // 连接池大小
	Timeout  time.Duration `json:"timeout"`   // 单次写入超时
}

// Config 中继配置实现
type Config struct {
	options *RelayOptions
}

// New 创建中继配置实现
func New(userConfig interface{}) *Config {
	options := &RelayOptions{
		Enabled:  defaultEnabled,
		Addr:     defaultAddr,
		Stream:   defaultStream,
		MaxLen:   defaultMaxLen,
		PoolSize: defaultPoolSize,
		Timeout:  defaultTimeout,
	}

	if user, ok := userConfig.(*configtypes.UserRelayConfig); ok && user != nil {
		if user.Enabled != nil {
			options.Enabled = *user.Enabled
		}
		if user.Addr != nil && *user.Addr != "" {
			options.Addr = *user.Addr
		}
		if user.Password != nil {
			options.Password = *user.Password
		}
		if user.DB != nil && *user.DB >= 0 {
			options.DB = *user.DB
		}
		if user.Stream != nil && *user.Stream != "" {
			options.Stream = *user.Stream
		}
		if user.MaxLen != nil && *user.MaxLen >= 0 {
			options.MaxLen = *user.MaxLen
		}
		if user.PoolSize != nil && *user.PoolSize > 0 {
			options.PoolSize = *user.PoolSize
		}
		if user.Timeout != nil {
			if d, err := time.ParseDuration(*user.Timeout); err == nil && d > 0 {
				options.Timeout = d
			}
		}
	}

	return &Config{options: options}
}

// NewFromOptions 从RelayOptions创建配置实现
func NewFromOptions(options *RelayOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *RelayOptions {
	return c.options
}

// IsEnabled 是否启用中继
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetStream 获取Stream键
func (c *Config) GetStream() string {
	return c.options.Stream
}
