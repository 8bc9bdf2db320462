package event

import configtypes "github.com/weisyn/contributor/pkg/types"

// EventOptions 事件系统配置选项
type EventOptions struct {
	Enabled    bool `json:"enabled"`     // 是否启用事件系统
	BufferSize int  `json:"buffer_size"` // 出站消息缓冲区大小
}

// Config 事件配置实现
type Config struct {
	options *EventOptions
}

// New 创建事件配置实现
func New(userConfig interface{}) *Config {
	options := &EventOptions{
		Enabled:    defaultEnabled,
		BufferSize: defaultBufferSize,
	}

	if eventConfig, ok := userConfig.(*configtypes.UserEventConfig); ok && eventConfig != nil {
		if eventConfig.Enabled != nil {
			options.Enabled = *eventConfig.Enabled
		}
		if eventConfig.BufferSize != nil && *eventConfig.BufferSize > 0 {
			options.BufferSize = *eventConfig.BufferSize
		}
	}

	return &Config{options: options}
}

// NewFromOptions 从EventOptions创建配置实现
func NewFromOptions(options *EventOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// IsEnabled 是否启用事件系统
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetBufferSize 获取缓冲区大小
func (c *Config) GetBufferSize() int {
	return c.options.BufferSize
}
