package api

import (
	"fmt"
	"time"

	"github.com/weisyn/contributor/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	Enabled bool   `json:"enabled"` // 是否启用HTTP服务（总开关）
	Host    string `json:"host"`    // 监听地址
	Port    int    `json:"port"`    // 监听端口

	// 超时配置
	ReadTimeout  time.Duration `json:"read_timeout"`  // 读取超时时间
	WriteTimeout time.Duration `json:"write_timeout"` // 写入超时时间

	MaxRequestSize int64 `json:"max_request_size"` // 最大请求大小(字节)

	EnableDebug bool `json:"enable_debug"` // gin调试模式
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig interface{}) *Config {
	options := &APIOptions{
		HTTP: HTTPConfig{
			Enabled:        defaultHTTPEnabled,
			Host:           defaultHTTPHost,
			Port:           defaultHTTPPort,
			ReadTimeout:    defaultHTTPReadTimeout,
			WriteTimeout:   defaultHTTPWriteTimeout,
			MaxRequestSize: defaultMaxRequestSize,
		},
	}

	if user, ok := userConfig.(*types.UserAPIConfig); ok && user != nil {
		if user.HTTPEnabled != nil {
			options.HTTP.Enabled = *user.HTTPEnabled
		}
		if user.HTTPHost != nil {
			options.HTTP.Host = *user.HTTPHost
		}
		if user.HTTPPort != nil {
			options.HTTP.Port = *user.HTTPPort
		}
		if user.EnableDebug != nil {
			options.HTTP.EnableDebug = *user.EnableDebug
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *APIOptions {
	return c.options
}

// Address 返回HTTP监听地址
func (o *HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}
