// Package log 日志配置
package log

import (
	configtypes "github.com/weisyn/contributor/pkg/types"
	"go.uber.org/zap/zapcore"
)

// LogOptions 日志配置选项
type LogOptions struct {
	Level     string `json:"level"`      // debug | info | warn | error
	ToConsole bool   `json:"to_console"` // 输出到标准输出
	FilePath  string `json:"file_path"`  // 日志文件路径，留空不写文件
	Format    string `json:"format"`     // 文件编码：json | console

	// 文件轮转
	MaxSize    int  `json:"max_size"`    // MB
	MaxBackups int  `json:"max_backups"` // 保留的历史文件数
	MaxAge     int  `json:"max_age"`     // 天
	Compress   bool `json:"compress"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"` // 仅 error 及以上
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 以默认值为基础，叠加配置文件中出现的字段
func New(userConfig interface{}) *Config {
	options := &LogOptions{
		Level:            defaultLogLevel,
		ToConsole:        defaultToConsole,
		Format:           defaultFormat,
		MaxSize:          defaultMaxSize,
		MaxBackups:       defaultMaxBackups,
		MaxAge:           defaultMaxAge,
		Compress:         defaultCompress,
		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,
	}

	user, ok := userConfig.(*configtypes.UserLogConfig)
	if !ok || user == nil {
		return &Config{options: options}
	}
	if user.Level != nil {
		options.Level = *user.Level
	}
	if user.FilePath != nil && *user.FilePath != "" {
		options.FilePath = *user.FilePath
		// 写文件时默认关闭控制台，除非显式打开
		options.ToConsole = false
	}
	if user.Console != nil {
		options.ToConsole = *user.Console
	}
	if user.Format != nil {
		options.Format = *user.Format
	}
	return &Config{options: options}
}

// NewFromOptions 从LogOptions创建配置实现
func NewFromOptions(options *LogOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// NewFromProvider 从配置提供者读取日志配置
func NewFromProvider(provider interface{ GetLog() *LogOptions }) *Config {
	if provider == nil {
		return New(nil)
	}
	return NewFromOptions(provider.GetLog())
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *LogOptions { return c.options }

// GetLevel 获取日志级别名称
func (c *Config) GetLevel() string { return c.options.Level }

// GetZapLevel 解析日志级别，无法识别时为 info
func (c *Config) GetZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.options.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func (c *Config) IsConsoleEnabled() bool     { return c.options.ToConsole }
func (c *Config) GetFilePath() string        { return c.options.FilePath }
func (c *Config) GetMaxSize() int            { return c.options.MaxSize }
func (c *Config) GetMaxBackups() int         { return c.options.MaxBackups }
func (c *Config) GetMaxAge() int             { return c.options.MaxAge }
func (c *Config) IsCompressionEnabled() bool { return c.options.Compress }
func (c *Config) IsCallerEnabled() bool      { return c.options.EnableCaller }
func (c *Config) IsStacktraceEnabled() bool  { return c.options.EnableStacktrace }

// CreateFileEncoder 文件编码器，默认JSON便于采集
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.options.Format == "console" {
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

// CreateConsoleEncoder 控制台编码器，带颜色的级别
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
