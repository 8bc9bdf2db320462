package log

const (
	defaultLogLevel = "info"

	// defaultToConsole 未配置文件时输出到控制台
	defaultToConsole = true

	defaultFormat = "json"

	defaultMaxSize    = 100 // MB
	defaultMaxBackups = 10
	defaultMaxAge     = 30 // 天
	defaultCompress   = true

	defaultEnableCaller     = true
	defaultEnableStacktrace = true
)
