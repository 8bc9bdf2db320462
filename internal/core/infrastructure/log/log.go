// Package log 基于zap的日志实现
//
// 控制台与文件两路输出共用一个级别，文件输出由lumberjack负责轮转。
// 组件通过 With("module", ...) 派生子记录器，不使用全局实例。
package log

import (
	"fmt"
	"os"
	"path/filepath"

	logconfig "github.com/weisyn/contributor/internal/config/log"
	logInterface "github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志级别
const (
	DebugLevel = string(logInterface.DebugLevel)
	InfoLevel  = string(logInterface.InfoLevel)
	WarnLevel  = string(logInterface.WarnLevel)
	ErrorLevel = string(logInterface.ErrorLevel)
)

var _ logInterface.Logger = (*Logger)(nil)

// Logger 实现 log.Logger 接口
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New 根据配置创建日志记录器；没有任何输出时等价于Nop
func New(config *logconfig.Config) (logInterface.Logger, error) {
	level := zap.NewAtomicLevelAt(config.GetZapLevel())

	cores, err := buildCores(config, level)
	if err != nil {
		return nil, err
	}

	var opts []zap.Option
	if config.IsCallerEnabled() {
		// 跳过本包的封装层
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.IsStacktraceEnabled() {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return wrap(zap.New(zapcore.NewTee(cores...), opts...)), nil
}

func buildCores(config *logconfig.Config, level zap.AtomicLevel) ([]zapcore.Core, error) {
	var cores []zapcore.Core
	if config.IsConsoleEnabled() {
		cores = append(cores, zapcore.NewCore(config.CreateConsoleEncoder(), zapcore.Lock(os.Stdout), level))
	}

	path := config.GetFilePath()
	if path == "" {
		return cores, nil
	}
	sink, err := rotatingFile(path, config)
	if err != nil {
		return nil, err
	}
	return append(cores, zapcore.NewCore(config.CreateFileEncoder(), sink, level)), nil
}

// rotatingFile 按大小轮转的日志文件
func rotatingFile(path string, config *logconfig.Config) (zapcore.WriteSyncer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("解析日志文件路径失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0700); err != nil {
		return nil, fmt.Errorf("创建日志目录失败: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   abs,
		MaxSize:    config.GetMaxSize(),
		MaxBackups: config.GetMaxBackups(),
		MaxAge:     config.GetMaxAge(),
		Compress:   config.IsCompressionEnabled(),
	}), nil
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{base: z, sugar: z.Sugar()}
}

// GetZapLogger 底层zap记录器，供gin中间件等需要强类型字段的场景
func (l *Logger) GetZapLogger() *zap.Logger { return l.base }

func (l *Logger) Debug(msg string)                          { l.sugar.Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.sugar.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.sugar.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.sugar.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l *Logger) Fatal(msg string)                          { l.sugar.Fatal(msg) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 按键值对派生子记录器：key1, value1, key2, value2, ...
//
// 落单的键被丢弃。实现了 fmt.Stringer 的值（销售ID、地址）按字符串输出。
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	return wrap(l.base.With(pairs(args)...))
}

// Sync 刷新缓冲区
func (l *Logger) Sync() error { return l.base.Sync() }

func pairs(args []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}
