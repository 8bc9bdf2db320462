// Package app 应用装配与启动
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	config "github.com/weisyn/contributor/internal/config"
)

// App 应用对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到退出信号，然后停止应用
	Wait()
}

type internalApp struct {
	bootstrap *Bootstrap
}

// Stop 停止应用，给存储留出刷盘时间
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待 SIGINT/SIGTERM
func (a *internalApp) Wait() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	sig := <-signals
	fmt.Printf("收到信号 %v，正在退出...\n", sig)
	if err := a.Stop(); err != nil {
		fmt.Printf("停止应用时出错: %v\n", err)
	}
}

// Start 加载配置、装配并启动应用
func Start(appOptions ...Option) (App, error) {
	opts := newOptions(appOptions...)
	if opts.appConfig == nil && opts.configFilePath != "" {
		appConfig, err := config.LoadAppConfig(opts.configFilePath)
		if err != nil {
			return nil, err
		}
		opts.appConfig = appConfig
	}

	b := NewBootstrap(opts)
	if err := b.CreateFxApp(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := b.StartApp(ctx); err != nil {
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}
	return &internalApp{bootstrap: b}, nil
}

// Populate 装配应用并把指定组件注入到 targets，不启动生命周期
//
// 供 backup/restore 等离线命令复用同一套配置与存储装配。
func Populate(appOptions []Option, targets ...interface{}) (stop func() error, err error) {
	opts := newOptions(appOptions...)
	opts.enableAPI = false
	if opts.appConfig == nil && opts.configFilePath != "" {
		if opts.appConfig, err = config.LoadAppConfig(opts.configFilePath); err != nil {
			return nil, err
		}
	}

	b := NewBootstrap(opts)
	if err := b.CreateFxApp(fx.Populate(targets...)); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := b.StartApp(ctx); err != nil {
		return nil, err
	}
	return func() error {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		return b.StopApp(stopCtx)
	}, nil
}
