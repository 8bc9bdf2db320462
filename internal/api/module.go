// Package api 对外接口层
package api

import (
	"go.uber.org/fx"

	"github.com/weisyn/contributor/internal/api/http"
)

// Module 返回API模块
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
		// 强制实例化HTTP服务器，使其生命周期钩子生效
		fx.Invoke(func(*http.Server) {}),
	)
}
