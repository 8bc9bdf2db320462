package api

import "time"

// API服务默认配置值
const (
	defaultHTTPEnabled = true

	// defaultHTTPHost 监听所有网络接口
	defaultHTTPHost = "0.0.0.0"

	defaultHTTPPort = 8080

	defaultHTTPReadTimeout  = 15 * time.Second
	defaultHTTPWriteTimeout = 15 * time.Second

	// defaultMaxRequestSize 最大请求大小设为1MB，销售初始化消息远小于此值
	defaultMaxRequestSize = 1 << 20
)
