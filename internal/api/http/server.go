// Package http 出资方核心的 HTTP 传输层（gin）
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weisyn/contributor/internal/api/http/handlers"
	"github.com/weisyn/contributor/internal/api/http/middleware"
	"github.com/weisyn/contributor/internal/app/version"
	apiconfig "github.com/weisyn/contributor/internal/config/api"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
)

// Server HTTP服务器
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     apiconfig.HTTPConfig
	logger     log.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer 创建HTTP服务器并注册路由；bus 为空时不提供事件流
func NewServer(config apiconfig.HTTPConfig, logger log.Logger, service contributoriface.Service, store storage.BadgerStore, bus event.EventBus) (*Server, error) {
	if !config.EnableDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.NewRequestID().Middleware(),
		middleware.NewLogger(logger).Middleware(),
		middleware.NewMetrics().Middleware(),
		middleware.ErrorHandler(logger),
	)
	if config.MaxRequestSize > 0 {
		router.Use(limitBody(config.MaxRequestSize))
	}

	s := &Server{
		router: router,
		config: config,
		logger: logger,
	}
	if err := s.setupRoutes(service, store, bus); err != nil {
		return nil, err
	}
	return s, nil
}

// setupRoutes 注册所有端点
func (s *Server) setupRoutes(service contributoriface.Service, store storage.BadgerStore, bus event.EventBus) error {
	handlers.NewHealthHandler(store, version.GetVersion()).RegisterRoutes(s.router)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	handlers.NewCustodianHandlers(service).RegisterRoutes(v1)
	handlers.NewSaleHandlers(service).RegisterRoutes(v1)
	if bus != nil {
		stream, err := handlers.NewEventStreamHandler(bus, s.logger.With("component", "event_stream"))
		if err != nil {
			return fmt.Errorf("订阅事件总线失败: %w", err)
		}
		stream.RegisterRoutes(v1)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":      "NotFound",
			"message":   "route not found",
			"requestId": middleware.GetRequestID(c),
		}})
	})
	return nil
}

// Handler 返回路由，供测试直接驱动
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 监听端口并在后台提供服务
func (s *Server) Start() error {
	addr := s.config.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("监听HTTP地址 %s 失败: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器运行失败: %v", err)
		}
	}()

	s.logger.Infof("HTTP服务器已启动，监听地址: %s", listener.Addr())
	return nil
}

// Addr 实际监听地址；未启动时为空
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop 优雅关闭，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(stopCtx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}
	s.logger.Info("HTTP服务器已关闭")
	return nil
}

func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
