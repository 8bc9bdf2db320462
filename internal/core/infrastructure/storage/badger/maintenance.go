package badger

import (
	"context"
	"errors"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
)

const (
	// defaultGCInterval 值日志垃圾回收间隔
	defaultGCInterval = 10 * time.Minute

	// gcDiscardRatio 文件中可回收空间占比超过该值才重写
	gcDiscardRatio = 0.5
)

// RunValueLogGC 执行一轮值日志垃圾回收，直到没有可回收的文件
func (s *Store) RunValueLogGC(ctx context.Context, discardRatio float64) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badgerdb.ErrNoRewrite) || errors.Is(err, badgerdb.ErrRejected) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// StartMaintenanceRoutines 启动定期值日志垃圾回收
func (s *Store) StartMaintenanceRoutines(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.RunValueLogGC(ctx, gcDiscardRatio); err != nil && ctx.Err() == nil {
					s.logger.Warnf("定期值日志垃圾回收失败: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
