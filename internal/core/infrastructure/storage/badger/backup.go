package badger

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// defaultMaxPendingWrites 恢复时允许的最大未落盘写批次
const defaultMaxPendingWrites = 256

// Backup 将全量数据以badger备份格式写出
func (s *Store) Backup(ctx context.Context, w io.Writer) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// 带缓冲写入，减少系统调用
	buffered := bufio.NewWriterSize(w, 1<<20)
	version, err := s.db.Backup(buffered, 0)
	if err != nil {
		return 0, fmt.Errorf("执行备份失败: %w", err)
	}
	if err := buffered.Flush(); err != nil {
		return 0, fmt.Errorf("刷新备份缓冲失败: %w", err)
	}

	s.logger.Infof("备份完成，截止版本: %d", version)
	return version, nil
}

// Restore 从备份流载入数据，已有键会被覆盖
func (s *Store) Restore(ctx context.Context, r io.Reader) error {
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Load(bufio.NewReader(r), defaultMaxPendingWrites); err != nil {
		return fmt.Errorf("载入备份失败: %w", err)
	}
	s.logger.Info("备份数据已载入")
	return nil
}
