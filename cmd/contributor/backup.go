package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/spf13/cobra"

	"github.com/weisyn/contributor/internal/app"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
)

// 快照文件为 snappy 帧格式包裹的 badger 备份流

// backupCmd 导出存储快照
var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "把销售、出资人与托管方记录导出为快照文件",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("创建快照文件失败: %w", err)
		}
		defer f.Close()

		return withStore(func(store storage.BadgerStore) error {
			version, err := writeSnapshot(cmd.Context(), store, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "快照已写入 %s (version=%d)\n", args[0], version)
			return nil
		})
	},
}

// restoreCmd 从快照恢复存储
var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "从快照文件恢复存储（节点需停止）",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("打开快照文件失败: %w", err)
		}
		defer f.Close()

		return withStore(func(store storage.BadgerStore) error {
			if err := readSnapshot(cmd.Context(), store, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已从 %s 恢复\n", args[0])
			return nil
		})
	},
}

// withStore 只装配配置、日志与存储，执行完毕后关闭
func withStore(fn func(store storage.BadgerStore) error) error {
	var store storage.BadgerStore
	stop, err := app.Populate([]app.Option{app.WithConfigFile(globalFlags.ConfigPath)}, &store)
	if err != nil {
		return err
	}
	defer func() { _ = stop() }()
	return fn(store)
}


// writeSnapshot 以snappy压缩写出备份
func writeSnapshot(ctx context.Context, store storage.BadgerStore, w io.Writer) (uint64, error) {
	zw := snappy.NewBufferedWriter(w)
	version, err := store.Backup(ctx, zw)
	if err != nil {
		_ = zw.Close()
		return 0, err
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("写出压缩快照失败: %w", err)
	}
	return version, nil
}

// readSnapshot 解压并载入备份
func readSnapshot(ctx context.Context, store storage.BadgerStore, r io.Reader) error {
	return store.Restore(ctx, snappy.NewReader(r))
}
