// Package storage 定义BadgerDB存储接口
//
// 💾 出资方核心的所有实体（销售、出资人、托管方）都保存在同一个
// 事务型键值存储中，每个边界操作对应一个读写事务，失败时整体丢弃。
package storage

import (
	"context"
	"io"
)

// BadgerStore 定义了键值存储的应用接口
type BadgerStore interface {
	// Close 关闭BadgerDB数据库连接
	// 应用关闭时必须调用此方法以避免数据损坏
	Close() error

	// Exists 检查键是否存在，健康检查用
	Exists(ctx context.Context, key []byte) (bool, error)

	// RunInTransaction 在读写事务中执行函数
	// fn 返回错误时事务被丢弃，否则提交；提交冲突以错误返回
	RunInTransaction(ctx context.Context, fn func(tx BadgerTransaction) error) error

	// View 在只读事务中执行函数，事务内写操作返回错误
	View(ctx context.Context, fn func(tx BadgerTransaction) error) error

	// Backup 将全量数据以badger备份格式写出，返回备份截止版本
	Backup(ctx context.Context, w io.Writer) (uint64, error)

	// Restore 从备份流载入数据
	Restore(ctx context.Context, r io.Reader) error
}

// BadgerTransaction 事务内的键值操作
type BadgerTransaction interface {
	// Get 获取值，不存在时返回nil值和nil错误
	Get(key []byte) ([]byte, error)

	Set(key, value []byte) error

	// PrefixScan 在事务快照内按前缀遍历，回调返回错误时停止
	PrefixScan(prefix []byte, fn func(key, value []byte) error) error
}
