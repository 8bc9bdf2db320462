package badger

import (
	"errors"
	"fmt"
	"sync/atomic"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
)

var _ storage.BadgerTransaction = (*Transaction)(nil)

// ErrTransactionClosed 事务已提交或丢弃
var ErrTransactionClosed = errors.New("事务已关闭")

// TransactionState 事务状态
type TransactionState int32

const (
	TxActive TransactionState = iota
	TxCommitted
	TxDiscarded
)

// Transaction 对badger事务的封装
type Transaction struct {
	txn        *badgerdb.Txn
	state      int32 // 使用atomic操作管理状态
	operations int   // 写操作次数，为0时提交退化为丢弃
}

func newTransaction(txn *badgerdb.Txn) *Transaction {
	return &Transaction{txn: txn, state: int32(TxActive)}
}

// Get 获取值，键不存在时返回nil值和nil错误
func (t *Transaction) Get(key []byte) ([]byte, error) {
	if t.getState() != TxActive {
		return nil, ErrTransactionClosed
	}

	item, err := t.txn.Get(key)
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("复制键值失败: %w", err)
	}
	return val, nil
}

// Set 设置键值
func (t *Transaction) Set(key, value []byte) error {
	if t.getState() != TxActive {
		return ErrTransactionClosed
	}
	if err := t.txn.Set(key, value); err != nil {
		return fmt.Errorf("设置键值失败: %w", err)
	}
	t.operations++
	return nil
}

// PrefixScan 按前缀遍历当前事务可见的键值
func (t *Transaction) PrefixScan(prefix []byte, fn func(key, value []byte) error) error {
	if t.getState() != TxActive {
		return ErrTransactionClosed
	}

	opts := badgerdb.DefaultIteratorOptions
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("复制键值失败: %w", err)
		}
		if err := fn(item.KeyCopy(nil), val); err != nil {
			return err
		}
	}
	return nil
}

// Commit 提交事务
func (t *Transaction) Commit() error {
	if !atomic.CompareAndSwapInt32(&t.state, int32(TxActive), int32(TxCommitted)) {
		if t.getState() == TxCommitted {
			return fmt.Errorf("事务已提交")
		}
		return fmt.Errorf("事务已丢弃，无法提交")
	}

	if t.operations == 0 {
		t.txn.Discard()
		return nil
	}
	// 提交失败（例如 ErrConflict）后事务不可重用，由调用方整体重试
	return t.txn.Commit()
}

// Discard 丢弃事务，重复调用无副作用
func (t *Transaction) Discard() {
	if atomic.CompareAndSwapInt32(&t.state, int32(TxActive), int32(TxDiscarded)) {
		t.txn.Discard()
	}
}

func (t *Transaction) getState() TransactionState {
	return TransactionState(atomic.LoadInt32(&t.state))
}

