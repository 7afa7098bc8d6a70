package repository

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	domainrepo "app/internal/repository"
)

// BadgerDB上のKVストア（組み込み・デフォルトドライバ）。
// ブラウザのlocalStorage相当をプロセスローカルに永続化する。
type kvBadgerStore struct {
	db *badger.DB
}

// OpenBadgerはpathにDBを開く。pathが空ならインメモリで開く。
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	return badger.Open(opts)
}

// DI
func NewKVBadgerStore(db *badger.DB) domainrepo.KVStore {
	return &kvBadgerStore{db: db}
}

func (s *kvBadgerStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(v []byte) error {
			value = string(v)
			found = true
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}

	return value, found, nil
}

func (s *kvBadgerStore) Set(ctx context.Context, key string, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (s *kvBadgerStore) Remove(ctx context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
