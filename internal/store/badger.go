package store

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Badger is a Store backed by an embedded BadgerDB directory.
type Badger struct {
	accessor
	db  *badger.DB
	mu  sync.Mutex
	log *zap.Logger
}

type badgerKV struct {
	txn *badger.Txn
}

// badgerLogger adapts zap to BadgerDB's Logger interface.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

// OpenBadger opens or creates a BadgerDB store in dir.
func OpenBadger(dir string, opts ...Option) (*Badger, error) {
	if dir == "" {
		return nil, errors.New("badger store: path is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating badger dir %s: %w", dir, err)
	}
	return openBadger(badger.DefaultOptions(dir).WithSyncWrites(true), buildOptions(opts))
}

// OpenBadgerInMemory opens a BadgerDB store with no disk persistence.
func OpenBadgerInMemory(opts ...Option) (*Badger, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true), buildOptions(opts))
}

func openBadger(bopts badger.Options, o options) (*Badger, error) {
	bopts = bopts.WithNumVersionsToKeep(1).WithLogger(badgerLogger{s: o.log.Sugar()})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	b := &Badger{db: db, log: o.log}
	b.accessor = accessor{kv: badgerView{db: db}, begin: b.begin}
	o.log.Debug("badger store opened", zap.String("dir", bopts.Dir), zap.Bool("in_memory", bopts.InMemory))
	return b, nil
}

func (b *Badger) begin(fn func(kv) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Update(func(txn *badger.Txn) error {
		return fn(badgerKV{txn: txn})
	})
}

// Close closes the database.
func (b *Badger) Close() error {
	b.log.Debug("badger store closed")
	return b.db.Close()
}

// badgerView runs each call in its own transaction.
type badgerView struct {
	db *badger.DB
}

func (v badgerView) get(key string) (value []byte, ok bool, err error) {
	err = v.db.View(func(txn *badger.Txn) error {
		value, ok, err = badgerKV{txn: txn}.get(key)
		return err
	})
	return value, ok, err
}

func (v badgerView) put(key string, value []byte) error {
	return v.db.Update(func(txn *badger.Txn) error {
		return badgerKV{txn: txn}.put(key, value)
	})
}

func (v badgerView) deleteAll() error {
	return v.db.Update(func(txn *badger.Txn) error {
		return badgerKV{txn: txn}.deleteAll()
	})
}

func (k badgerKV) get(key string) ([]byte, bool, error) {
	item, err := k.txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (k badgerKV) put(key string, value []byte) error {
	return k.txn.Set([]byte(key), value)
}

func (k badgerKV) deleteAll() error {
	it := k.txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := k.txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
