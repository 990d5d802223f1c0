package store

import (
	"maps"
	"sync"
)

// Memory is a map-backed Store. Nothing survives the process.
type Memory struct {
	accessor
	mu   sync.Mutex
	data *memKV
}

type memKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	m := &Memory{data: &memKV{data: make(map[string][]byte)}}
	m.accessor = accessor{kv: m.data, begin: m.begin}
	return m
}

// begin runs fn against a copy and swaps it in only if fn succeeds.
func (m *Memory) begin(fn func(kv) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.mu.RLock()
	snapshot := &memKV{data: maps.Clone(m.data.data)}
	m.data.mu.RUnlock()

	if err := fn(snapshot); err != nil {
		return err
	}

	m.data.mu.Lock()
	m.data.data = snapshot.data
	m.data.mu.Unlock()
	return nil
}

// Raw returns the stored bytes for key, for tests and debugging.
func (m *Memory) Raw(key string) ([]byte, bool) {
	v, ok, _ := m.data.get(key)
	return v, ok
}

// SetRaw stores bytes verbatim, bypassing encoding.
func (m *Memory) SetRaw(key string, value []byte) {
	_ = m.data.put(key, value)
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

func (k *memKV) get(key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (k *memKV) put(key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.data == nil {
		k.data = make(map[string][]byte)
	}
	k.data[key] = append([]byte(nil), value...)
	return nil
}

func (k *memKV) deleteAll() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.data)
	return nil
}
