package storefakes

import (
	"context"
	"sync"

	"github.com/connecthub/connecthub-go/storage"
)

var _ storage.Store = (*FakeStore)(nil)

// FakeStore is an in-memory Store for tests. Error fields, when set, are
// returned by the corresponding operation instead of touching the map.
type FakeStore struct {
	lock   sync.RWMutex
	values map[string][]byte

	GetErr    error
	SetErr    error
	DeleteErr error

	setCalls    int
	deleteCalls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[string][]byte)}
}

func (fs *FakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if fs.GetErr != nil {
		return nil, fs.GetErr
	}
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	value, ok := fs.values[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (fs *FakeStore) Set(_ context.Context, key string, value []byte) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.setCalls++
	if fs.SetErr != nil {
		return fs.SetErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	fs.values[key] = stored
	return nil
}

func (fs *FakeStore) Delete(_ context.Context, key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.deleteCalls++
	if fs.DeleteErr != nil {
		return fs.DeleteErr
	}
	delete(fs.values, key)
	return nil
}

// Has reports whether a value exists for key.
func (fs *FakeStore) Has(key string) bool {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	_, ok := fs.values[key]
	return ok
}

// Value returns the stored bytes for key, or nil.
func (fs *FakeStore) Value(key string) []byte {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.values[key]
}

// SetCalls returns how many times Set was invoked.
func (fs *FakeStore) SetCalls() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.setCalls
}

// DeleteCalls returns how many times Delete was invoked.
func (fs *FakeStore) DeleteCalls() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.deleteCalls
}
