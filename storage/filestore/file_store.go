package filestore

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/connecthub/connecthub-go/storage"
	"github.com/pkg/errors"
)

var _ storage.Store = (*FileStore)(nil)

// FileStore persists each key as a single file under a data directory.
// This is the default "device-local" backend.
type FileStore struct {
	dir string
}

// New creates the data directory if needed and returns a FileStore rooted in it.
func New(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("[filestore.New] data directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestore.New] os.MkdirAll")
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, errors.Wrap(err, "[FileStore.Get] os.ReadFile")
	}
	return data, nil
}

func (fs *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Write to a temp file and rename so readers never see a partial value.
	tmp, err := os.CreateTemp(fs.dir, "store-*")
	if err != nil {
		return errors.Wrap(err, "[FileStore.Set] os.CreateTemp")
	}
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "[FileStore.Set] tmp.Write")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "[FileStore.Set] tmp.Close")
	}
	if err := os.Rename(tmp.Name(), fs.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "[FileStore.Set] os.Rename")
	}
	return nil
}

func (fs *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Delete] os.Remove")
	}
	return nil
}

func (fs *FileStore) path(key string) string {
	encoded := base64.URLEncoding.EncodeToString([]byte(key))
	return filepath.Join(fs.dir, encoded+".json")
}
