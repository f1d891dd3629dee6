package persistence

import (
	"bytes"
	"context"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/blobstore"
)

// SaveBlob writes a snapshot of m to store under name.
func SaveBlob(ctx context.Context, store blobstore.Store, name string, m *svmgo.Model, optFns ...Option) error {
	var buf bytes.Buffer
	if err := Save(ctx, &buf, m, optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// LoadBlob reads the snapshot stored under name.
func LoadBlob(ctx context.Context, store blobstore.Store, name string) (*svmgo.Model, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
