// Package storage keeps aircraft images outside the database, either on a
// local filesystem or in an Azure blob container.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Open and Delete for unknown keys.
var ErrObjectNotFound = errors.New("object not found")

// Object is an opened stored image. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type ImageStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Open(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
