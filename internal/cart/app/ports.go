package app

import (
	"context"
	"errors"
)

var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// Store is the single named slot that holds the durable mirror of one cart.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}
