package storage

import "context"

// Archive defines the contract for keeping metrics snapshots
type Archive interface {
	Store(ctx context.Context, name string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, name string) error
}
