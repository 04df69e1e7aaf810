package ports

import "context"

// SessionStorage is the durable key/value slot holding the persisted session
// record. Load returns domain.ErrRecordNotFound when the key is absent.
type SessionStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
