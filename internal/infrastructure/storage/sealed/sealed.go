// Package sealed encrypts persisted session records at rest with
// NaCl secretbox. It wraps any ports.SessionStorage.
package sealed

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

const nonceSize = 24

var errEmptySecret = errors.New("sealed storage: empty secret")

// Storage seals values before handing them to the inner storage.
type Storage struct {
	inner ports.SessionStorage
	key   [32]byte
}

var _ ports.SessionStorage = (*Storage)(nil)

// New derives the box key from secret with BLAKE2b-256.
func New(inner ports.SessionStorage, secret string) (*Storage, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	return &Storage{inner: inner, key: blake2b.Sum256([]byte(secret))}, nil
}

// Load opens the stored box. A box that fails authentication is reported as a
// malformed record.
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	box, err := s.inner.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("open %s: %w: box too short", key, domain.ErrMalformedRecord)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, fmt.Errorf("open %s: %w: authentication failed", key, domain.ErrMalformedRecord)
	}
	return plain, nil
}

func (s *Storage) Save(ctx context.Context, key string, value []byte) error {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("seal %s: nonce: %w", key, err)
	}
	box := secretbox.Seal(nonce[:], value, &nonce, &s.key)
	return s.inner.Save(ctx, key, box)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
