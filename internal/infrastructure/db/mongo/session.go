package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

const sessionCollection = "storefront_sessions"

// SessionStorage keeps persisted session records as documents keyed by the
// storage key.
type SessionStorage struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

func NewSessionStorage(db *mongo.Database) *SessionStorage {
	return &SessionStorage{
		coll: db.Collection(sessionCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type sessionDoc struct {
	Key       string `bson:"_id"`
	Value     []byte `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *SessionStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var doc sessionDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return doc.Value, nil
}

func (s *SessionStorage) Save(ctx context.Context, key string, value []byte) error {
	doc := sessionDoc{Key: key, Value: value, UpdatedAt: s.now().Unix()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
