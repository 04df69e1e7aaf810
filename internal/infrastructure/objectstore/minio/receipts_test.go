package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renova/storefront/internal/core/domain"
)

type storedObject struct {
	body        []byte
	contentType string
}

type fakeObjectAPI struct {
	buckets map[string]bool
	objects map[string]storedObject
	statErr error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{buckets: map[string]bool{}, objects: map[string]storedObject{}}
}

func (f *fakeObjectAPI) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeObjectAPI) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, bucket, name string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+name] = storedObject{body: body, contentType: opts.ContentType}
	return minio.UploadInfo{Bucket: bucket, Key: name, Size: int64(len(body))}, nil
}

func (f *fakeObjectAPI) GetObject(_ context.Context, bucket, name string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	obj := f.objects[bucket+"/"+name]
	return io.NopCloser(bytes.NewReader(obj.body)), nil
}

func (f *fakeObjectAPI) StatObject(_ context.Context, bucket, name string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if f.statErr != nil {
		return minio.ObjectInfo{}, f.statErr
	}
	obj, ok := f.objects[bucket+"/"+name]
	if !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	}
	return minio.ObjectInfo{Key: name, Size: int64(len(obj.body)), ContentType: obj.contentType}, nil
}

func TestNewReceiptArchive_CreatesBucket(t *testing.T) {
	api := newFakeObjectAPI()

	_, err := newReceiptArchive(context.Background(), api, "renova-tickets")
	require.NoError(t, err)
	assert.True(t, api.buckets["renova-tickets"])
}

func TestReceiptArchive_PutGet(t *testing.T) {
	api := newFakeObjectAPI()
	a, err := newReceiptArchive(context.Background(), api, "renova-tickets")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = a.Get(ctx, "u1", "ord-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, a.Put(ctx, "u1", domain.Ticket{OrderID: "ord-1", ContentType: "application/pdf", Body: []byte("%PDF")}))
	assert.Contains(t, api.objects, "renova-tickets/tickets/u1/ord-1.pdf")

	got, err := a.Get(ctx, "u1", "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", got.OrderID)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, []byte("%PDF"), got.Body)
}

func TestReceiptArchive_ScopedByOwner(t *testing.T) {
	api := newFakeObjectAPI()
	a, err := newReceiptArchive(context.Background(), api, "renova-tickets")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, a.Put(ctx, "alice", domain.Ticket{OrderID: "ord-1", Body: []byte("alice-pdf")}))

	_, err = a.Get(ctx, "bob", "ord-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptArchive_EscapesKeyParts(t *testing.T) {
	assert.Equal(t, "tickets/u%2F1/a%2Fb.pdf", objectName("u/1", "a/b"))
}

func TestReceiptArchive_StatFailure(t *testing.T) {
	api := newFakeObjectAPI()
	a, err := newReceiptArchive(context.Background(), api, "renova-tickets")
	require.NoError(t, err)
	api.statErr = errors.New("connection reset")

	_, err = a.Get(context.Background(), "u1", "ord-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
