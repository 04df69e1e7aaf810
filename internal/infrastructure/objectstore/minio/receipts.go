// Package minio archives order tickets in an S3-compatible bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/minio/minio-go/v7"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

const ticketPrefix = "tickets/"

// objectAPI is the subset of *minio.Client the archive needs; tests swap in a fake.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

type clientWrapper struct{ c *minio.Client }

func (w clientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w clientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w clientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (w clientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (w clientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}

// ReceiptArchive implements ports.ReceiptArchive on a bucket.
type ReceiptArchive struct {
	api    objectAPI
	bucket string
}

var _ ports.ReceiptArchive = (*ReceiptArchive)(nil)

// NewReceiptArchive uses a real *minio.Client and makes sure bucket exists.
func NewReceiptArchive(ctx context.Context, client *minio.Client, bucket string) (*ReceiptArchive, error) {
	return newReceiptArchive(ctx, clientWrapper{c: client}, bucket)
}

func newReceiptArchive(ctx context.Context, api objectAPI, bucket string) (*ReceiptArchive, error) {
	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return &ReceiptArchive{api: api, bucket: bucket}, nil
}

// Put stores the ticket under tickets/<owner id>/<order id>.pdf.
func (a *ReceiptArchive) Put(ctx context.Context, ownerID string, t domain.Ticket) error {
	_, err := a.api.PutObject(ctx, a.bucket, objectName(ownerID, t.OrderID), bytes.NewReader(t.Body), int64(len(t.Body)), minio.PutObjectOptions{
		ContentType: t.ContentType,
	})
	if err != nil {
		return fmt.Errorf("put ticket %s: %w", t.OrderID, err)
	}
	return nil
}

// Get returns domain.ErrNotFound when the ticket was never archived.
func (a *ReceiptArchive) Get(ctx context.Context, ownerID, orderID string) (domain.Ticket, error) {
	name := objectName(ownerID, orderID)

	info, err := a.api.StatObject(ctx, a.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return domain.Ticket{}, domain.ErrNotFound
		}
		return domain.Ticket{}, fmt.Errorf("stat ticket %s: %w", orderID, err)
	}

	rc, err := a.api.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("get ticket %s: %w", orderID, err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("read ticket %s: %w", orderID, err)
	}

	ct := info.ContentType
	if ct == "" {
		ct = "application/pdf"
	}
	return domain.Ticket{OrderID: orderID, ContentType: ct, Body: body}, nil
}

func objectName(ownerID, orderID string) string {
	return ticketPrefix + url.PathEscape(ownerID) + "/" + url.PathEscape(orderID) + ".pdf"
}
