package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
)

// objectStore keeps blobs in a single bucket of an S3-compatible server.
type objectStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinio creates a client for cfg. The bucket is checked and created by
// the startup hook registered in Start.
func NewMinio(cfg *MinioConfig, logger *slog.Logger) (System, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &objectStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With("system", "storage", "backend", "minio"),
	}, nil
}

func (o *objectStore) Start(lc *lifecycle.Coordinator) error {
	o.logger.Info("starting storage system", "endpoint", o.client.EndpointURL().Host, "bucket", o.bucket)

	lc.OnStartup(func() {
		ctx := lc.Context()

		exists, err := o.client.BucketExists(ctx, o.bucket)
		if err != nil {
			o.logger.Error("bucket check failed", "error", err)
			return
		}
		if exists {
			o.logger.Info("storage bucket ready")
			return
		}

		if err := o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{}); err != nil {
			o.logger.Error("bucket creation failed", "error", err)
			return
		}
		o.logger.Info("storage bucket created")
	})

	return nil
}

func (o *objectStore) Store(ctx context.Context, key string, data []byte) error {
	name, err := cleanKey(key)
	if err != nil {
		return err
	}

	_, err = o.client.PutObject(ctx, o.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return o.mapError(err, "put object")
	}
	return nil
}

func (o *objectStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	name, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	obj, err := o.client.GetObject(ctx, o.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, o.mapError(err, "get object")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, o.mapError(err, "read object")
	}
	return data, nil
}

func (o *objectStore) Delete(ctx context.Context, key string) error {
	name, err := cleanKey(key)
	if err != nil {
		return err
	}

	if err := o.client.RemoveObject(ctx, o.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		mapped := o.mapError(err, "remove object")
		if errors.Is(mapped, ErrNotFound) {
			return nil
		}
		return mapped
	}
	return nil
}

func (o *objectStore) Validate(ctx context.Context, key string) (bool, error) {
	name, err := cleanKey(key)
	if err != nil {
		return false, err
	}

	if _, err := o.client.StatObject(ctx, o.bucket, name, minio.StatObjectOptions{}); err != nil {
		mapped := o.mapError(err, "stat object")
		if errors.Is(mapped, ErrNotFound) {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

func (o *objectStore) Path(ctx context.Context, key string) (string, error) {
	name, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", o.bucket, name), nil
}

func (o *objectStore) mapError(err error, op string) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey":
		return ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.Code == "AccessDenied":
		return ErrPermissionDenied
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
