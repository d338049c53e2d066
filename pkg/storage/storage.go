// Package storage stores listing images in an S3-compatible bucket
// (Cloudflare R2 in production, MinIO locally).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/oklog/ulid/v2"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
)

const (
	cacheControl       = "public, max-age=31536000"
	defaultContentType = "application/octet-stream"
)

// ErrBucketMissing is returned by Ping when the configured bucket does not exist.
var ErrBucketMissing = errors.New("storage: bucket does not exist")

// objectAPI is the subset of *minio.Client used here.
type objectAPI interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// Store uploads and deletes objects and builds their public URLs.
type Store struct {
	api           objectAPI
	bucket        string
	publicBaseURL string
	newID         func() string
}

// New connects to the bucket described by cfg. No request is made until the
// first call; use Ping to verify reachability.
func New(cfg *config.Config) (*Store, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
		Region: cfg.StorageRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: new client: %w", err)
	}
	return newStore(client, cfg.StorageBucket, cfg.StoragePublicBaseURL), nil
}

func newStore(api objectAPI, bucket, publicBaseURL string) *Store {
	return &Store{
		api:           api,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		newID:         func() string { return strings.ToLower(ulid.Make().String()) },
	}
}

// Upload writes r under prefix and returns the object key and its public URL.
// size may be -1 when unknown.
func (s *Store) Upload(ctx context.Context, prefix string, r io.Reader, size int64, fileName, contentType string) (key, url string, err error) {
	key = s.buildKey(prefix, fileName, contentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	if _, err := s.api.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	}); err != nil {
		return "", "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return key, s.PublicURL(key), nil
}

// Delete removes the object at key. Removing a missing object is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: remove %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the URL clients use to fetch key.
func (s *Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}

// Ping reports whether the bucket is reachable and exists.
func (s *Store) Ping(ctx context.Context) error {
	ok, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket exists: %w", err)
	}
	if !ok {
		return ErrBucketMissing
	}
	return nil
}

func (s *Store) buildKey(prefix, fileName, contentType string) string {
	name := s.newID()
	if ext := Extension(contentType, fileName); ext != "" {
		name += "." + ext
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// Extension infers a file extension (without the dot) from the content type,
// falling back to the file name. It returns "" when neither yields one.
func Extension(contentType, fileName string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	}
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || dot == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[dot+1:])
}
