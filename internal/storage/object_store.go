package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"fryegg/api/internal/config"
)

const profileImagePrefix = "profile-images"

type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &ObjectStore{
		client: client,
		cfg:    cfg,
	}, nil
}

// FilesBucket names the public bucket avatars live in.
func (s *ObjectStore) FilesBucket() string {
	return s.cfg.BucketFiles
}

func (s *ObjectStore) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.cfg.BucketFiles, s.cfg.BucketPicture} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("bucket exists %s: %w", bucket, err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

// ProfileImageKey builds the object key for a user's uploaded avatar.
func ProfileImageKey(userID string, ext string) string {
	name := fmt.Sprintf("%d.%s", time.Now().UnixMilli(), strings.TrimPrefix(ext, "."))
	return path.Join(profileImagePrefix, userID, name)
}

// PutProfileImage uploads an avatar into the files bucket and returns
// its public URL.
func (s *ObjectStore) PutProfileImage(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.BucketFiles, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.PublicURL(s.cfg.BucketFiles, key), nil
}

// RemoveProfileImage is the compensating delete when the row write that
// should reference the uploaded object fails.
func (s *ObjectStore) RemoveProfileImage(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.cfg.BucketFiles, key, minio.RemoveObjectOptions{})
}

// PublicURL derives the unauthenticated URL of a stored object.
func (s *ObjectStore) PublicURL(bucket, key string) string {
	base := strings.TrimSuffix(s.cfg.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, key)
}

// SignedPictureURL issues a short-lived download link for an object in
// the private picture bucket.
func (s *ObjectStore) SignedPictureURL(ctx context.Context, key string) (string, error) {
	ttl := s.cfg.SignedURLTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	u, err := s.client.PresignedGetObject(ctx, s.cfg.BucketPicture, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// ProfileObject describes one stored avatar for the orphan sweep.
type ProfileObject struct {
	Key          string
	LastModified time.Time
}

// ListProfileObjects walks every object under the profile-images prefix.
func (s *ObjectStore) ListProfileObjects(ctx context.Context) ([]ProfileObject, error) {
	var objects []ProfileObject
	for info := range s.client.ListObjects(ctx, s.cfg.BucketFiles, minio.ListObjectsOptions{
		Prefix:    profileImagePrefix + "/",
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects: %w", info.Err)
		}
		objects = append(objects, ProfileObject{Key: info.Key, LastModified: info.LastModified})
	}
	return objects, nil
}
