package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"content-studio-backend/pkg/logger"
)

// MinIOStore stores assets in a MinIO (or any S3-compatible) bucket.
type MinIOStore struct {
	client          *minio.Client
	bucket          string
	containerPrefix string
	publicBase      string
}

func NewMinIOStore(endpoint, accessKeyID, secretAccessKey, bucket, containerPrefix string, secure bool) (*MinIOStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	return &MinIOStore{
		client:          client,
		bucket:          bucket,
		containerPrefix: containerPrefix,
		publicBase:      fmt.Sprintf("%s/%s", client.EndpointURL(), bucket),
	}, nil
}

func (s *MinIOStore) Upload(ctx context.Context, path string, ownerID string, data []byte, contentType string) (string, error) {
	key := BuildObjectKey(s.containerPrefix, path, ownerID, ExtensionForContentType(contentType))

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return s.urlFor(key), nil
}

func (s *MinIOStore) Copy(ctx context.Context, sourceURL string, destPath string, destOwnerID string) (string, error) {
	sourceKey := s.KeyFromURL(sourceURL)
	if sourceKey == "" {
		return "", fmt.Errorf("source url %q is not managed by this store", sourceURL)
	}

	ext := "bin"
	if idx := lastDot(sourceKey); idx >= 0 {
		ext = sourceKey[idx+1:]
	}
	destKey := BuildObjectKey(s.containerPrefix, destPath, destOwnerID, ext)

	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: destKey},
		minio.CopySrcOptions{Bucket: s.bucket, Object: sourceKey},
	)
	if err != nil {
		return "", fmt.Errorf("failed to copy object %s: %w", sourceKey, err)
	}

	return s.urlFor(destKey), nil
}

// Delete removes a batch of objects. Individual failures are logged and
// swallowed so a leaked blob never fails the surrounding mutation.
func (s *MinIOStore) Delete(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			logger.Warn("Failed to delete object", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (s *MinIOStore) urlFor(key string) string {
	return fmt.Sprintf("%s/%s", s.publicBase, key)
}

// KeyFromURL resolves one of this bucket's URLs back to its object key.
func (s *MinIOStore) KeyFromURL(url string) string {
	return KeyFromURL(s.publicBase, url)
}

func lastDot(key string) int {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '.' {
			return i
		}
		if key[i] == '/' {
			return -1
		}
	}
	return -1
}
