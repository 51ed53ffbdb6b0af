package storage

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// BlobStore is the remote asset store as seen by the reconciliation engine.
// Upload and Copy return the public URL of the stored object. Delete accepts
// a batch of storage keys; failures on individual keys are swallowed by the
// implementation. KeyFromURL resolves one of the store's own public URLs back
// to its key and returns "" for any URL the store does not manage.
type BlobStore interface {
	Upload(ctx context.Context, path string, ownerID string, data []byte, contentType string) (string, error)
	Copy(ctx context.Context, sourceURL string, destPath string, destOwnerID string) (string, error)
	Delete(ctx context.Context, keys []string) error
	KeyFromURL(url string) string
}

// BuildObjectKey produces the storage key for a new object. The layout
// "{containerPrefix}/{filepath}/{ownerID}/{randomNumeric}-{epochMillis}.{ext}"
// is shared with the other consumers of the bucket and must not change.
func BuildObjectKey(containerPrefix, filepath, ownerID, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s/%s/%s/%09d-%d.%s",
		containerPrefix, filepath, ownerID, rand.Intn(1_000_000_000), time.Now().UnixMilli(), ext)
}

// KeyFromURL recovers an object key from a stored public URL. The URL must
// start with the store's public base; a foreign URL whose path merely happens
// to contain the container prefix yields "" and is never treated as a
// managed object.
func KeyFromURL(publicBase, url string) string {
	base := strings.TrimSuffix(publicBase, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return ""
	}
	return url[len(base):]
}

// ExtensionForContentType maps a MIME type to a storage key extension.
func ExtensionForContentType(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/svg+xml":
		return "svg"
	case "image/x-icon", "image/vnd.microsoft.icon":
		return "ico"
	case "application/pdf":
		return "pdf"
	default:
		return "bin"
	}
}
