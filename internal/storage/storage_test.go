package storage

import (
	"context"
	"regexp"
	"strings"
	"testing"
)

var keyPattern = regexp.MustCompile(`^media/sections/cards/owner-1/\d{9}-\d+\.png$`)

func TestBuildObjectKeyLayout(t *testing.T) {
	key := BuildObjectKey("media", "sections/cards", "owner-1", "png")
	if !keyPattern.MatchString(key) {
		t.Fatalf("key %q does not match expected layout", key)
	}
}

func TestBuildObjectKeyStripsLeadingDot(t *testing.T) {
	key := BuildObjectKey("media", "p", "o", ".jpg")
	if !strings.HasSuffix(key, ".jpg") || strings.HasSuffix(key, "..jpg") {
		t.Fatalf("expected single .jpg suffix, got %q", key)
	}
}

func TestKeyFromURL(t *testing.T) {
	base := "http://localhost:9000/content-studio"
	url := base + "/media/sections/cards/owner/000000001-1700000000000.png"
	if key := KeyFromURL(base, url); key != "media/sections/cards/owner/000000001-1700000000000.png" {
		t.Fatalf("unexpected key %q", key)
	}

	if key := KeyFromURL(base, "https://elsewhere.example.com/other/file.png"); key != "" {
		t.Fatalf("foreign URL should yield empty key, got %q", key)
	}

	// A foreign URL whose path contains the container prefix is still foreign.
	if key := KeyFromURL(base, "https://cdn.example.com/media/x.png"); key != "" {
		t.Fatalf("foreign URL with a media path must not resolve to a key, got %q", key)
	}
}

func TestExtensionForContentType(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":      "jpg",
		"image/png":       "png",
		"IMAGE/PNG":       "png",
		"image/webp":      "webp",
		"application/pdf": "pdf",
		"video/mp4":       "bin",
		"":                "bin",
	}
	for contentType, want := range cases {
		if got := ExtensionForContentType(contentType); got != want {
			t.Fatalf("ExtensionForContentType(%q) = %q, want %q", contentType, got, want)
		}
	}
}

func TestMemoryStoreUploadCopyDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("media")

	url, err := store.Upload(ctx, "sections/image", "owner-a", []byte("payload"), "image/png")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !store.Has(url) {
		t.Fatalf("uploaded object should be retrievable via its URL")
	}

	copyURL, err := store.Copy(ctx, url, "sections/image", "owner-b")
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if copyURL == url {
		t.Fatalf("copy should mint a fresh key")
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 objects after copy, got %d", store.Len())
	}

	if err := store.Delete(ctx, []string{store.KeyFromURL(url)}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if store.Has(url) {
		t.Fatalf("deleted object should be gone")
	}
	if !store.Has(copyURL) {
		t.Fatalf("copy must survive deletion of its source")
	}
}

func TestMemoryStoreCopyOfUnknownSourceFails(t *testing.T) {
	store := NewMemoryStore("media")
	if _, err := store.Copy(context.Background(), "memory://media-store/media/p/o/missing.png", "p", "o"); err == nil {
		t.Fatalf("expected error for unknown source object")
	}
}
