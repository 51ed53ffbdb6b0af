package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  Kind
	}{
		{"empty", "", Empty},
		{"whitespace only", "   \t\n", Empty},
		{"remote url", "https://cdn.example.com/media/sections/cards/abc/000000001-1700000000000.png", RemoteReference},
		{"relative path", "/uploads/picture.png", RemoteReference},
		{"inline payload", "data:image/png;base64,iVBORw0KGgo=", InlineUpload},
		{"inline with leading whitespace", "  data:image/png;base64,iVBORw0KGgo=", InlineUpload},
		{"huge inline payload", "data:image/png;base64," + strings.Repeat("A", 1<<20), InlineUpload},
		{"data in the middle is remote", "https://example.com/?q=data:image", RemoteReference},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.value); got != tc.want {
				t.Fatalf("Classify(%.40q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestDecodeInlineBase64(t *testing.T) {
	data, contentType, err := DecodeInline("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected decoded payload %q, got %q", "hello", data)
	}
	if contentType != "image/png" {
		t.Fatalf("expected content type image/png, got %q", contentType)
	}
}

func TestDecodeInlineUnencoded(t *testing.T) {
	data, contentType, err := DecodeInline("data:text/plain,hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected raw payload %q, got %q", "hello", data)
	}
	if contentType != "text/plain" {
		t.Fatalf("expected content type text/plain, got %q", contentType)
	}
}

func TestDecodeInlineDefaultsContentType(t *testing.T) {
	_, contentType, err := DecodeInline("data:;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "application/octet-stream" {
		t.Fatalf("expected fallback content type, got %q", contentType)
	}
}

func TestDecodeInlineRejectsNonInline(t *testing.T) {
	if _, _, err := DecodeInline("https://example.com/a.png"); !errors.Is(err, ErrNotInlinePayload) {
		t.Fatalf("expected ErrNotInlinePayload, got %v", err)
	}
}

func TestDecodeInlineRejectsMalformed(t *testing.T) {
	for _, value := range []string{
		"data:image/png;base64",
		"data:image/png;base64,!!!not-base64!!!",
	} {
		if _, _, err := DecodeInline(value); !errors.Is(err, ErrInvalidInlinePayload) {
			t.Fatalf("expected ErrInvalidInlinePayload for %q, got %v", value, err)
		}
	}
}
