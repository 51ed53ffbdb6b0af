package assets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a submitted asset value.
type Kind int

const (
	// Empty means no asset is referenced; never triggers storage calls.
	Empty Kind = iota
	// RemoteReference is an already-persisted URL and is kept untouched.
	RemoteReference
	// InlineUpload is not-yet-stored binary content that must be uploaded.
	InlineUpload
)

// sniffWindow bounds how much of the value Classify inspects. Inline
// payloads can be megabytes of base64; the marker sits in the first bytes.
const sniffWindow = 20

const inlineMarker = "data:"

// Classify decides whether a field value is an inline upload payload, a
// remote reference, or empty. This predicate alone drives whether the engine
// uploads, keeps, or clears a slot.
func Classify(value string) Kind {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Empty
	}

	sniff := trimmed
	if len(sniff) > sniffWindow {
		sniff = sniff[:sniffWindow]
	}
	if strings.HasPrefix(sniff, inlineMarker) {
		return InlineUpload
	}

	return RemoteReference
}

var (
	ErrNotInlinePayload = errors.New("value is not an inline upload payload")

	// ErrInvalidInlinePayload marks data-URI values that carry the inline
	// marker but cannot be decoded. It is a client error, not a storage one.
	ErrInvalidInlinePayload = errors.New("invalid inline upload payload")
)

// DecodeInline parses a data-URI upload payload into raw bytes and its
// declared content type.
func DecodeInline(value string) ([]byte, string, error) {
	trimmed := strings.TrimSpace(value)
	if Classify(trimmed) != InlineUpload {
		return nil, "", ErrNotInlinePayload
	}

	rest := strings.TrimPrefix(trimmed, inlineMarker)
	header, body, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", fmt.Errorf("%w: missing data separator", ErrInvalidInlinePayload)
	}

	contentType := header
	encoded := false
	if strings.HasSuffix(header, ";base64") {
		contentType = strings.TrimSuffix(header, ";base64")
		encoded = true
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if !encoded {
		return []byte(body), contentType, nil
	}

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid base64 data", ErrInvalidInlinePayload)
	}

	return data, contentType, nil
}
