package assets

import (
	"context"
	"fmt"
	"strings"

	"content-studio-backend/internal/models"
	"content-studio-backend/internal/storage"
	"content-studio-backend/pkg/logger"
)

// Adapter translates slot-level lifecycle operations (stage, replace,
// release, duplicate) into calls on the blob store. Uploads are fatal on
// failure; deletes are best-effort and only logged.
type Adapter struct {
	store storage.BlobStore
}

func NewAdapter(store storage.BlobStore) *Adapter {
	return &Adapter{store: store}
}

// slotValue picks the effective submitted value of a slot. When both the raw
// URL and the detail image are present, the detail image wins; the same
// precedence applies on the update and clone paths.
func slotValue(slot models.AssetSlot) string {
	if detail := strings.TrimSpace(slot.DetailImage()); detail != "" {
		return detail
	}
	return strings.TrimSpace(slot.URL)
}

// Stage resolves a slot on item creation: inline payloads are uploaded,
// remote references pass through, empty slots stay empty. There is no prior
// asset to delete.
func (a *Adapter) Stage(ctx context.Context, submitted models.AssetSlot, path, ownerID string) (models.AssetSlot, error) {
	value := slotValue(submitted)

	switch Classify(value) {
	case Empty:
		return models.AssetSlot{}, nil
	case RemoteReference:
		return resolvedSlot(submitted, value), nil
	default:
		url, err := a.upload(ctx, value, path, ownerID)
		if err != nil {
			return models.AssetSlot{}, err
		}
		return resolvedSlot(submitted, url), nil
	}
}

// Apply reconciles a submitted slot against its persisted state on item
// update. An inline payload replaces the old asset (delete then upload); an
// empty submission clears the slot and releases the old asset; a remote
// reference is kept as-is.
func (a *Adapter) Apply(ctx context.Context, original, submitted models.AssetSlot, path, ownerID string) (models.AssetSlot, error) {
	value := slotValue(submitted)

	switch Classify(value) {
	case Empty:
		a.Release(ctx, original)
		return models.AssetSlot{}, nil
	case RemoteReference:
		return resolvedSlot(submitted, value), nil
	default:
		a.Release(ctx, original)
		url, err := a.upload(ctx, value, path, ownerID)
		if err != nil {
			return models.AssetSlot{}, err
		}
		return resolvedSlot(submitted, url), nil
	}
}

// Release schedules best-effort deletion of every populated slot. Failures
// leak the blob but never fail the surrounding mutation.
func (a *Adapter) Release(ctx context.Context, slots ...models.AssetSlot) {
	// Deletes are allowed to outlive a cancelled request so state is not
	// left half-applied.
	ctx = context.WithoutCancel(ctx)

	var keys []string
	for _, slot := range slots {
		for _, url := range []string{slot.URL, slot.DetailImage()} {
			if Classify(url) != RemoteReference {
				continue
			}
			if key := a.store.KeyFromURL(url); key != "" {
				keys = append(keys, key)
			}
		}
	}
	if len(keys) == 0 {
		return
	}

	if err := a.store.Delete(ctx, keys); err != nil {
		logger.Warn("Failed to release assets", map[string]interface{}{
			"keys":  keys,
			"error": err.Error(),
		})
	}
}

// Duplicate copies a slot's backing asset for a new owner. A failed copy
// degrades the slot to empty instead of failing the whole duplication.
func (a *Adapter) Duplicate(ctx context.Context, slot models.AssetSlot, path, newOwnerID string) models.AssetSlot {
	ctx = context.WithoutCancel(ctx)

	value := slotValue(slot)
	if Classify(value) != RemoteReference {
		return models.AssetSlot{}
	}

	url, err := a.store.Copy(ctx, value, path, newOwnerID)
	if err != nil {
		logger.Warn("Failed to duplicate asset, leaving slot empty", map[string]interface{}{
			"source": value,
			"error":  err.Error(),
		})
		return models.AssetSlot{}
	}

	return resolvedSlot(slot, url)
}

func (a *Adapter) upload(ctx context.Context, value, path, ownerID string) (string, error) {
	// Uploads run detached from request cancellation; an aborted request
	// must not strand a half-written object graph.
	ctx = context.WithoutCancel(ctx)

	data, contentType, err := DecodeInline(value)
	if err != nil {
		return "", err
	}

	url, err := a.store.Upload(ctx, path, ownerID, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}
	return url, nil
}

// resolvedSlot builds the persisted form of a slot: the resolved URL plus
// the submitted metadata, with any inline payload stripped out of the detail.
func resolvedSlot(submitted models.AssetSlot, url string) models.AssetSlot {
	out := models.AssetSlot{URL: url}
	if submitted.Detail != nil {
		out.Detail = &models.AssetDetail{
			Alt:        submitted.Detail.Alt,
			Attributes: submitted.Detail.Attributes,
		}
		if out.Detail.Alt == "" && len(out.Detail.Attributes) == 0 {
			out.Detail = nil
		}
	}
	return out
}
