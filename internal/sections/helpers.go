package sections

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Asset path segments, one per slot-bearing container. They are part of the
// storage key layout shared with other consumers of the bucket.
const (
	cardAssetPath       = "sections/cards"
	bannerAssetPath     = "sections/banner"
	attachmentAssetPath = "sections/attachments"
	imageAssetPath      = "sections/image"
	gridAssetPath       = "sections/grids"
	galleryAssetPath    = "sections/gallery"
)

// maxConcurrentAssetOps bounds the per-collection fan-out of uploads and
// copies. Items operate on distinct storage keys, so they are safe to run in
// parallel; the join happens before the resolved collection is persisted.
const maxConcurrentAssetOps = 4

func forEachItem(ctx context.Context, count int, fn func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAssetOps)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			return fn(ctx, i)
		})
	}
	return g.Wait()
}
