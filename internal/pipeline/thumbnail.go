package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/edustack/lessonlab/internal/storage"
)

const (
	thumbnailPrefix = "thumb_"
	thumbnailExt    = ".jpeg"
)

// ThumbnailKey returns the storage key for a document's thumbnail.
func ThumbnailKey(docID string) string {
	return storage.ThumbnailsPrefix + "/" + thumbnailPrefix + docID + thumbnailExt
}

// generateThumbnail scales the first rendered page down to fit the
// configured thumbnail bounds and stores it under the document's
// thumbnail key.
func (s *system) generateThumbnail(ctx context.Context, docID, firstPagePath string) error {
	f, err := os.Open(firstPagePath)
	if err != nil {
		return fmt.Errorf("open first page: %w", err)
	}

	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode first page: %w", err)
	}

	scaled := fitWithin(img, s.config.ThumbWidth, s.config.ThumbHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: s.config.ThumbQuality}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}

	if err := s.storage.Store(ctx, ThumbnailKey(docID), buf.Bytes()); err != nil {
		return fmt.Errorf("store thumbnail: %w", err)
	}

	return nil
}
