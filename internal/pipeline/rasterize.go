package pipeline

import (
	"context"
	"fmt"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gen2brain/go-fitz"
)

const (
	renderQuality = 90

	// Dimensions recorded for a page whose rendered file could not be
	// measured. The file stays on disk; readers get a usable record.
	placeholderWidth  = 800
	placeholderHeight = 1000
)

// PageImage describes one rendered page as it will be persisted.
type PageImage struct {
	PageNumber int
	FileName   string
	Width      int
	Height     int
	Size       int64
}

// rasterize renders every page of the PDF at pdfPath into pagesDir as
// page_<docID>_<n>.jpg, n starting at 1. Any render failure aborts the
// whole document. Rendering is the long pole of ingestion, so ctx is
// checked before every page to honor the per-document timeout and
// shutdown cancellation.
func rasterize(ctx context.Context, pdfPath, pagesDir, docID string, dpi int) error {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer doc.Close()

	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		return fmt.Errorf("create pages directory: %w", err)
	}

	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		img, err := doc.ImageDPI(n, float64(dpi))
		if err != nil {
			return fmt.Errorf("%w: page %d: %v", ErrConversionFailed, n+1, err)
		}

		name := fmt.Sprintf("page_%s_%d.jpg", docID, n+1)
		out, err := os.Create(filepath.Join(pagesDir, name))
		if err != nil {
			return fmt.Errorf("create page file %s: %w", name, err)
		}

		if err := jpeg.Encode(out, img, &jpeg.Options{Quality: renderQuality}); err != nil {
			out.Close()
			return fmt.Errorf("%w: encode page %d: %v", ErrConversionFailed, n+1, err)
		}

		if err := out.Close(); err != nil {
			return fmt.Errorf("close page file %s: %w", name, err)
		}
	}

	return nil
}

// collectPages lists the rendered page files for docID, orders them by
// their embedded page number, and measures and optimizes each one. Page
// numbers in the result are ordinals within the sorted listing, so gaps
// in the file names never produce gaps in the records. Per-page
// measurement failures yield placeholder dimensions rather than failing
// the document.
func collectPages(pagesDir, docID string, maxDimension, quality int, logger *slog.Logger) ([]PageImage, error) {
	entries, err := os.ReadDir(pagesDir)
	if err != nil {
		return nil, fmt.Errorf("read pages directory: %w", err)
	}

	prefix := fmt.Sprintf("page_%s_", docID)

	type pageFile struct {
		name   string
		number int
	}

	var files []pageFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		number, ok := parsePageNumber(entry.Name(), prefix)
		if !ok {
			continue
		}
		files = append(files, pageFile{name: entry.Name(), number: number})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].number < files[j].number
	})

	pages := make([]PageImage, 0, len(files))
	for i, f := range files {
		page := PageImage{
			PageNumber: i + 1,
			FileName:   f.name,
			Width:      placeholderWidth,
			Height:     placeholderHeight,
		}

		width, height, size, err := optimizePage(filepath.Join(pagesDir, f.name), maxDimension, quality, logger)
		if err != nil {
			logger.Warn("page measurement failed, recording placeholder dimensions",
				"document_id", docID,
				"file", f.name,
				"error", err)
		} else {
			page.Width = width
			page.Height = height
			page.Size = size
		}

		pages = append(pages, page)
	}

	return pages, nil
}

// parsePageNumber extracts the trailing page number from a rendered
// page file name such as page_<docID>_12.jpg.
func parsePageNumber(name, prefix string) (int, bool) {
	rest := strings.TrimPrefix(name, prefix)
	rest = strings.TrimSuffix(rest, filepath.Ext(rest))
	number, err := strconv.Atoi(rest)
	if err != nil || number < 1 {
		return 0, false
	}
	return number, true
}
