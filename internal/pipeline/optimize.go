package pipeline

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
)

// optimizePage measures the image at path and, when either dimension
// exceeds maxDimension, rewrites it scaled down to fit within
// maxDimension x maxDimension. The rewrite is atomic: a temp file is
// encoded next to the original and renamed over it. A failed rewrite is
// logged and the original dimensions are kept; only measurement
// failures surface as errors.
func optimizePage(path string, maxDimension, quality int, logger *slog.Logger) (width, height int, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("open page image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("decode page image: %w", err)
	}

	width, height = cfg.Width, cfg.Height

	if width > maxDimension || height > maxDimension {
		w, h, rerr := rewriteScaled(path, maxDimension, quality)
		if rerr != nil {
			logger.Warn("page optimization failed, keeping original", "file", path, "error", rerr)
		} else {
			width, height = w, h
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("stat page image: %w", err)
	}

	return width, height, info.Size(), nil
}

func rewriteScaled(path string, maxDimension, quality int) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}

	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return 0, 0, err
	}

	scaled := fitWithin(img, maxDimension, maxDimension)

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return 0, 0, err
	}

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: quality}); err != nil {
		out.Close()
		os.Remove(tmp)
		return 0, 0, err
	}

	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return 0, 0, err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, 0, err
	}

	bounds := scaled.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
