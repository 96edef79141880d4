package pipeline

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func decodeDims(t *testing.T, path string) (int, int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s failed: %v", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s failed: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

func TestOptimizePage_SmallImageUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_doc1_1.jpg")
	writeJPEG(t, path, 400, 600)

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read page failed: %v", err)
	}

	width, height, size, err := optimizePage(path, 2000, 85, testLogger())
	if err != nil {
		t.Fatalf("optimizePage() failed: %v", err)
	}

	if width != 400 || height != 600 {
		t.Errorf("dimensions = %dx%d, want 400x600", width, height)
	}
	if size != int64(len(before)) {
		t.Errorf("size = %d, want %d", size, len(before))
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read page failed: %v", err)
	}
	if len(after) != len(before) {
		t.Error("optimizePage() rewrote an image already within bounds")
	}
}

func TestOptimizePage_DownscalesOversized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_doc1_1.jpg")
	writeJPEG(t, path, 3000, 1500)

	width, height, size, err := optimizePage(path, 2000, 85, testLogger())
	if err != nil {
		t.Fatalf("optimizePage() failed: %v", err)
	}

	if width != 2000 || height != 1000 {
		t.Errorf("reported dimensions = %dx%d, want 2000x1000", width, height)
	}
	if size == 0 {
		t.Error("size = 0, want rewritten file size")
	}

	gotW, gotH := decodeDims(t, path)
	if gotW != 2000 || gotH != 1000 {
		t.Errorf("file dimensions = %dx%d, want 2000x1000", gotW, gotH)
	}
}

func TestOptimizePage_PortraitBound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_doc1_1.jpg")
	writeJPEG(t, path, 1200, 2400)

	width, height, _, err := optimizePage(path, 2000, 85, testLogger())
	if err != nil {
		t.Fatalf("optimizePage() failed: %v", err)
	}

	if width != 1000 || height != 2000 {
		t.Errorf("dimensions = %dx%d, want 1000x2000", width, height)
	}
}

func TestOptimizePage_Missing(t *testing.T) {
	_, _, _, err := optimizePage(filepath.Join(t.TempDir(), "absent.jpg"), 2000, 85, testLogger())
	if err == nil {
		t.Fatal("optimizePage() succeeded on missing file, want error")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"within bounds untouched", 200, 300, 300, 400, 200, 300},
		{"exact bounds untouched", 300, 400, 300, 400, 300, 400},
		{"landscape scaled", 4000, 2000, 2000, 2000, 2000, 1000},
		{"portrait scaled", 600, 1600, 300, 400, 150, 400},
		{"never upscaled", 50, 50, 300, 400, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			dst := fitWithin(src, tt.maxW, tt.maxH)

			bounds := dst.Bounds()
			if bounds.Dx() != tt.wantW || bounds.Dy() != tt.wantH {
				t.Fatalf("fitWithin(%dx%d, %dx%d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.maxW, tt.maxH, bounds.Dx(), bounds.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}
