package pipeline

import (
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeJPEG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s failed: %v", path, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode %s failed: %v", path, err)
	}
}

func TestParsePageNumber(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		prefix string
		want   int
		ok     bool
	}{
		{"first page", "page_doc1_1.jpg", "page_doc1_", 1, true},
		{"double digits", "page_doc1_12.jpg", "page_doc1_", 12, true},
		{"no number", "page_doc1_final.jpg", "page_doc1_", 0, false},
		{"zero", "page_doc1_0.jpg", "page_doc1_", 0, false},
		{"negative", "page_doc1_-3.jpg", "page_doc1_", 0, false},
		{"empty rest", "page_doc1_.jpg", "page_doc1_", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parsePageNumber(tt.file, tt.prefix)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("parsePageNumber(%q) = (%d, %t), want (%d, %t)", tt.file, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCollectPages_NumericOrder(t *testing.T) {
	dir := t.TempDir()

	// Written out of order with a two-digit page to catch lexicographic sorting.
	for _, n := range []int{10, 2, 1} {
		writeJPEG(t, filepath.Join(dir, "page_doc1_"+strconv.Itoa(n)+".jpg"), 100, 140)
	}

	pages, err := collectPages(dir, "doc1", 2000, 85, testLogger())
	if err != nil {
		t.Fatalf("collectPages() failed: %v", err)
	}

	if len(pages) != 3 {
		t.Fatalf("collectPages() returned %d pages, want 3", len(pages))
	}

	wantFiles := []string{"page_doc1_1.jpg", "page_doc1_2.jpg", "page_doc1_10.jpg"}
	for i, page := range pages {
		if page.PageNumber != i+1 {
			t.Errorf("pages[%d].PageNumber = %d, want %d", i, page.PageNumber, i+1)
		}
		if page.FileName != wantFiles[i] {
			t.Errorf("pages[%d].FileName = %q, want %q", i, page.FileName, wantFiles[i])
		}
		if page.Width != 100 || page.Height != 140 {
			t.Errorf("pages[%d] dimensions = %dx%d, want 100x140", i, page.Width, page.Height)
		}
		if page.Size == 0 {
			t.Errorf("pages[%d].Size = 0, want file size", i)
		}
	}
}

func TestCollectPages_SkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()

	writeJPEG(t, filepath.Join(dir, "page_doc1_1.jpg"), 80, 100)
	writeJPEG(t, filepath.Join(dir, "page_other_1.jpg"), 80, 100)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write notes.txt failed: %v", err)
	}

	pages, err := collectPages(dir, "doc1", 2000, 85, testLogger())
	if err != nil {
		t.Fatalf("collectPages() failed: %v", err)
	}

	if len(pages) != 1 {
		t.Fatalf("collectPages() returned %d pages, want 1", len(pages))
	}
	if pages[0].FileName != "page_doc1_1.jpg" {
		t.Fatalf("FileName = %q, want page_doc1_1.jpg", pages[0].FileName)
	}
}

func TestCollectPages_PlaceholderOnCorruptPage(t *testing.T) {
	dir := t.TempDir()

	writeJPEG(t, filepath.Join(dir, "page_doc1_1.jpg"), 80, 100)
	if err := os.WriteFile(filepath.Join(dir, "page_doc1_2.jpg"), []byte("not a jpeg"), 0644); err != nil {
		t.Fatalf("write corrupt page failed: %v", err)
	}

	pages, err := collectPages(dir, "doc1", 2000, 85, testLogger())
	if err != nil {
		t.Fatalf("collectPages() failed: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("collectPages() returned %d pages, want 2", len(pages))
	}

	corrupt := pages[1]
	if corrupt.PageNumber != 2 {
		t.Errorf("PageNumber = %d, want 2", corrupt.PageNumber)
	}
	if corrupt.Width != placeholderWidth || corrupt.Height != placeholderHeight {
		t.Errorf("dimensions = %dx%d, want placeholder %dx%d",
			corrupt.Width, corrupt.Height, placeholderWidth, placeholderHeight)
	}
	if corrupt.Size != 0 {
		t.Errorf("Size = %d, want 0 for placeholder record", corrupt.Size)
	}
}

func TestCollectPages_MissingDirectory(t *testing.T) {
	_, err := collectPages(filepath.Join(t.TempDir(), "absent"), "doc1", 2000, 85, testLogger())
	if err == nil {
		t.Fatal("collectPages() succeeded on missing directory, want error")
	}
}
