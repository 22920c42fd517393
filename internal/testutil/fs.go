package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestCBZ writes a zip archive at dir/name holding one entry per page
// name, each with a few bytes of content. Names ending in "/" become
// directories.
func CreateTestCBZ(t *testing.T, dir, name string, pages []string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create temp cbz file: %v", err)
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	for _, page := range pages {
		w, err := zipWriter.Create(page)
		if err != nil {
			t.Fatalf("Failed to create entry '%s' in zip: %v", page, err)
		}
		if page[len(page)-1] != '/' {
			if _, err := w.Write([]byte("image data")); err != nil {
				t.Fatalf("Failed to write entry '%s': %v", page, err)
			}
		}
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return filePath
}

// CBZBytes returns the contents of a zip archive with the given page names.
func CBZBytes(t *testing.T, pages ...string) []byte {
	t.Helper()
	path := CreateTestCBZ(t, t.TempDir(), "pages.cbz", pages)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read cbz: %v", err)
	}
	return data
}
