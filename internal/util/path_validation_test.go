package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "Batman #12 (2024)", "Batman #12 (2024)"},
		{"slashes and colons", "Saga: Vol/1", "Saga- Vol-1"},
		{"all reserved characters", `a\b/c:d*e?f"g<h>i|j`, "a-b-c-d-e-f-g-h-i-j"},
		{"control characters", "Spawn\x00\x1f #1", "Spawn #1"},
		{"collapses dash runs", "X-Men ::: Red", "X-Men - Red"},
		{"collapses whitespace", "The   Boys\t#3", "The Boys #3"},
		{"trims dots and dashes", "..-Hidden-..", "Hidden"},
		{"reserved windows name", "con", "con_"},
		{"only punctuation", "???", "untitled"},
		{"empty", "", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFileName(tt.input))
		})
	}
}

func TestSanitizeFileName_Long(t *testing.T) {
	long := strings.Repeat("é", 300)
	got := SanitizeFileName(long)
	assert.LessOrEqual(t, len(got), maxNameBytes)
	assert.True(t, utf8.ValidString(got))
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()

	t.Run("creates missing nested directory", func(t *testing.T) {
		dir := filepath.Join(base, "a", "b", "c")
		require.NoError(t, EnsureDir(dir))
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory is fine", func(t *testing.T) {
		require.NoError(t, EnsureDir(base))
		entries, err := os.ReadDir(base)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), ".comicdl-check"), "write check file left behind")
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		file := filepath.Join(base, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		assert.Error(t, EnsureDir(file))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Error(t, EnsureDir(""))
	})
}
