// This file checks finished downloads before they are moved into the
// output directory. Comic archives (.cbz, .cbr, .cb7, .cbt) are opened and
// their image pages counted; anything else is accepted as-is.

package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/mholt/archives"
)

// ErrCorrupt is returned for files that look like an archive but cannot be
// read to the end.
var ErrCorrupt = errors.New("corrupt archive")

// ArchiveInfo describes a verified download. Format is empty when the file
// wasn't recognised as an archive.
type ArchiveInfo struct {
	Format string
	Pages  int
}

// isImageFile checks if a filename has a common image file extension.
func isImageFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".bmp":
		return true
	}
	return false
}

// Inspect identifies the file at filePath and, if it is an archive, walks
// every entry. nameHint is used for format detection in place of the
// on-disk name, which lets callers verify temp files.
func Inspect(ctx context.Context, filePath, nameHint string) (ArchiveInfo, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ArchiveInfo{}, err
	}
	defer f.Close()

	if nameHint == "" {
		nameHint = filePath
	}
	format, _, err := archives.Identify(ctx, nameHint, f)
	if errors.Is(err, archives.NoMatch) {
		return ArchiveInfo{}, nil
	}
	if err != nil {
		return ArchiveInfo{}, fmt.Errorf("identify %s: %w", filePath, err)
	}

	info := ArchiveInfo{Format: strings.TrimPrefix(format.Extension(), ".")}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		// A bare compressed stream, not a container of pages.
		return info, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ArchiveInfo{}, err
	}
	err = extractor.Extract(ctx, f, func(ctx context.Context, entry archives.FileInfo) error {
		if entry.IsDir() || !isImageFile(entry.NameInArchive) {
			return nil
		}
		info.Pages++
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return ArchiveInfo{}, ctx.Err()
		}
		return ArchiveInfo{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, filePath, err)
	}
	return info, nil
}
