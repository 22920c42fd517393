package downloader

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vrsandeep/comicdl/internal/library"
	"github.com/vrsandeep/comicdl/internal/models"
	"github.com/vrsandeep/comicdl/internal/util"
)

// DefaultExtension is used when neither the response nor its address names
// a known file type.
const DefaultExtension = ".cbz"

var knownExtensions = map[string]bool{
	".cbz": true, ".cbr": true, ".cb7": true, ".cbt": true,
	".zip": true, ".rar": true, ".7z": true, ".tar": true,
	".pdf": true, ".epub": true,
}

// downloadDirect streams the job's link into the output directory. The
// body goes to a temp file next to the destination and is renamed into
// place only after it has been fully written and verified. Jobs sharing a
// file name run one after the other, so a later one finds the earlier file.
func (d *Dispatcher) downloadDirect(ctx context.Context, job *models.DownloadJob) error {
	title := job.Release.Title
	stem := util.SanitizeFileName(title)
	unlock := d.stems.lock(stem)
	defer unlock()

	if existing, ok := findExisting(d.opts.OutputDir, stem); ok {
		job.Destination = existing
		job.Skipped = true
		return nil
	}

	resp, err := d.fetcher.Open(ctx, job.Link.URL)
	if err != nil {
		return failure(title, ErrFetch, err)
	}
	defer resp.Body.Close()

	dest := filepath.Join(d.opts.OutputDir, stem+extensionFor(resp))
	job.Destination = dest

	tmp, err := os.CreateTemp(d.opts.OutputDir, ".comicdl-*.part")
	if err != nil {
		return failure(title, ErrWrite, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	transfer := d.reporter.TransferStarted(job, resp.ContentLength)
	body := &readErrRecorder{r: resp.Body}
	_, err = io.Copy(io.MultiWriter(tmp, counter{transfer}), body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	transfer.Finish(err)
	if err != nil {
		if body.err != nil {
			return failure(title, ErrFetch, err)
		}
		return failure(title, ErrWrite, err)
	}

	info, err := library.Inspect(ctx, tmpPath, dest)
	if err != nil {
		if errors.Is(err, library.ErrCorrupt) {
			return failure(title, ErrCorruptArchive, err)
		}
		return failure(title, ErrWrite, err)
	}
	job.Pages = info.Pages

	if err := os.Rename(tmpPath, dest); err != nil {
		return failure(title, ErrWrite, err)
	}
	committed = true
	d.log.Debug("file written", zap.String("path", dest), zap.String("format", info.Format), zap.Int("pages", info.Pages))
	return nil
}

// findExisting looks for a non-empty file named stem, with or without a
// file extension, in dir.
func findExisting(dir, stem string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name != stem && !(strings.HasPrefix(name, stem) && isExtension(name[len(stem):])) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		return filepath.Join(dir, name), true
	}
	return "", false
}

// isExtension accepts ".cbz", ".pdf" and the like, but not ". 3" as in
// "Vol. 3".
func isExtension(s string) bool {
	if len(s) < 2 || len(s) > 6 || s[0] != '.' {
		return false
	}
	for _, r := range s[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// extensionFor picks the file extension from the Content-Disposition
// filename, then from the final address after redirects.
func extensionFor(resp *http.Response) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if ext := strings.ToLower(path.Ext(params["filename"])); knownExtensions[ext] {
				return ext
			}
		}
	}
	if resp.Request != nil && resp.Request.URL != nil {
		if ext := strings.ToLower(path.Ext(resp.Request.URL.Path)); knownExtensions[ext] {
			return ext
		}
	}
	return DefaultExtension
}

// readErrRecorder remembers the first read error so a broken connection
// can be told apart from a failing disk.
type readErrRecorder struct {
	r   io.Reader
	err error
}

func (r *readErrRecorder) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF && r.err == nil {
		r.err = err
	}
	return n, err
}
