package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	controlChars  = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	reservedChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	dashRuns      = regexp.MustCompile(`-+`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

// Windows refuses these as file stems regardless of extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// maxNameBytes leaves room for an extension and a temp suffix under the
// common 255-byte filename limit.
const maxNameBytes = 200

// SanitizeFileName turns a release title into a name that is safe on
// Windows, macOS and Linux. The result is never empty.
func SanitizeFileName(name string) string {
	safe := spaceRuns.ReplaceAllString(name, " ")
	safe = controlChars.ReplaceAllString(safe, "")
	safe = reservedChars.ReplaceAllString(safe, "-")
	safe = dashRuns.ReplaceAllString(safe, "-")
	safe = strings.Trim(safe, " .-")

	if len(safe) > maxNameBytes {
		safe = truncateUTF8(safe, maxNameBytes)
		safe = strings.TrimRight(safe, " .-")
	}
	if reservedNames[strings.ToUpper(safe)] {
		safe += "_"
	}
	if safe == "" {
		safe = "untitled"
	}
	return safe
}

func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// EnsureDir creates dir (and its parents) if needed and checks that it is a
// writable directory.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	clean := filepath.Clean(dir)

	info, err := os.Stat(clean)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", clean)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(clean, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	default:
		return fmt.Errorf("cannot access path: %w", err)
	}

	if err := checkWritePermission(clean); err != nil {
		return fmt.Errorf("no write permission for %s: %w", clean, err)
	}
	return nil
}

func checkWritePermission(dir string) error {
	f, err := os.CreateTemp(dir, ".comicdl-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
