// Package workdir prepares the input for an extraction: it resolves the
// application's store location per host OS and creates the working copy
// the extractor is allowed to open. The extraction core never touches
// the live store.
package workdir

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// DefaultStorePath resolves the Element Desktop local-storage directory
// for the current OS.
func DefaultStorePath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			return "", errors.New("APPDATA is not set")
		}
		return filepath.Join(appdata, "Element", "Local Storage", "leveldb"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home directory")
		}
		return filepath.Join(home, "Library", "Application Support", "Element", "Local Storage", "leveldb"), nil
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve config directory")
		}
		return filepath.Join(cfg, "Element", "Local Storage", "leveldb"), nil
	}
}

// IsStoreFile reports whether name belongs to the engine's native file
// set. The LOCK file is deliberately excluded: copying it serves nothing
// and a stale lock confuses the engine.
func IsStoreFile(name string) bool {
	if name == "CURRENT" || strings.HasPrefix(name, "MANIFEST-") {
		return true
	}
	if strings.HasPrefix(name, "LOG") {
		return true
	}
	switch filepath.Ext(name) {
	case ".log", ".ldb", ".sst":
		return true
	}
	return false
}

// CopyStore copies the engine file set from src into dst. dst must not
// exist yet; a working copy is made fresh every time so it provably
// diverges from nothing.
func CopyStore(src, dst string) (int, error) {
	if _, err := os.Stat(dst); err == nil {
		return 0, errors.Errorf("destination %s already exists", dst)
	}
	dents, err := os.ReadDir(src)
	if err != nil {
		return 0, errors.Wrapf(err, "read store directory %s", src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, errors.Wrapf(err, "create working copy %s", dst)
	}
	copied := 0
	for _, d := range dents {
		if d.IsDir() || !IsStoreFile(d.Name()) {
			continue
		}
		if err := copyFile(filepath.Join(src, d.Name()), filepath.Join(dst, d.Name())); err != nil {
			return copied, err
		}
		copied++
	}
	if copied == 0 {
		return 0, errors.Errorf("no store files in %s", src)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "copy %s", src)
	}
	return errors.Wrapf(out.Close(), "close %s", dst)
}
