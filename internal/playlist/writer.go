package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

var (
	ErrIO     = errors.New("playlist write failed")
	errLocked = errors.New("another run is writing this playlist")
)

// Write joins lines with "\n" and replaces path with the result, UTF-8
// encoded. A sibling lock file keeps concurrent runs from interleaving.
func Write(path string, lines []string) (err error) {
	lock := flock.New(lockPath(path))
	ok, err := lock.TryLock()
	if err != nil {
		return wrapIO(path, "acquire lock", err)
	}
	if !ok {
		return wrapIO(path, "acquire lock", errLocked)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = wrapIO(path, "release lock", unlockErr)
		}
	}()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return wrapIO(path, "open", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = wrapIO(path, "close", closeErr)
		}
	}()

	content := strings.ToValidUTF8(strings.Join(lines, "\n"), "\uFFFD")
	if _, err := file.WriteString(content); err != nil {
		return wrapIO(path, "write", err)
	}
	return nil
}

// WritePlaylist writes pl to path.
func WritePlaylist(path string, pl *Playlist) error {
	return Write(path, pl.lines)
}

func lockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".lock")
}

func wrapIO(path, operation string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, operation, path, err)
}
