package safeio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned for user paths that climb out of the working tree.
var ErrPathTraversal = errors.New("path traversal detected")

// CleanUserPath cleans a user-provided path and rejects ".." segments.
// Returns paths with forward slashes for cross-platform consistency.
func CleanUserPath(p string) (string, error) {
	c := filepath.ToSlash(filepath.Clean(p))
	for _, seg := range strings.Split(c, "/") {
		if seg == ".." {
			return "", ErrPathTraversal
		}
	}
	return c, nil
}

// WriteFilePreservePerms writes data to path preserving existing file mode when possible.
// When the file does not exist, it uses a sane default of 0644.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	return os.WriteFile(path, data, mode)
}

// SameContent reports whether two files hold identical bytes. Sizes are
// compared first; content is then streamed in chunks.
func SameContent(a, b string) (bool, error) {
	sa, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if sa.Size() != sb.Size() {
		return false, nil
	}

	fa, err := os.Open(a) // #nosec G304 -- caller-selected icon paths
	if err != nil {
		return false, err
	}
	defer func() { _ = fa.Close() }()
	fb, err := os.Open(b) // #nosec G304 -- caller-selected icon paths
	if err != nil {
		return false, err
	}
	defer func() { _ = fb.Close() }()

	const chunk = 32 * 1024
	bufA := make([]byte, chunk)
	bufB := make([]byte, chunk)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if errA != nil && !doneA {
			return false, fmt.Errorf("read %s: %w", a, errA)
		}
		if errB != nil && !doneB {
			return false, fmt.Errorf("read %s: %w", b, errB)
		}
		if doneA || doneB {
			return doneA && doneB, nil
		}
	}
}
