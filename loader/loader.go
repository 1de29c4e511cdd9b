// Package loader reads shader binaries from disk.
//
// The bytes are opaque here; nothing in the file is interpreted.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Load reads the whole file at path. The returned buffer has exactly the
// length the file had when it was opened.
//
// On failure Load returns a nil buffer and an *Error of kind
// ErrResourceUnavailable. The file handle is closed on every path.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, unavailable(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, unavailable(path, fmt.Errorf("not a regular file (%s)", info.Mode().Type()))
	}

	size := info.Size()
	if int64(int(size)) != size {
		return nil, unavailable(path, errors.New("file too large"))
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, unavailable(path, err)
	}
	return buf, nil
}
