package daemon

import (
	"bytes"
	"io"
	"os"
)

const tailChunk = 4096

// Tail returns up to the last n lines of the file at path, oldest first.
// A trailing newline does not count as an empty final line.
func Tail(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if n <= 0 || info.Size() == 0 {
		return nil, nil
	}

	// Read backwards until n+1 newlines are buffered or the start is reached.
	var buf []byte
	offset := info.Size()
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= n {
		size := int64(tailChunk)
		if offset < size {
			size = offset
		}
		offset -= size

		chunk := make([]byte, size)
		if _, err := f.ReadAt(chunk, offset); err != nil && err != io.EOF {
			return nil, err
		}
		buf = append(chunk, buf...)
	}

	buf = bytes.TrimSuffix(buf, []byte{'\n'})
	lines := bytes.Split(buf, []byte{'\n'})
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(bytes.TrimSuffix(l, []byte{'\r'}))
	}
	return out, nil
}
