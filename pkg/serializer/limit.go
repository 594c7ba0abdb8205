package serializer

import (
	"fmt"
	"io"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
)

// limitedReader fails once more than limit bytes are read, unlike
// io.LimitReader which stops silently and leaves the decoder with a
// truncated document.
type limitedReader struct {
	r        io.Reader
	limit    int64
	read     int64
	exceeded bool
}

func newLimitedReader(r io.Reader, limit int64) *limitedReader {
	return &limitedReader{r: r, limit: limit}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, l.tooLarge()
	}
	if remaining := l.limit + 1 - l.read; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		l.exceeded = true
		return 0, l.tooLarge()
	}
	return n, err
}

func (l *limitedReader) tooLarge() error {
	return errors.NewWithContext(errors.ErrCodePayloadTooLarge,
		fmt.Sprintf("document exceeds %d bytes", l.limit),
		map[string]any{"limit": l.limit})
}
