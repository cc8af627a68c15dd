package netutil

import (
	"errors"
	"fmt"
	"io"
)

// LimitedReader wraps an io.Reader with a maximum size limit.
// Unlike io.LimitReader it reports overflow as an error instead of
// silently truncating, so oversized asset downloads fail loudly.
type LimitedReader struct {
	R     io.Reader // underlying reader
	N     int64     // max bytes remaining
	Limit int64     // original limit (for error messages)
	read  int64     // bytes read so far
}

// NewLimitedReader creates a reader that will read at most limit bytes.
func NewLimitedReader(r io.Reader, limit int64) *LimitedReader {
	return &LimitedReader{
		R:     r,
		N:     limit,
		Limit: limit,
	}
}

// Read implements io.Reader with size limit enforcement.
func (l *LimitedReader) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, &SizeLimitExceededError{Limit: l.Limit, Read: l.read}
	}

	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}

	n, err = l.R.Read(p)
	l.N -= int64(n)
	l.read += int64(n)

	// At the limit, probe one extra byte to distinguish "exactly limit
	// bytes" from "more data pending".
	if l.N == 0 && err == nil {
		var buf [1]byte
		extra, extraErr := l.R.Read(buf[:])
		if extra > 0 {
			return n, &SizeLimitExceededError{Limit: l.Limit, Read: l.read + 1}
		}
		if extraErr != nil && extraErr != io.EOF {
			return n, extraErr
		}
	}

	return n, err
}

// BytesRead returns the number of bytes read so far.
func (l *LimitedReader) BytesRead() int64 {
	return l.read
}

// SizeLimitExceededError reports a read past the configured limit.
type SizeLimitExceededError struct {
	Limit int64
	Read  int64
}

func (e *SizeLimitExceededError) Error() string {
	return fmt.Sprintf("size limit of %d bytes exceeded (read %d)", e.Limit, e.Read)
}

// IsSizeLimitExceededError reports whether err is a size limit violation.
func IsSizeLimitExceededError(err error) bool {
	var target *SizeLimitExceededError
	return errors.As(err, &target)
}
