package exec

import (
	"bytes"
	"io"
	"sync"
)

// lockedBuffer is a bytes.Buffer safe for the concurrent writes os/exec
// makes when stdout and stderr share a destination.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// capture records one stream and optionally tees it to passthrough.
type capture struct {
	lockedBuffer
	passthrough io.Writer
}

func newCapture(passthrough io.Writer) *capture {
	return &capture{passthrough: passthrough}
}

// Writer returns the destination for the stream.
func (c *capture) Writer() io.Writer {
	if c.passthrough == nil {
		return &c.lockedBuffer
	}
	return io.MultiWriter(&c.lockedBuffer, c.passthrough)
}
