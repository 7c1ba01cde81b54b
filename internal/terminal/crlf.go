package terminal

import (
	"bytes"
	"io"
)

// crlfWriter writes "\r\n" for every "\n" not already preceded by "\r".
type crlfWriter struct {
	w      io.Writer
	lastCR bool
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	var b bytes.Buffer
	b.Grow(len(p) + bytes.Count(p, []byte{'\n'}))
	prevCR := c.lastCR
	for _, ch := range p {
		if ch == '\n' && !prevCR {
			b.WriteByte('\r')
		}
		b.WriteByte(ch)
		prevCR = ch == '\r'
	}
	if _, err := c.w.Write(b.Bytes()); err != nil {
		return 0, err
	}
	if len(p) > 0 {
		c.lastCR = p[len(p)-1] == '\r'
	}
	return len(p), nil
}
