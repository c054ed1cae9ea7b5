package listener

import (
	"bytes"
	"io"
)

// lineEndingConn adapts a wire connection that speaks CRLF (or bare CR, as
// SSH clients without a PTY tend to) to the rest of the code, which only ever
// sees and writes \n.
type lineEndingConn struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineEndingConn{rw: rw}
}

var (
	crlf = []byte("\r\n")
	cr   = []byte("\r")
	lf   = []byte("\n")
)

func (c *lineEndingConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n == 0 {
		return n, err
	}

	// \r\n first so a pair doesn't turn into two newlines.
	data := bytes.ReplaceAll(p[:n], crlf, lf)
	data = bytes.ReplaceAll(data, cr, lf)
	return copy(p, data), err
}

func (c *lineEndingConn) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, lf, crlf))

	// Report the caller's byte count, not the expanded one.
	return len(p), err
}
