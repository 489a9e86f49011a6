package datasource

import (
	"bufio"
	"io"
)

// lineReader only ever yields complete newline-terminated lines, so a CSV
// reader layered on top of a file that is still being written never sees a
// partial record. An unterminated tail is held back and reported as io.EOF
// until the rest of the line arrives.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		if err != nil {
			l.partial = append(l.partial, data...)
			return 0, err
		}
		l.pending = append(l.partial, data...)
		l.partial = nil
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
