package datasource

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func expectToRead(t *testing.T, reader io.Reader, expected []byte) {
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if err != nil {
		t.Errorf("expected read to succeed, got: %v", err)
	} else if !bytes.Equal(scratch[:n], expected) {
		t.Errorf("expected read to yield %q, got: %q", expected, scratch[:n])
	}
}

func expectReadEOF(t *testing.T, reader io.Reader) {
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected read to give EOF, got: %v", err)
	} else if n != 0 {
		t.Errorf("expected read to read nothing, read %q", scratch[:n])
	}
}

func TestLineReader(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	first := "0,1\n"
	second := "1,2\n"
	buf.WriteString(first)
	buf.WriteString(second)
	l := newLineReader(buf)
	expectToRead(t, l, []byte(first))
	expectToRead(t, l, []byte(second))
	third := "2,"
	buf.WriteString(third)
	expectReadEOF(t, l)
	fourth := "4\n"
	buf.WriteString(fourth)
	expectToRead(t, l, []byte(third+fourth))
	buf.WriteString("3")
	expectReadEOF(t, l)
	buf.WriteString(",")
	expectReadEOF(t, l)
	buf.WriteString("8\n4,")
	expectToRead(t, l, []byte("3,8\n"))
}

func TestLineReaderSmallBuffer(t *testing.T) {
	l := newLineReader(bytes.NewBufferString("10,20\n"))
	var got []byte
	var scratch [2]byte
	for {
		n, err := l.Read(scratch[:])
		got = append(got, scratch[:n]...)
		if err != nil {
			break
		}
	}
	if string(got) != "10,20\n" {
		t.Errorf("expected the whole line across short reads, got %q", got)
	}
}
