package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/dhamidi/parsekit/parse"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsekit.source")

// Reader is a rune input over a seekable stream. It reads one rune at a
// time, tracks lines by '\n' and restores by seeking back to the byte
// offset captured in the restore point. Offsets are in bytes, relative to
// the stream position when the Reader was created.
//
// Read and seek failures panic with a *parse.ReadError; parse.Run turns
// them into errors.
type Reader struct {
	rs     io.ReadSeeker
	br     *bufio.Reader
	name   string
	base   int64
	offset int64
	line   int
	column int
	open   int
}

// NewReader creates an input reading from rs, starting at its current
// position. It fails if that position cannot be determined.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	base, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locate stream start: %w", err)
	}
	return &Reader{
		rs:     rs,
		br:     bufio.NewReader(rs),
		base:   base,
		line:   parse.Start.Line,
		column: parse.Start.Column,
	}, nil
}

// Name returns the name given by Named, or the file name for inputs
// created with Open.
func (r *Reader) Name() string {
	return r.name
}

// Named sets the name reported by Name and returns r.
func (r *Reader) Named(name string) *Reader {
	r.name = name
	return r
}

func (r *Reader) CurrentLine() int {
	return r.line
}

func (r *Reader) CurrentColumn() int {
	return r.column
}

func (r *Reader) CurrentOffset() int64 {
	return r.offset
}

func (r *Reader) CurrentPosition() parse.Position {
	return parse.Position{Line: r.line, Column: r.column}
}

func (r *Reader) EndOfInput() bool {
	_, err := r.br.Peek(1)
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) {
		return true
	}
	panic(&parse.ReadError{Offset: r.offset, Err: err})
}

func (r *Reader) NextToken() parse.Located[rune] {
	pos := r.CurrentPosition()
	ch, size := r.readRune()

	r.offset += int64(size)
	if ch == '\n' {
		r.line++
		r.column = 0
	} else {
		r.column++
	}

	return parse.At(ch, pos)
}

func (r *Reader) PeekToken() parse.Located[rune] {
	pos := r.CurrentPosition()
	ch, _ := r.readRune()
	if err := r.br.UnreadRune(); err != nil {
		panic(&parse.ReadError{Offset: r.offset, Err: err})
	}
	return parse.At(ch, pos)
}

func (r *Reader) readRune() (rune, int) {
	if r.EndOfInput() {
		panic(&parse.EndOfInputError{Position: r.CurrentPosition()})
	}
	ch, size, err := r.br.ReadRune()
	if err != nil {
		panic(&parse.ReadError{Offset: r.offset, Err: err})
	}
	if ch == utf8.RuneError && size == 1 {
		log.Debugf("%s: invalid UTF-8 at offset %d", r.describe(), r.offset)
	}
	return ch, size
}

func (r *Reader) CreateRestorePoint() parse.RestorePoint {
	offset, line, column := r.offset, r.line, r.column
	return newPoint(func() {
		r.seek(offset)
		r.line, r.column = line, column
	}, &r.open)
}

func (r *Reader) seek(offset int64) {
	if offset == r.offset {
		return
	}
	log.Debugf("%s: seek from %d to %d", r.describe(), r.offset, offset)
	if _, err := r.rs.Seek(r.base+offset, io.SeekStart); err != nil {
		panic(&parse.ReadError{Offset: offset, Err: err})
	}
	r.br.Reset(r.rs)
	r.offset = offset
}

func (r *Reader) describe() string {
	if r.name != "" {
		return r.name
	}
	return "<reader>"
}

// OpenRestorePoints is the number of restore points created and not yet
// released.
func (r *Reader) OpenRestorePoints() int {
	return r.open
}

// File is a Reader over an open file.
type File struct {
	*Reader
	f *os.File
}

// Open opens the named file for parsing. The caller must Close it.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	log.Debugf("opened %s", path)
	return &File{Reader: r.Named(path), f: f}, nil
}

func (f *File) Close() error {
	return f.f.Close()
}
