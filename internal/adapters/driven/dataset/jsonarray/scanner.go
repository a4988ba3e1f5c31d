package jsonarray

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// elementScanner splits a JSON array, or newline-delimited JSON, into raw
// top-level elements without decoding them. Element boundaries come from
// bracket depth outside strings, so they are independent of line breaks.
// In newline-delimited mode a newline always ends an element, which keeps
// one broken line from swallowing the rest of the stream. In array mode an
// element still open at a line break is cut there when the next line opens
// a new element at the column the open one started at.
type elementScanner struct {
	r       *bufio.Reader
	started bool
	array   bool
	done    bool
	col     int
	prevCol int
}

func newElementScanner(r io.Reader) *elementScanner {
	return &elementScanner{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next raw element or io.EOF. An element cut short by
// the end of input is returned as is; validating it is up to the caller.
func (s *elementScanner) Next() ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	if !s.started {
		if err := s.start(); err != nil {
			return nil, err
		}
	}

	first, err := s.skipSeparators()
	if err != nil {
		return nil, err
	}
	if s.array && first == ']' {
		s.done = true
		return nil, io.EOF
	}

	switch first {
	case '{', '[':
		return s.readComposite(first)
	case '"':
		return s.readString(first)
	default:
		return s.readScalar(first)
	}
}

// start consumes an optional byte order mark and the opening bracket.
func (s *elementScanner) start() error {
	s.started = true
	if head, err := s.r.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = s.r.Discard(len(utf8BOM))
	}

	b, err := s.skipSeparators()
	if err != nil {
		return err
	}
	if b == '[' {
		s.array = true
		return nil
	}
	s.unreadByte()
	return nil
}

// readByte reads one byte, tracking the column of the next byte.
func (s *elementScanner) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.prevCol = s.col
	if b == '\n' {
		s.col = 0
	} else {
		s.col++
	}
	return b, nil
}

func (s *elementScanner) unreadByte() {
	if s.r.UnreadByte() == nil {
		s.col = s.prevCol
	}
}

func (s *elementScanner) skipSeparators() (byte, error) {
	for {
		b, err := s.readByte()
		if err != nil {
			s.done = true
			return 0, io.EOF
		}
		if isSpace(b) || b == ',' {
			continue
		}
		return b, nil
	}
}

func (s *elementScanner) readComposite(first byte) ([]byte, error) {
	buf := []byte{first}
	startCol := s.col - 1
	depth := 1
	inString, escaped := false, false

	for depth > 0 {
		b, err := s.readByte()
		if err != nil {
			s.done = true
			return buf, nil
		}
		if b == '\n' && (!s.array || s.opensElementAt(startCol, first)) {
			return buf, nil
		}
		buf = append(buf, b)

		switch {
		case escaped:
			escaped = false
		case inString:
			if b == '\\' {
				escaped = true
			} else if b == '"' {
				inString = false
			}
		case b == '"':
			inString = true
		case b == '{' || b == '[':
			depth++
		case b == '}' || b == ']':
			depth--
		}
	}
	return buf, nil
}

// opensElementAt reports whether the next line starts with open at column
// col. Nothing is consumed.
func (s *elementScanner) opensElementAt(col int, open byte) bool {
	for i := 0; ; i++ {
		peek, err := s.r.Peek(i + 1)
		if err != nil {
			return false
		}
		switch b := peek[i]; b {
		case ' ', '\t':
			continue
		case open:
			return i == col
		default:
			return false
		}
	}
}

func (s *elementScanner) readString(first byte) ([]byte, error) {
	buf := []byte{first}
	escaped := false
	for {
		b, err := s.readByte()
		if err != nil {
			s.done = true
			return buf, nil
		}
		if !s.array && b == '\n' {
			return buf, nil
		}
		buf = append(buf, b)
		switch {
		case escaped:
			escaped = false
		case b == '\\':
			escaped = true
		case b == '"':
			return buf, nil
		}
	}
}

// readScalar reads a bare token up to the next delimiter, which is left unread.
func (s *elementScanner) readScalar(first byte) ([]byte, error) {
	buf := []byte{first}
	for {
		b, err := s.readByte()
		if err != nil {
			s.done = true
			return buf, nil
		}
		if isSpace(b) || b == ',' || b == ']' || b == '}' {
			s.unreadByte()
			return buf, nil
		}
		buf = append(buf, b)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
