package dxf

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// group is one code/value pair. line is the line number of the code.
type group struct {
	code  int
	value string
	line  int
}

func (g group) float(dst *float64) error {
	v, err := strconv.ParseFloat(g.value, 64)
	if err != nil {
		return &ParseError{Line: g.line + 1, Code: g.code, Value: g.value, Err: err}
	}
	*dst = v
	return nil
}

func (g group) int(dst *int) error {
	v, err := strconv.Atoi(g.value)
	if err != nil {
		// some writers emit integer groups as "1.0"
		f, ferr := strconv.ParseFloat(g.value, 64)
		if ferr != nil {
			return &ParseError{Line: g.line + 1, Code: g.code, Value: g.value, Err: err}
		}
		v = int(f)
	}
	*dst = v
	return nil
}

type scanner struct {
	lines  *bufio.Scanner
	line   int
	peeked *group
}

func newScanner(r io.Reader) *scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &scanner{lines: lines}
}

func (s *scanner) readLine() (string, bool) {
	if !s.lines.Scan() {
		return "", false
	}
	s.line++
	text := s.lines.Text()
	if s.line == 1 {
		text = strings.TrimPrefix(text, "\ufeff")
	}
	return strings.TrimRight(text, "\r"), true
}

// next returns io.EOF only on a clean pair boundary.
func (s *scanner) next() (group, error) {
	if s.peeked != nil {
		g := *s.peeked
		s.peeked = nil
		return g, nil
	}

	codeLine, ok := s.readLine()
	if !ok {
		if err := s.lines.Err(); err != nil {
			return group{}, err
		}
		return group{}, io.EOF
	}
	line := s.line
	trimmed := strings.TrimSpace(codeLine)
	code, err := strconv.Atoi(trimmed)
	if err != nil {
		return group{}, &ParseError{Line: line, Code: -1, Value: trimmed, Err: err}
	}

	value, ok := s.readLine()
	if !ok {
		if err := s.lines.Err(); err != nil {
			return group{}, err
		}
		return group{}, &ParseError{Line: line, Code: code, Err: ErrUnexpectedEOF}
	}
	if code != 1 && code != 3 {
		// text values keep their spacing
		value = strings.TrimSpace(value)
	}
	return group{code: code, value: value, line: line}, nil
}

func (s *scanner) unread(g group) {
	s.peeked = &g
}
