// Package ndjson writes and reads newline-delimited JSON, the interchange
// format for the local export files and the BigQuery load jobs.
package ndjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Writer emits one compact JSON document per line.
type Writer struct {
	enc *json.Encoder
}

func NewWriter(w io.Writer) *Writer {
	// json.Encoder terminates every document with '\n'
	return &Writer{enc: json.NewEncoder(w)}
}

func (w *Writer) Encode(v any) error {
	return w.enc.Encode(v)
}

// Scanner iterates over the documents of an NDJSON stream. Blank lines are
// skipped; anything else must be valid JSON.
type Scanner struct {
	s    *bufio.Scanner
	doc  json.RawMessage
	line int
	err  error
}

func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Scanner{s: s}
}

func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		line := s.s.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			s.err = fmt.Errorf("invalid JSON on line %d", s.line)
			return false
		}
		s.doc = append(s.doc[:0], line...)
		return true
	}
	s.err = s.s.Err()
	return false
}

// Document returns the current line. Valid until the next call to Scan.
func (s *Scanner) Document() json.RawMessage {
	return s.doc
}

func (s *Scanner) Err() error {
	return s.err
}

// Count returns the number of documents in an NDJSON stream.
func Count(r io.Reader) (int, error) {
	scanner := NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}
