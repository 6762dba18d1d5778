// SPDX-License-Identifier: MIT

package mmio

import (
	"bufio"
	"strings"
)

// typeCode is the matrix type named by the banner line.
type typeCode struct {
	Format   string // "coordinate" or "array"
	Field    string // "real", "integer" or "pattern"
	Symmetry string // "general", "symmetric" or "skew-symmetric"
}

const banner = "%%MatrixMarket"

// scanner reads the banner, comments and data lines of one file.
type scanner struct {
	sc   *bufio.Scanner
	line int
}

func newScanner(sc *bufio.Scanner) *scanner { return &scanner{sc: sc} }

// next returns the fields of the next data line, skipping comments and
// blank lines; ok is false at the end of input.
func (s *scanner) next() (fields []string, ok bool) {
	for s.sc.Scan() {
		s.line++
		t := strings.TrimSpace(s.sc.Text())
		if t == "" || strings.HasPrefix(t, "%") {
			continue
		}
		return strings.Fields(t), true
	}
	return nil, false
}

func (s *scanner) errorf(err error) error { return &LineError{Line: s.line, Err: err} }

// header parses the banner and checks it against the accepted formats.
func (s *scanner) header(format string) (typeCode, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return typeCode{}, err
		}
		return typeCode{}, ErrBanner
	}
	s.line++
	f := strings.Fields(strings.ToLower(s.sc.Text()))
	if len(f) != 5 || f[0] != strings.ToLower(banner) || f[1] != "matrix" {
		return typeCode{}, ErrBanner
	}
	h := typeCode{Format: f[2], Field: f[3], Symmetry: f[4]}
	if h.Format != format {
		return h, ErrUnsupported
	}
	switch h.Field {
	case "real", "integer", "double":
	case "pattern":
		if format == "array" {
			return h, ErrUnsupported
		}
	default:
		return h, ErrUnsupported
	}
	switch h.Symmetry {
	case "general", "symmetric", "skew-symmetric":
	default:
		return h, ErrUnsupported
	}
	return h, nil
}
