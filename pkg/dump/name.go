// Package dump classifies incremental svn dump files by the revision range
// encoded in their names and finds the ones made redundant by a longer dump
// starting at the same revision.
package dump

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultMarker         = "svndmp"
	DefaultDelimiter      = "."
	DefaultRangeSeparator = "-"
)

// Layout describes how dump files are named:
//
//	<repository><Delimiter><low><RangeSeparator><high><Delimiter><Marker>[<Delimiter><suffix>...]
//
// e.g. "r.000000-000120.svndmp.gz". The repository part may itself contain
// the delimiter.
type Layout struct {
	Marker         string
	Delimiter      string
	RangeSeparator string
}

func DefaultLayout() Layout {
	return Layout{
		Marker:         DefaultMarker,
		Delimiter:      DefaultDelimiter,
		RangeSeparator: DefaultRangeSeparator,
	}
}

func (l Layout) Validate() error {
	switch {
	case l.Marker == "" || l.Delimiter == "" || l.RangeSeparator == "":
		return fmt.Errorf("layout has an empty field: %+v", l)
	case l.Delimiter == l.RangeSeparator:
		return fmt.Errorf("delimiter and range separator are both %q", l.Delimiter)
	case strings.Contains(l.Marker, l.Delimiter):
		return fmt.Errorf("marker %q contains the delimiter %q", l.Marker, l.Delimiter)
	case strings.ContainsAny(l.Delimiter, `*?[\`):
		return fmt.Errorf("delimiter %q contains a wildcard", l.Delimiter)
	}
	return nil
}

// Dump is a dump file name broken into its parts. Low keeps its zero padding
// because it is only used as a grouping key.
type Dump struct {
	Path       string
	Repository string
	Low        string
	High       int
}

// ParseError reports a dump file name that does not follow the Layout.
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed dump name %q: %s", e.Name, e.Reason)
}

func (l Layout) fields(name string) []string {
	return strings.Split(filepath.Base(name), l.Delimiter)
}

func (l Layout) markerIndex(fields []string) int {
	for i, f := range fields {
		if f == l.Marker {
			return i
		}
	}
	return -1
}

// IsDump reports whether name carries the marker field at all. Names that do
// are expected to parse; names that don't are not dump files.
func (l Layout) IsDump(name string) bool {
	return l.markerIndex(l.fields(name)) >= 0
}

// Parse splits name (a path or a basename) into repository and revision range.
func (l Layout) Parse(name string) (Dump, error) {
	fields := l.fields(name)
	idx := l.markerIndex(fields)
	switch {
	case idx < 0:
		return Dump{}, &ParseError{Name: name, Reason: fmt.Sprintf("no %q segment", l.Marker)}
	case idx < 2:
		return Dump{}, &ParseError{Name: name, Reason: "no repository and revision range before marker"}
	}

	token := fields[idx-1]
	parts := strings.Split(token, l.RangeSeparator)
	if len(parts) != 2 {
		return Dump{}, &ParseError{Name: name, Reason: fmt.Sprintf("revision range %q is not <low>%s<high>", token, l.RangeSeparator)}
	}
	if !isDigits(parts[0]) || !isDigits(parts[1]) {
		return Dump{}, &ParseError{Name: name, Reason: fmt.Sprintf("revision range %q is not numeric", token)}
	}

	low, err := strconv.Atoi(parts[0])
	if err != nil {
		return Dump{}, &ParseError{Name: name, Reason: err.Error()}
	}
	high, err := strconv.Atoi(parts[1])
	if err != nil {
		return Dump{}, &ParseError{Name: name, Reason: err.Error()}
	}
	if low > high {
		return Dump{}, &ParseError{Name: name, Reason: fmt.Sprintf("low revision %d above high revision %d", low, high)}
	}

	return Dump{
		Path:       name,
		Repository: strings.Join(fields[:idx-1], l.Delimiter),
		Low:        parts[0],
		High:       high,
	}, nil
}

// ParseRevisionRange returns the start revision as written in the name and
// the end revision as a number.
func (l Layout) ParseRevisionRange(name string) (low string, high int, err error) {
	d, err := l.Parse(name)
	if err != nil {
		return "", 0, err
	}
	return d.Low, d.High, nil
}

// IsBase reports whether the dump starts at revision zero, i.e. is the full
// dump a series begins with.
func (d Dump) IsBase() bool {
	return strings.Trim(d.Low, "0") == ""
}

// seriesPattern splits path into its directory and a basename pattern
// matching every dump that shares path's skeleton, whatever its revision
// range or compression suffix.
func (l Layout) seriesPattern(path string) (dir, pattern string, err error) {
	fields := l.fields(path)
	idx := l.markerIndex(fields)
	if idx < 2 {
		return "", "", &ParseError{Name: path, Reason: fmt.Sprintf("no revision range before %q segment", l.Marker)}
	}
	skeleton := make([]string, 0, idx+1)
	for _, f := range fields[:idx-1] {
		skeleton = append(skeleton, escapeGlob(f))
	}
	skeleton = append(skeleton, "*", escapeGlob(l.Marker)+"*")
	return filepath.Dir(path), strings.Join(skeleton, l.Delimiter), nil
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
