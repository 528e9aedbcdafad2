package dump

import (
	"github.com/spf13/afero"
)

type Entry struct {
	Dump
	Size       int64
	Overlapped bool
}

// Series is one repository's backup lineage as found on disk.
type Series struct {
	Repository string
	Base       string
	Entries    []Entry
}

// Classify expands every series in dir and marks the members a cleanup would
// remove.
func Classify(fs afero.Fs, layout Layout, dir string) ([]Series, error) {
	bases, err := FindBaseFiles(fs, layout, dir)
	if err != nil {
		return nil, err
	}

	var all []Series
	for _, base := range bases {
		names, err := ExpandSeries(fs, layout, base)
		if err != nil {
			return nil, err
		}
		overlapped, err := FindOverlapped(layout, names)
		if err != nil {
			return nil, err
		}
		drop := make(map[string]bool, len(overlapped))
		for _, name := range overlapped {
			drop[name] = true
		}

		dumps := make([]Dump, 0, len(names))
		for _, name := range names {
			d, err := layout.Parse(name)
			if err != nil {
				return nil, err
			}
			dumps = append(dumps, d)
		}
		sortDumps(dumps)

		s := Series{Base: base, Entries: make([]Entry, 0, len(dumps))}
		for _, d := range dumps {
			s.Repository = d.Repository
			e := Entry{Dump: d, Overlapped: drop[d.Path]}
			if fi, err := fs.Stat(d.Path); err == nil {
				e.Size = fi.Size()
			}
			s.Entries = append(s.Entries, e)
		}
		all = append(all, s)
	}
	return all, nil
}
