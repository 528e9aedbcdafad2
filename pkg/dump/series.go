package dump

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrNoMatch = errors.New("no dump file matches")

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, `*?[`)
}

// matchFiles returns the files in dir whose name matches pattern.
// Directories never match.
func matchFiles(fs afero.Fs, dir, pattern string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", dir)
	}
	var matches []string
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, fi.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "matching %q", pattern)
		}
		if ok {
			matches = append(matches, filepath.Join(dir, fi.Name()))
		}
	}
	return matches, nil
}

// ExpandSeries returns every dump file in the series names belong to.
//
// More than one name is taken as the series itself. A single name, or the
// first match of a single pattern with wildcards in its file name, is used
// as an exemplar: its revision range is replaced by a wildcard and its
// directory scanned again for the rest of the series. Names from different
// repositories must not be mixed.
func ExpandSeries(fs afero.Fs, layout Layout, names ...string) ([]string, error) {
	if len(names) != 1 {
		series := append([]string{}, names...)
		sort.Strings(series)
		return series, nil
	}

	exemplar := names[0]
	// an existing file is taken literally even if its name has wildcards
	if _, err := fs.Stat(exemplar); err != nil && hasGlobMeta(filepath.Base(exemplar)) {
		matches, err := matchFiles(fs, filepath.Dir(exemplar), filepath.Base(exemplar))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, errors.Wrapf(ErrNoMatch, "pattern %q", exemplar)
		}
		sort.Strings(matches)
		exemplar = matches[0]
	}

	d, err := layout.Parse(exemplar)
	if err != nil {
		return nil, err
	}
	dir, pattern, err := layout.seriesPattern(exemplar)
	if err != nil {
		return nil, err
	}
	matches, err := matchFiles(fs, dir, pattern)
	if err != nil {
		return nil, err
	}

	series := make([]string, 0, len(matches))
	for _, m := range matches {
		// "r.*.svndmp*" also matches "r.000001-000002.svndmp~"
		if !layout.IsDump(m) {
			continue
		}
		md, err := layout.Parse(m)
		if err != nil {
			return nil, err
		}
		// "r.*.svndmp*" also matches repository "r.x"
		if md.Repository != d.Repository {
			continue
		}
		series = append(series, m)
	}
	sort.Strings(series)
	log.Debug().Str("exemplar", exemplar).Int("files", len(series)).Msg("series expanded")
	return series, nil
}

// FindOverlapped returns the members of series whose revision range is
// contained in another member starting at the same revision. Within each
// start revision only the dumps reaching the highest end revision survive;
// equal ranges are all kept.
func FindOverlapped(layout Layout, series []string) ([]string, error) {
	groups := make(map[string][]Dump)
	for _, name := range series {
		d, err := layout.Parse(name)
		if err != nil {
			return nil, err
		}
		groups[d.Low] = append(groups[d.Low], d)
	}

	var overlapped []Dump
	for low, group := range groups {
		top := group[0].High
		for _, d := range group[1:] {
			if d.High > top {
				top = d.High
			}
		}
		for _, d := range group {
			if d.High != top {
				log.Debug().Str("name", d.Path).Str("low", low).Int("high", d.High).Int("covered_by", top).Msg("overlapped")
				overlapped = append(overlapped, d)
			}
		}
	}

	sortDumps(overlapped)
	names := make([]string, len(overlapped))
	for i, d := range overlapped {
		names[i] = d.Path
	}
	return names, nil
}

// sortDumps orders by start revision, end revision, then path.
func sortDumps(dumps []Dump) {
	sort.Slice(dumps, func(i, j int) bool {
		a, b := dumps[i], dumps[j]
		if a.Low != b.Low {
			la, lb := lowRevision(a), lowRevision(b)
			if la != lb {
				return la < lb
			}
			return a.Low < b.Low
		}
		if a.High != b.High {
			return a.High < b.High
		}
		return a.Path < b.Path
	})
}

// lowRevision is only called on parsed dumps, whose Low is known to be digits.
func lowRevision(d Dump) int {
	n, _ := strconv.Atoi(d.Low)
	return n
}
