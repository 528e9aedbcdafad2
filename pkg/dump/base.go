package dump

import (
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// FindBaseFiles returns one full dump (starting at revision zero) per
// repository found in dir. When a repository has several, the
// lexicographically first name is picked.
func FindBaseFiles(fs afero.Fs, layout Layout, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", dir)
	}

	first := make(map[string]string)
	for _, fi := range infos {
		if fi.IsDir() || !layout.IsDump(fi.Name()) {
			continue
		}
		d, err := layout.Parse(filepath.Join(dir, fi.Name()))
		if err != nil {
			return nil, err
		}
		if !d.IsBase() {
			continue
		}
		if cur, ok := first[d.Repository]; !ok || d.Path < cur {
			first[d.Repository] = d.Path
		}
	}

	bases := make([]string, 0, len(first))
	for repository, path := range first {
		log.Debug().Str("repository", repository).Str("base", path).Msg("base file found")
		bases = append(bases, path)
	}
	sort.Strings(bases)
	return bases, nil
}
