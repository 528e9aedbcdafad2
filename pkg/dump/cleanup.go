package dump

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Recorder is told about every dump actually removed from disk.
type Recorder interface {
	Record(d Dump, size int64) error
}

type Removal struct {
	Path   string
	Size   int64
	DryRun bool
}

type Failure struct {
	Path string
	Err  error
}

type Report struct {
	Removed []Removal
	Failed  []Failure
}

// Reclaimed is the number of bytes freed, or that would be freed on a dry run.
func (r *Report) Reclaimed() (total int64) {
	for _, rm := range r.Removed {
		total += rm.Size
	}
	return
}

type Cleaner struct {
	Fs       afero.Fs
	Layout   Layout
	DryRun   bool
	Recorder Recorder
}

func NewCleaner(fs afero.Fs, layout Layout) *Cleaner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Cleaner{Fs: fs, Layout: layout}
}

// Candidates lists the overlapped dumps of every series in dir.
func (c *Cleaner) Candidates(dir string) ([]string, error) {
	bases, err := FindBaseFiles(c.Fs, c.Layout, dir)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, base := range bases {
		series, err := ExpandSeries(c.Fs, c.Layout, base)
		if err != nil {
			return nil, err
		}
		overlapped, err := FindOverlapped(c.Layout, series)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, overlapped...)
	}
	return candidates, nil
}

// Remove deletes paths, or only reports them on a dry run. A path that
// cannot be removed is logged and reported; the remaining ones are still
// processed.
func (c *Cleaner) Remove(paths []string) *Report {
	report := &Report{}
	for _, path := range paths {
		var size int64
		if fi, err := c.Fs.Stat(path); err == nil {
			size = fi.Size()
		}

		if c.DryRun {
			log.Info().Str("name", path).Int64("size", size).Msg("would remove")
			report.Removed = append(report.Removed, Removal{Path: path, Size: size, DryRun: true})
			continue
		}

		if err := c.Fs.Remove(path); err != nil {
			if os.IsNotExist(err) {
				log.Warn().Err(err).Str("name", path).Msg("dump vanished before removal")
			} else {
				log.Error().Err(err).Str("name", path).Msg("failed removing dump")
			}
			report.Failed = append(report.Failed, Failure{Path: path, Err: err})
			continue
		}
		log.Info().Str("name", path).Int64("size", size).Msg("removed")
		report.Removed = append(report.Removed, Removal{Path: path, Size: size})

		if c.Recorder == nil {
			continue
		}
		d, err := c.Layout.Parse(path)
		if err != nil {
			log.Error().Err(err).Str("name", path).Msg("not journaled")
			continue
		}
		if err := c.Recorder.Record(d, size); err != nil {
			log.Error().Err(err).Str("name", path).Msg("failed journaling removal")
		}
	}
	return report
}

// Cleanup removes every overlapped dump in dir.
func (c *Cleaner) Cleanup(dir string) (*Report, error) {
	candidates, err := c.Candidates(dir)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", dir).Int("candidates", len(candidates)).Bool("dry_run", c.DryRun).Msg("cleanup")
	return c.Remove(candidates), nil
}
