package main

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
	clitools "github.com/gentoomaniac/svn-backup/pkg/cli"
	"github.com/gentoomaniac/svn-backup/pkg/config"
	"github.com/gentoomaniac/svn-backup/pkg/db"
	"github.com/gentoomaniac/svn-backup/pkg/dump"
	"github.com/gentoomaniac/svn-backup/pkg/rotate"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Cleanup struct {
	DryRun      bool   `short:"n" help:"Only print the files that would be removed."`
	Interactive bool   `short:"i" help:"Ask before removing anything."`
	Dir         string `arg:"" optional:"" help:"Dump directory, defaults to the target of the link under the root." type:"path"`
}

// targetDir is dir, or where the link under the root points.
func targetDir(fs afero.Fs, cfg *config.Config, dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	r := rotate.New(fs, cfg.Root)
	r.Link = cfg.Link
	return r.Current()
}

type journalRecorder struct {
	journal db.Journal
	now     func() time.Time
}

func (r *journalRecorder) Record(d dump.Dump, size int64) error {
	_, err := r.journal.AddRemoval(&db.Removal{
		Path:       d.Path,
		Repository: d.Repository,
		Low:        d.Low,
		High:       d.High,
		Size:       size,
		Timestamp:  r.now().Unix(),
	})
	return err
}

func openJournal(path string) (*db.SQLLiteDB, error) {
	journal, err := db.NewSQLLite(path)
	if err != nil {
		return nil, err
	}
	if err := journal.Init(); err != nil {
		journal.Close()
		return nil, err
	}
	return journal, nil
}

func (c *Cleanup) Run(cfg *config.Config) error {
	fs := afero.NewOsFs()
	dir, err := targetDir(fs, cfg, c.Dir)
	if err != nil {
		return err
	}
	log.Debug().Str("dir", dir).Bool("dry_run", c.DryRun).Msg("cleanup called")

	cleaner := dump.NewCleaner(fs, cfg.Layout())
	cleaner.DryRun = c.DryRun
	if cfg.Journal != "" && !c.DryRun {
		journal, err := openJournal(cfg.Journal)
		if err != nil {
			return err
		}
		defer journal.Close()
		cleaner.Recorder = &journalRecorder{journal: journal, now: time.Now}
	}

	var report *dump.Report
	if c.Interactive && !c.DryRun {
		candidates, err := cleaner.Candidates(dir)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			log.Info().Str("dir", dir).Msg("nothing to remove")
			return nil
		}
		ok, err := clitools.ConfirmRemoval(candidates)
		if err != nil {
			return err
		}
		if !ok {
			log.Info().Msg("cleanup aborted")
			return nil
		}
		report = cleaner.Remove(candidates)
	} else {
		report, err = cleaner.Cleanup(dir)
		if err != nil {
			return err
		}
	}

	if c.DryRun {
		for _, rm := range report.Removed {
			fmt.Fprintln(stdout, rm.Path)
		}
	}
	log.Info().
		Int("files", len(report.Removed)).
		Str("size", units.HumanSize(float64(report.Reclaimed()))).
		Bool("dry_run", c.DryRun).
		Msg("cleanup done")

	if len(report.Failed) > 0 {
		return errors.Errorf("%d dump file(s) could not be removed", len(report.Failed))
	}
	return nil
}
