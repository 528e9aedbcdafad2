package main

import (
	"fmt"

	clitools "github.com/gentoomaniac/svn-backup/pkg/cli"
	"github.com/gentoomaniac/svn-backup/pkg/config"
	"github.com/gentoomaniac/svn-backup/pkg/dump"
	"github.com/spf13/afero"
)

type List struct {
	Dir string `arg:"" optional:"" help:"Dump directory, defaults to the target of the link under the root." type:"path"`
}

func (l *List) Run(cfg *config.Config) error {
	fs := afero.NewOsFs()
	dir, err := targetDir(fs, cfg, l.Dir)
	if err != nil {
		return err
	}

	series, err := dump.Classify(fs, cfg.Layout(), dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, clitools.SeriesTable(series))
	return nil
}
