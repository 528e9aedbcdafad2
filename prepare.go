package main

import (
	"fmt"
	"time"

	"github.com/gentoomaniac/svn-backup/pkg/config"
	"github.com/gentoomaniac/svn-backup/pkg/rotate"
	"github.com/spf13/afero"
)

type PrepareFull struct{}

func (p *PrepareFull) Run(cfg *config.Config) error {
	r := rotate.New(afero.NewOsFs(), cfg.Root)
	r.Link = cfg.Link
	r.DateLayout = cfg.DateLayout

	dir, err := r.PrepareFull(time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, dir)
	return nil
}
