package main

import (
	"fmt"

	clitools "github.com/gentoomaniac/svn-backup/pkg/cli"
	"github.com/gentoomaniac/svn-backup/pkg/config"
	"github.com/pkg/errors"
)

var errNoJournal = errors.New("no journal configured, set --journal")

type History struct {
	Repository string `short:"r" help:"Only show removals from this repository."`
}

func (h *History) Run(cfg *config.Config) error {
	if cfg.Journal == "" {
		return errNoJournal
	}
	journal, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	defer journal.Close()

	removals, err := journal.GetRemovals(h.Repository)
	if err != nil {
		return errors.Wrap(err, "reading journal")
	}
	fmt.Fprintln(stdout, clitools.RemovalTable(removals))
	return nil
}
