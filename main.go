package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gentoomaniac/logging"
	"github.com/gentoomaniac/svn-backup/pkg/config"
	"github.com/rs/zerolog/log"
)

var (
	version = "unset"
	commit  = "unset"
	binName = "svn-backup"
	builtBy = "manual"
	date    = "unset"
)

// stdout receives command output; patched in tests.
var stdout io.Writer = os.Stdout

type Globals struct {
	logging.LoggingConfig

	Root    string `help:"Directory holding the dated dump directories." default:"${root}" type:"path"`
	Link    string `help:"Name of the symlink to the running series." default:"${link}"`
	Journal string `help:"SQLite journal of removed dumps, empty disables it." default:"${journal}"`
}

var cli struct {
	Globals

	Cleanup     Cleanup     `cmd:"" help:"Remove dump files overlapped by later dumps."`
	PrepareFull PrepareFull `cmd:"" help:"Start a new full backup directory and point the link at it."`
	List        List        `cmd:"" help:"Show dump series and what a cleanup would remove."`
	History     History     `cmd:"" help:"Show dump files removed by earlier cleanups."`

	Version kong.VersionFlag `short:"v" help:"Display version."`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed loading config")
	}

	ctx := kong.Parse(&cli, kong.UsageOnError(), kong.Vars{
		"version": version,
		"commit":  commit,
		"binName": binName,
		"builtBy": builtBy,
		"date":    date,
		"root":    cfg.Root,
		"link":    cfg.Link,
		"journal": cfg.Journal,
	})
	logging.Setup(&cli.LoggingConfig)
	if cfg.File != "" {
		log.Debug().Str("file", cfg.File).Msg("config loaded")
	}

	cfg.Root = cli.Root
	cfg.Link = cli.Link
	cfg.Journal = cli.Journal

	ctx.FatalIfErrorf(ctx.Run(cfg))
}
