// Package rotate lays out the dump root so the next dump run starts a new
// full backup: a dated directory plus a "latest" symlink pointing at it.
package rotate

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	DefaultLink       = "latest"
	DefaultDateLayout = "2006-01-02"
)

var (
	ErrLinkConflict = errors.New("link name is taken by something that is not a symlink")
	ErrNoSymlinks   = errors.New("filesystem does not support symlinks")
)

type Rotator struct {
	Fs         afero.Fs
	Root       string
	Link       string
	DateLayout string
}

func New(fs afero.Fs, root string) *Rotator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Rotator{Fs: fs, Root: root, Link: DefaultLink, DateLayout: DefaultDateLayout}
}

func (r *Rotator) linker() (afero.Symlinker, error) {
	linker, ok := r.Fs.(afero.Symlinker)
	if !ok {
		return nil, ErrNoSymlinks
	}
	return linker, nil
}

// LinkPath is where the "latest" symlink lives.
func (r *Rotator) LinkPath() string {
	return filepath.Join(r.Root, r.Link)
}

// PrepareFull creates the directory for now's full backup and points the
// link at it. Nothing is created when the link name is occupied by a regular
// file or directory.
func (r *Rotator) PrepareFull(now time.Time) (dir string, err error) {
	linker, err := r.linker()
	if err != nil {
		return "", err
	}

	linkPath := r.LinkPath()
	fi, _, err := linker.LstatIfPossible(linkPath)
	hasLink := err == nil
	switch {
	case err != nil && !os.IsNotExist(err):
		return "", errors.Wrapf(err, "checking %s", linkPath)
	case hasLink && fi.Mode()&os.ModeSymlink == 0:
		return "", errors.Wrap(ErrLinkConflict, linkPath)
	}

	name := now.Format(r.DateLayout)
	dir = filepath.Join(r.Root, name)
	if err = r.Fs.Mkdir(dir, 0700); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}
	log.Debug().Str("dir", dir).Msg("full backup directory created")

	if hasLink {
		if err = r.Fs.Remove(linkPath); err != nil {
			r.undo(dir)
			return "", errors.Wrapf(err, "removing old %s", linkPath)
		}
	}
	// relative target
	if err = linker.SymlinkIfPossible(name, linkPath); err != nil {
		r.undo(dir)
		return "", errors.Wrapf(err, "linking %s", linkPath)
	}
	log.Info().Str("link", linkPath).Str("target", name).Msg("link repointed")
	return dir, nil
}

func (r *Rotator) undo(dir string) {
	if err := r.Fs.Remove(dir); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("failed removing new directory")
	}
}

// Current resolves the link to the directory the running series lives in.
func (r *Rotator) Current() (string, error) {
	linker, err := r.linker()
	if err != nil {
		return "", err
	}
	target, err := linker.ReadlinkIfPossible(r.LinkPath())
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", r.LinkPath())
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(r.Root, target)
	}
	return target, nil
}
