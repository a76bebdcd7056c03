// Package storage opens the directories the dashboard keeps files in.
package storage

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
	"github.com/spf13/afero"
)

var ErrNoDir = errors.New("dir not exists")

// Dir returns a file system rooted at an existing directory.
func Dir(path string) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, path); err != nil {
		return nil, err
	} else if !exists {
		return nil, fmt.Errorf("%s: %w", path, ErrNoDir)
	}
	return afero.NewBasePathFs(fs, path), nil
}

// Ensure creates dir on fs if needed.
func Ensure(fs afero.Fs, dir string) error {
	if exists, err := afero.DirExists(fs, dir); err != nil {
		return err
	} else if !exists {
		if err2 := fs.MkdirAll(dir, 0755); err2 != nil {
			return err2
		}
	}
	return nil
}

// Spool hands out unique file names in one directory.
type Spool struct {
	fs afero.Fs
}

func NewSpool(fs afero.Fs) *Spool {
	return &Spool{fs: fs}
}

// OpenSpool is NewSpool over an existing OS directory. An empty dir gives a
// spool that names nothing.
func OpenSpool(dir string) (*Spool, error) {
	if dir == "" {
		return &Spool{}, nil
	}
	fs, err := Dir(dir)
	if err != nil {
		return nil, fmt.Errorf("open spool failed: %w", err)
	}
	return NewSpool(fs), nil
}

func (s *Spool) Enabled() bool {
	return s != nil && s.fs != nil
}

func (s *Spool) Fs() afero.Fs {
	return s.fs
}

// NewFile returns a fresh name with ext.
func (s *Spool) NewFile(ext string) string {
	return xid.New().String() + ext
}

// RealPath maps name to the OS path behind the spool, when there is one.
func (s *Spool) RealPath(name string) string {
	if bp, ok := s.fs.(*afero.BasePathFs); ok {
		p, _ := bp.RealPath(name)
		return p
	}
	return name
}
