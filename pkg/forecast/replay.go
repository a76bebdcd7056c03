package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// Replay serves a stored payload instead of the network, for previews and
// offline runs.
type Replay struct {
	src  Source
	fs   afero.Fs
	file string
	loc  *time.Location
}

var _ Provider = (*Replay)(nil)

func NewReplay(src Source, fs afero.Fs, file string, loc *time.Location) *Replay {
	return &Replay{src: src, fs: fs, file: file, loc: loc}
}

func (r *Replay) Source() Source {
	return r.src
}

func (r *Replay) Forecast(context.Context) (*Series, error) {
	raw, err := afero.ReadFile(r.fs, r.file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	series, err := r.src.Normalize(raw, r.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	series.Sort()
	return series, nil
}

// ByName returns the source registered under name.
func ByName(name string) (Source, bool) {
	switch name {
	case "openmeteo":
		return NewOpenMeteo(), true
	case "wttr":
		return Wttr{}, true
	}
	return nil, false
}
