package icon

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	"weatherpaper/pkg/bitmap"
	"weatherpaper/pkg/storage"
)

// ManifestName is the file describing a pack directory.
const ManifestName = "manifest.json"

// Manifest lists the glyphs of a pack. Bitmaps are stored next to it as raw
// packed bytes, one file per glyph.
type Manifest struct {
	Threshold int     `json:"threshold"`
	Icons     []Entry `json:"icons"`
}

type Entry struct {
	ID    ID     `json:"id"`
	Width int    `json:"width"`
	File  string `json:"file"`
}

// Pack is an immutable set of glyph bitmaps.
type Pack struct {
	threshold int
	icons     map[ID]*bitmap.Packed
}

func NewPack(threshold int, icons map[ID]*bitmap.Packed) *Pack {
	return &Pack{threshold: threshold, icons: lo.Assign(icons)}
}

// LoadPack reads dir/manifest.json and every glyph it names from fs. A glyph
// whose size is not whole rows fails the load with bitmap.ErrDecodeAsset.
func LoadPack(fs afero.Fs, dir string) (*Pack, error) {
	bs, err := afero.ReadFile(fs, path.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest failed: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(bs, &m); err != nil {
		return nil, fmt.Errorf("parse manifest failed: %w", err)
	}

	p := &Pack{threshold: m.Threshold, icons: make(map[ID]*bitmap.Packed, len(m.Icons))}
	for _, e := range m.Icons {
		data, err := afero.ReadFile(fs, path.Join(dir, e.File))
		if err != nil {
			return nil, fmt.Errorf("read icon %s failed: %w", e.ID, err)
		}
		if p.icons[e.ID], err = bitmap.NewPacked(e.Width, data); err != nil {
			return nil, fmt.Errorf("icon %s: %w", e.ID, err)
		}
	}

	return p, nil
}

// WritePack stores p under dir in the layout LoadPack reads.
func WritePack(fs afero.Fs, dir string, p *Pack) error {
	if err := storage.Ensure(fs, dir); err != nil {
		return err
	}

	m := Manifest{Threshold: p.threshold}
	for _, id := range p.IDs() {
		b := p.icons[id]
		e := Entry{ID: id, Width: b.Width(), File: string(id) + ".bin"}
		if err := afero.WriteFile(fs, path.Join(dir, e.File), b.Bytes(), 0644); err != nil {
			return err
		}
		m.Icons = append(m.Icons, e)
	}

	bs, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path.Join(dir, ManifestName), bs, 0644)
}

// Get returns the bitmap for id, or nil.
func (p *Pack) Get(id ID) *bitmap.Packed {
	if p == nil || id == None {
		return nil
	}
	return p.icons[id]
}

// IDs returns the glyphs in the pack, sorted.
func (p *Pack) IDs() []ID {
	ids := lo.Keys(p.icons)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (p *Pack) Len() int {
	return len(p.icons)
}

// Threshold is the luminance threshold the pack was reduced with.
func (p *Pack) Threshold() int {
	return p.threshold
}

// Missing returns the glyphs of All the pack has no bitmap for.
func (p *Pack) Missing() []ID {
	return lo.Filter(All, func(id ID, _ int) bool {
		_, ok := p.icons[id]
		return !ok
	})
}

// Open loads the pack in dir on the OS file system, or the built-in glyphs
// when dir is empty.
func Open(dir string, threshold int) (*Pack, error) {
	if dir == "" {
		return Builtin(threshold)
	}
	fs, err := storage.Dir(dir)
	if err != nil {
		return nil, fmt.Errorf("icon pack: %w", err)
	}
	return LoadPack(fs, "/")
}
