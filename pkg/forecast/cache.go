package forecast

import (
	"fmt"
	"os"
	"path"
	"sort"
	"time"

	"github.com/spf13/afero"

	"weatherpaper/pkg/storage"
)

// Cache keeps raw upstream payloads, one per source and date.
type Cache struct {
	fs afero.Fs
}

func NewCache(fs afero.Fs) *Cache {
	return &Cache{fs: fs}
}

// OpenCache roots a cache at dir. An empty dir disables caching.
func OpenCache(dir string) (*Cache, error) {
	c := &Cache{}

	if dir == "" {
		return c, nil
	}

	if fs, err := storage.Dir(dir); err != nil {
		return nil, fmt.Errorf("create cache failed: %w", err)
	} else {
		c.fs = fs
	}

	return c, nil
}

func (c *Cache) filename(source string, date time.Time) string {
	return path.Join(source, date.Format("2006-01-02")+".json")
}

func (c *Cache) Load(source string, date time.Time) ([]byte, bool, error) {
	if c == nil || c.fs == nil {
		return nil, false, nil
	}

	bs, err := afero.ReadFile(c.fs, c.filename(source, date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return bs, true, nil
}

func (c *Cache) Save(source string, date time.Time, raw []byte) error {
	if c == nil || c.fs == nil {
		return nil
	}

	if err := storage.Ensure(c.fs, source); err != nil {
		return err
	}

	return afero.WriteFile(c.fs, c.filename(source, date), raw, 0644)
}

// Prune removes all but the newest keep payloads of source.
func (c *Cache) Prune(source string, keep int) error {
	if c == nil || c.fs == nil {
		return nil
	}

	files, err := afero.ReadDir(c.fs, source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	for len(names) > keep {
		if err := c.fs.Remove(path.Join(source, names[0])); err != nil {
			return err
		}
		names = names[1:]
	}
	return nil
}
