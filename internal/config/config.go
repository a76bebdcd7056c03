// Package config binds the dashboard settings to command line flags, with
// WEATHERPAPER_* environment variables as fallback.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	flag "github.com/spf13/pflag"

	"weatherpaper/pkg/bitmap"
	"weatherpaper/pkg/forecast"
)

const EnvPrefix = "WEATHERPAPER_"

// Panel kinds.
const (
	PanelEPD      = "epd"
	PanelBridge   = "bridge"
	PanelRemote   = "remote"
	PanelTerminal = "terminal"
	PanelSnapshot = "snapshot"
	PanelMock     = "mock"
)

var panelKinds = []string{PanelEPD, PanelBridge, PanelRemote, PanelTerminal, PanelSnapshot, PanelMock}

type Config struct {
	Source    string
	Replay    string
	Latitude  float64
	Longitude float64
	Location  string
	Timezone  string
	Days      int

	Threshold  int
	IconDir    string
	CacheDir   string
	PreviewDir string
	Journal    string

	Panels  []string
	Serial  string
	Remote  string
	SPIPort string
	Rotate  bool
	Invert  bool

	ErrorWait time.Duration
	TgToken   string
	Debug     bool
}

// Bind registers every setting on fs and returns the config they fill.
func Bind(fs *flag.FlagSet) *Config {
	c := &Config{}

	fs.StringVar(&c.Source, "source", "openmeteo", "forecast source: openmeteo or wttr")
	fs.StringVar(&c.Replay, "replay", "", "read the forecast from this payload file instead of the network")
	fs.Float64Var(&c.Latitude, "latitude", 52.52, "latitude")
	fs.Float64Var(&c.Longitude, "longitude", 13.41, "longitude")
	fs.StringVar(&c.Location, "location", "", "place name, for sources that take one")
	fs.StringVar(&c.Timezone, "timezone", "Local", "IANA time zone of the display")
	fs.IntVar(&c.Days, "days", 3, "forecast days to request")

	fs.IntVar(&c.Threshold, "threshold", bitmap.DefaultThreshold, "luminance threshold for icon reduction")
	fs.StringVar(&c.IconDir, "icons", "", "icon pack directory, builtin glyphs when empty")
	fs.StringVar(&c.CacheDir, "cache", "", "forecast cache directory")
	fs.StringVar(&c.PreviewDir, "preview", "", "directory for PNG snapshots")
	fs.StringVar(&c.Journal, "journal", "", "SQLite render journal")

	fs.StringSliceVar(&c.Panels, "panel", []string{PanelTerminal}, "panels to show frames on: "+strings.Join(panelKinds, ", "))
	fs.StringVar(&c.Serial, "serial", "ttyACM0", "serial name of the USB bridge")
	fs.StringVar(&c.Remote, "remote", "", "address of a panel proxy")
	fs.StringVar(&c.SPIPort, "spi", "", "SPI port of the panel, first one when empty")
	fs.BoolVar(&c.Rotate, "rotate", false, "panel is mounted upside down")
	fs.BoolVar(&c.Invert, "invert", false, "swap black and white")

	fs.DurationVar(&c.ErrorWait, "error-wait", 10*time.Second, "retry delay after a failed refresh")
	fs.StringVar(&c.TgToken, "tg-token", "", "telegram bot token")
	fs.BoolVar(&c.Debug, "debug", false, "set debug")

	return c
}

// EnvName is the variable that backs flag name.
func EnvName(name string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Parse reads args, then fills every flag not given on the command line
// from the environment.
func Parse(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var errs []error
	fs.VisitAll(func(f *flag.Flag) {
		if f.Changed {
			return
		}
		if v, ok := lookup(EnvName(f.Name)); ok {
			if err := fs.Set(f.Name, v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", EnvName(f.Name), err))
			}
		}
	})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if _, ok := forecast.ByName(c.Source); !ok {
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", c.Longitude)
	}
	if c.Days < 1 || c.Days > 16 {
		return fmt.Errorf("days %d out of range 1..16", c.Days)
	}
	if c.Threshold < 0 || c.Threshold > bitmap.MaxLuminance {
		return fmt.Errorf("threshold %d out of range 0..%d", c.Threshold, bitmap.MaxLuminance)
	}
	if _, err := c.TimeLocation(); err != nil {
		return err
	}
	if c.ErrorWait <= 0 {
		return fmt.Errorf("error wait must be positive")
	}

	if len(c.Panels) == 0 {
		return fmt.Errorf("no panel")
	}
	for _, p := range c.Panels {
		if !lo.Contains(panelKinds, p) {
			return fmt.Errorf("unknown panel %q", p)
		}
	}
	if lo.Contains(c.Panels, PanelRemote) && c.Remote == "" {
		return fmt.Errorf("remote panel needs --remote")
	}
	if lo.Contains(c.Panels, PanelBridge) && c.Serial == "" {
		return fmt.Errorf("bridge panel needs --serial")
	}
	if lo.Contains(c.Panels, PanelSnapshot) && c.PreviewDir == "" {
		return fmt.Errorf("snapshot panel needs --preview")
	}

	return nil
}

// TimeLocation resolves Timezone.
func (c *Config) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Query is the forecast request the settings describe.
func (c *Config) Query() (forecast.Query, error) {
	loc, err := c.TimeLocation()
	if err != nil {
		return forecast.Query{}, err
	}
	return forecast.Query{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Location:  c.Location,
		Timezone:  loc,
		Days:      c.Days,
	}, nil
}
