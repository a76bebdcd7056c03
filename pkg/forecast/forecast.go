// Package forecast normalizes upstream weather payloads into one hourly and
// daily series and fetches them.
package forecast

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"

	"weatherpaper/pkg/icon"
)

var (
	// ErrFetch covers every way of not getting a usable forecast: transport,
	// upstream status and payloads that do not parse.
	ErrFetch = errors.New("forecast unavailable")
	// ErrPayload reports a payload that does not match its schema.
	ErrPayload = errors.New("malformed forecast payload")
)

// Sample is one hourly forecast value.
type Sample struct {
	Time            time.Time
	TemperatureC    float64
	PrecipitationMM float64
	// Probability of precipitation in percent, 0..100.
	Probability int
	Code        int
	// CloudCover in percent, nil when not reported.
	CloudCover *int
}

// Day carries the astronomy of one calendar date. Sunrise and Sunset are
// zero when the upstream has none, e.g. polar day.
type Day struct {
	Date    time.Time
	Sunrise time.Time
	Sunset  time.Time
}

// HasSun reports whether both sunrise and sunset are known.
func (d Day) HasSun() bool {
	return !d.Sunrise.IsZero() && !d.Sunset.IsZero()
}

// Series is a normalized forecast.
type Series struct {
	Hourly []Sample
	Daily  []Day
}

// Sort orders samples by time and days by date.
func (s *Series) Sort() {
	sort.SliceStable(s.Hourly, func(i, j int) bool { return s.Hourly[i].Time.Before(s.Hourly[j].Time) })
	sort.SliceStable(s.Daily, func(i, j int) bool { return s.Daily[i].Date.Before(s.Daily[j].Date) })
}

// DayOf returns the day t falls on.
func (s *Series) DayOf(t time.Time) (Day, bool) {
	for _, d := range s.Daily {
		if SameDate(d.Date, t) {
			return d, true
		}
	}
	return Day{}, false
}

// SameDate compares calendar dates, each in its own location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween counts calendar days from from to to.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Query locates a forecast.
type Query struct {
	Latitude  float64
	Longitude float64
	// Location is a free-form place name, used by sources that take one.
	Location string
	Timezone *time.Location
	Days     int
}

// Source is one upstream schema. Each source owns its request, its payload
// parsing and its notion of daytime.
type Source interface {
	Name() string
	Request(q Query) (endpoint string, params url.Values)
	Normalize(raw []byte, loc *time.Location) (*Series, error)
	Daylight() Daylight
	Icons() icon.Selector
}

// Provider yields a sorted series.
type Provider interface {
	Forecast(ctx context.Context) (*Series, error)
}
