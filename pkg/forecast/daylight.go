package forecast

import (
	"time"
)

// Daylight decides whether a sample is drawn with a day or a night glyph.
// known is false when the series has nothing to decide by.
type Daylight interface {
	IsDay(s Sample, series *Series) (day, known bool)
}

// FixedWindow treats the open interval (From, To) of every day as daytime.
type FixedWindow struct {
	From time.Duration
	To   time.Duration
}

// DefaultWindow is 08:00 to 20:00.
var DefaultWindow = FixedWindow{From: 8 * time.Hour, To: 20 * time.Hour}

func (w FixedWindow) IsDay(s Sample, _ *Series) (bool, bool) {
	t := sinceMidnight(s.Time)
	return t > w.From && t < w.To, true
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// Sunlight uses the sunrise and sunset of the sample's own date, both ends
// included.
type Sunlight struct{}

func (Sunlight) IsDay(s Sample, series *Series) (bool, bool) {
	d, ok := series.DayOf(s.Time)
	if !ok || !d.HasSun() {
		return false, false
	}
	return !s.Time.Before(d.Sunrise) && !s.Time.After(d.Sunset), true
}
