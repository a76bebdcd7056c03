package dashboard

import (
	"time"

	"weatherpaper/pkg/journal"
)

type Option func(d *Dashboard)

// WithJournal records every pass.
func WithJournal(j *journal.Journal) Option {
	return func(d *Dashboard) {
		d.journal = j
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// WithLocation sets the zone "today" and midnight are taken in. It should
// match the zone the forecast is queried in.
func WithLocation(loc *time.Location) Option {
	return func(d *Dashboard) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// WithHistory shares a history with other consumers such as the bot.
func WithHistory(h *History) Option {
	return func(d *Dashboard) {
		d.history = h
	}
}
