package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/forecast"
	"weatherpaper/pkg/journal"
	"weatherpaper/pkg/layout"
	"weatherpaper/pkg/tricolor"
)

var (
	loc = time.FixedZone("CEST", 2*60*60)
	now = time.Date(2024, 5, 1, 7, 30, 0, 0, loc)
)

type provider struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *provider) Forecast(context.Context) (*forecast.Series, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	s := &forecast.Series{}
	for h := 23; h >= 0; h-- {
		s.Hourly = append(s.Hourly, forecast.Sample{
			Time:         time.Date(2024, 5, 1, h, 0, 0, 0, loc),
			TemperatureC: float64(h),
			Probability:  50,
		})
	}
	return s, nil
}

func (p *provider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type panel struct {
	mu    sync.Mutex
	calls []string
	shown *canvas.Canvas
	err   error
}

func (p *panel) log(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, s)
}

func (p *panel) Init() error  { p.log("init"); return nil }
func (p *panel) Sleep() error { p.log("sleep"); return nil }
func (p *panel) Halt() error  { p.log("halt"); return nil }

func (p *panel) Show(c *canvas.Canvas) error {
	p.log("show")
	p.shown = c
	return p.err
}

func newDashboard(t *testing.T, prov *provider, pan *panel, opts ...Option) *Dashboard {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return now }), WithLocation(loc)}, opts...)
	return New(prov, forecast.NewOpenMeteo(), layout.New(nil), pan, NewParams(), zap.NewNop(), opts...)
}

func TestDrawing(t *testing.T) {
	pan := &panel{}
	d := newDashboard(t, &provider{}, pan)

	require.NoError(t, d.Drawing(context.Background()))
	assert.Equal(t, []string{"init", "show", "sleep"}, pan.calls)

	require.NotNil(t, pan.shown)
	assert.Greater(t, pan.shown.Count(tricolor.Black), 0)
	assert.Greater(t, pan.shown.Count(tricolor.Chromatic), 0)

	f := d.History().Curr()
	require.NotNil(t, f)
	assert.Equal(t, 24, f.Samples)
	assert.Equal(t, "openmeteo", f.Source)
	assert.NoError(t, f.Err)
}

func TestDrawingBannerOnFetchFailure(t *testing.T) {
	j, err := journal.Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	errDown := errors.New("upstream down")
	pan := &panel{}
	d := newDashboard(t, &provider{err: errDown}, pan, WithJournal(j))

	err = d.Drawing(context.Background())
	assert.ErrorIs(t, err, errDown)

	require.NotNil(t, pan.shown)
	assert.Greater(t, pan.shown.Count(tricolor.Black), 0)
	assert.Zero(t, pan.shown.Count(tricolor.Chromatic))
	assert.ErrorIs(t, d.History().Curr().Err, errDown)

	entries, err := j.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].OK())
	assert.Contains(t, entries[0].Err, "upstream down")
}

func TestDrawingShowFailure(t *testing.T) {
	errBus := errors.New("bus")
	d := newDashboard(t, &provider{}, &panel{err: errBus})

	assert.ErrorIs(t, d.Drawing(context.Background()), errBus)
	assert.Nil(t, d.History().Curr())
}

func TestRunWakeup(t *testing.T) {
	prov := &provider{}
	d := newDashboard(t, prov, &panel{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return !d.Params().Next().IsZero() }, time.Second, time.Millisecond)
	assert.Equal(t, 1, prov.count())
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, loc), d.Params().Next())

	d.Params().Wakeup()
	require.Eventually(t, func() bool { return prov.count() == 2 }, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestRunInForecastZone(t *testing.T) {
	// 23:30 UTC on April 30 is already May 1 in the forecast's zone.
	host := time.Date(2024, 4, 30, 23, 30, 0, 0, time.UTC)
	prov := &provider{}
	pan := &panel{}
	d := newDashboard(t, prov, pan, WithClock(func() time.Time { return host }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return !d.Params().Next().IsZero() }, time.Second, time.Millisecond)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, loc), d.Params().Next())

	cancel()
	require.NoError(t, <-done)

	f := d.History().Curr()
	require.NotNil(t, f)
	assert.Equal(t, time.Date(2024, 5, 1, 1, 30, 0, 0, loc), f.At)
	assert.Greater(t, pan.shown.Count(tricolor.Chromatic), 0)
}

func TestRunPaused(t *testing.T) {
	prov := &provider{}
	d := newDashboard(t, prov, &panel{})
	d.Params().Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, d.Run(ctx))
	assert.Zero(t, prov.count())
}

func TestUntilMidnight(t *testing.T) {
	assert.Equal(t, 16*time.Hour+30*time.Minute, untilMidnight(now))
	assert.Equal(t, 24*time.Hour, untilMidnight(time.Date(2024, 5, 1, 0, 0, 0, 0, loc)))
}

func TestHistoryKeepsThree(t *testing.T) {
	h := NewHistory()
	assert.Nil(t, h.Curr())
	assert.Nil(t, h.Prev())

	for i := 1; i <= 4; i++ {
		h.Add(&Frame{Samples: i})
	}
	assert.Len(t, h.Logs(), 3)
	assert.Equal(t, 4, h.Curr().Samples)
	assert.Equal(t, 3, h.Prev().Samples)
}

func TestStatusAndLogsText(t *testing.T) {
	p := NewParams()
	assert.Equal(t, "Paused: false\nLast: none", statusText(p, nil))

	p.Pause()
	s := statusText(p, &Frame{At: now, Source: "wttr", Samples: 3, Err: errors.New("boom")})
	assert.True(t, strings.HasPrefix(s, "Paused: true\nLast: 2024-05-01 07:30:00"))
	assert.Contains(t, s, "Error: boom")

	assert.Equal(t, "No logs", logsText(nil, nil))
	got := logsText(nil, []*Frame{
		{At: now, Source: "wttr", Samples: 3},
		{At: now.Add(time.Hour), Source: "wttr", Err: errors.New("boom")},
	})
	assert.Equal(t, "2024-05-01 08:30:00 wttr failed: boom\n2024-05-01 07:30:00 wttr 3 samples", got)
}
