package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"weatherpaper/pkg/icon"
)

var cest = time.FixedZone("CEST", 2*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 5, day, hour, minute, 0, 0, cest)
}

func fixture(t *testing.T, name string) []byte {
	bs, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return bs
}

func TestOpenMeteoNormalize(t *testing.T) {
	s, err := NewOpenMeteo().Normalize(fixture(t, "openmeteo.json"), cest)
	require.NoError(t, err)
	s.Sort()

	require.Len(t, s.Hourly, 4)
	assert.Equal(t, at(1, 8, 0), s.Hourly[0].Time)
	assert.Equal(t, at(1, 12, 0), s.Hourly[1].Time)
	assert.Equal(t, at(2, 0, 0), s.Hourly[3].Time)

	noon := s.Hourly[1]
	assert.Equal(t, 18.2, noon.TemperatureC)
	assert.Equal(t, 1.2, noon.PrecipitationMM)
	assert.Equal(t, 55, noon.Probability)
	assert.Equal(t, 61, noon.Code)
	require.NotNil(t, noon.CloudCover)
	assert.Equal(t, 95, *noon.CloudCover)

	assert.Zero(t, s.Hourly[2].Probability, "null probability")
	assert.Zero(t, s.Hourly[0].PrecipitationMM, "null precipitation")

	require.Len(t, s.Daily, 2)
	assert.Equal(t, at(1, 6, 2), s.Daily[0].Sunrise)
	assert.Equal(t, at(2, 20, 48), s.Daily[1].Sunset)
}

func TestOpenMeteoRequest(t *testing.T) {
	endpoint, v := NewOpenMeteo().Request(Query{Latitude: 50.1155, Longitude: 8.6842, Timezone: cest, Days: 3})
	assert.Equal(t, openMeteoEndpoint, endpoint)
	assert.Equal(t, "50.1155", v.Get("latitude"))
	assert.Equal(t, "8.6842", v.Get("longitude"))
	assert.Equal(t, "sunrise,sunset", v.Get("daily"))
	assert.Equal(t, "3", v.Get("forecast_days"))
	assert.Contains(t, v.Get("hourly"), "cloud_cover")
}

func TestOpenMeteoMalformed(t *testing.T) {
	_, err := NewOpenMeteo().Normalize([]byte(`{"hourly":{"time":["yesterday"],"temperature_2m":[1],"weather_code":[1]}}`), cest)
	assert.ErrorIs(t, err, ErrPayload)

	_, err = NewOpenMeteo().Normalize([]byte(`[`), cest)
	assert.ErrorIs(t, err, ErrPayload)
}

func TestWttrNormalizeSorts(t *testing.T) {
	s, err := Wttr{}.Normalize(fixture(t, "wttr.json"), cest)
	require.NoError(t, err)

	require.Len(t, s.Daily, 2)
	assert.Equal(t, at(1, 0, 0), s.Daily[0].Date)
	assert.Equal(t, at(1, 6, 2), s.Daily[0].Sunrise)
	assert.Equal(t, at(1, 20, 46), s.Daily[0].Sunset)

	want := []time.Time{at(1, 0, 0), at(1, 6, 0), at(1, 21, 0), at(2, 0, 0), at(2, 12, 0)}
	require.Len(t, s.Hourly, len(want))
	for i, w := range want {
		assert.Equal(t, w, s.Hourly[i].Time, "sample %d", i)
	}

	late := s.Hourly[2]
	assert.Equal(t, 12.0, late.TemperatureC)
	assert.Equal(t, 1.5, late.PrecipitationMM)
	assert.Equal(t, 80, late.Probability)
	assert.Equal(t, 302, late.Code)
	assert.Equal(t, 100, *late.CloudCover)
}

func TestWttrMalformed(t *testing.T) {
	_, err := Wttr{}.Normalize([]byte(`{"weather":[{"date":"2024-05-01","hourly":[{"time":"0","tempC":"warm"}]}]}`), cest)
	assert.ErrorIs(t, err, ErrPayload)
}

func TestWttrNoSunrise(t *testing.T) {
	s, err := Wttr{}.Normalize([]byte(`{"weather":[{"date":"2024-06-21","astronomy":[{"sunrise":"No sunrise","sunset":"No sunset"}],"hourly":[]}]}`), cest)
	require.NoError(t, err)
	require.Len(t, s.Daily, 1)
	assert.False(t, s.Daily[0].HasSun())
}

func TestWttrClock(t *testing.T) {
	s, err := Wttr{}.Normalize([]byte(`{"weather":[{"date":"2024-06-21","astronomy":[{"sunrise":"6:02 AM","sunset":"08:46 PM"}],"hourly":[]}]}`), cest)
	require.NoError(t, err)
	require.Len(t, s.Daily, 1)

	day := s.Daily[0]
	require.True(t, day.HasSun())
	assert.Equal(t, time.Date(2024, 6, 21, 6, 2, 0, 0, cest), day.Sunrise)
	assert.Equal(t, time.Date(2024, 6, 21, 20, 46, 0, 0, cest), day.Sunset)

	isDay, known := Sunlight{}.IsDay(Sample{Time: time.Date(2024, 6, 21, 12, 0, 0, 0, cest)}, s)
	assert.True(t, known)
	assert.True(t, isDay)
}

func TestWttrRequest(t *testing.T) {
	endpoint, v := Wttr{}.Request(Query{Location: "Frankfurt am Main"})
	assert.Equal(t, "https://wttr.in/Frankfurt%20am%20Main", endpoint)
	assert.Equal(t, "j1", v.Get("format"))
}

func TestFixedWindow(t *testing.T) {
	for _, tc := range []struct {
		t   time.Time
		day bool
	}{
		{at(1, 8, 0), false},
		{at(1, 8, 1), true},
		{at(1, 19, 59), true},
		{at(1, 20, 0), false},
		{at(1, 0, 0), false},
	} {
		day, known := DefaultWindow.IsDay(Sample{Time: tc.t}, &Series{})
		assert.True(t, known)
		assert.Equal(t, tc.day, day, "%s", tc.t.Format("15:04"))
	}
}

func TestSunlight(t *testing.T) {
	s := &Series{Daily: []Day{{Date: at(1, 0, 0), Sunrise: at(1, 6, 2), Sunset: at(1, 20, 46)}}}

	for _, tc := range []struct {
		t     time.Time
		day   bool
		known bool
	}{
		{at(1, 6, 1), false, true},
		{at(1, 6, 2), true, true},
		{at(1, 20, 46), true, true},
		{at(1, 20, 47), false, true},
		{at(3, 12, 0), false, false},
	} {
		day, known := Sunlight{}.IsDay(Sample{Time: tc.t}, s)
		assert.Equal(t, tc.known, known, "%s", tc.t)
		assert.Equal(t, tc.day, day, "%s", tc.t)
	}
}

func TestSourcesSelectIcons(t *testing.T) {
	assert.Equal(t, icon.WMO, NewOpenMeteo().Icons())
	assert.Equal(t, icon.WWO, Wttr{}.Icons())
	assert.IsType(t, FixedWindow{}, NewOpenMeteo().Daylight())
	assert.IsType(t, Sunlight{}, Wttr{}.Daylight())

	src, ok := ByName("wttr")
	assert.True(t, ok)
	assert.Equal(t, "wttr", src.Name())
	_, ok = ByName("metar")
	assert.False(t, ok)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(at(1, 0, 0), at(1, 23, 59)))
	assert.Equal(t, 1, DaysBetween(at(1, 23, 0), at(2, 0, 0)))
	assert.Equal(t, -1, DaysBetween(at(2, 0, 0), at(1, 12, 0)))
	assert.Equal(t, 31, DaysBetween(at(1, 0, 0), time.Date(2024, 6, 1, 0, 0, 0, 0, cest)))
}

func TestFetcherCaches(t *testing.T) {
	body := fixture(t, "openmeteo.json")
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "50.1155", r.URL.Query().Get("latitude"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	f := NewFetcher(NewOpenMeteo(), Query{Latitude: 50.1155, Longitude: 8.6842, Timezone: cest}, zap.NewNop(),
		WithEndpoint(srv.URL),
		WithCache(NewCache(fs)),
		WithClock(func() time.Time { return at(1, 7, 0) }),
	)

	s, err := f.Forecast(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Hourly, 4)
	assert.Equal(t, at(1, 8, 0), s.Hourly[0].Time)

	ok, err := afero.Exists(fs, "openmeteo/2024-05-01.json")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.Forecast(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

// lockedFs refuses to remove anything.
type lockedFs struct {
	afero.Fs
}

func (lockedFs) Remove(string) error {
	return os.ErrPermission
}

func TestFetcherLogsPruneFailure(t *testing.T) {
	body := fixture(t, "openmeteo.json")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	fs := lockedFs{afero.NewMemMapFs()}
	c := NewCache(fs)
	for d := 1; d <= 7; d++ {
		require.NoError(t, c.Save("openmeteo", time.Date(2024, 4, d, 0, 0, 0, 0, cest), []byte("{}")))
	}

	core, logs := observer.New(zap.WarnLevel)
	f := NewFetcher(NewOpenMeteo(), Query{Timezone: cest}, zap.New(core),
		WithEndpoint(srv.URL),
		WithCache(c),
		WithClock(func() time.Time { return at(1, 7, 0) }),
	)

	_, err := f.Forecast(context.Background())
	require.NoError(t, err)

	warns := logs.FilterMessage("cache prune failed").All()
	require.Len(t, warns, 1)
	assert.Equal(t, os.ErrPermission.Error(), warns[0].ContextMap()["error"])
}

func TestFetcherFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") == "j1" {
			_, _ = w.Write([]byte(`{"weather":`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(NewOpenMeteo(), Query{}, zap.NewNop(), WithEndpoint(srv.URL))
	_, err := f.Forecast(context.Background())
	assert.ErrorIs(t, err, ErrFetch)

	f = NewFetcher(Wttr{}, Query{Location: "x"}, zap.NewNop(), WithEndpoint(srv.URL))
	_, err = f.Forecast(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, ErrPayload)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f = NewFetcher(NewOpenMeteo(), Query{}, zap.NewNop(), WithEndpoint(srv.URL))
	_, err = f.Forecast(ctx)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestCachePrune(t *testing.T) {
	c := NewCache(afero.NewMemMapFs())
	for d := 1; d <= 5; d++ {
		require.NoError(t, c.Save("wttr", at(d, 0, 0), []byte("{}")))
	}
	require.NoError(t, c.Prune("wttr", 2))

	_, hit, err := c.Load("wttr", at(3, 0, 0))
	require.NoError(t, err)
	assert.False(t, hit)
	_, hit, err = c.Load("wttr", at(5, 0, 0))
	require.NoError(t, err)
	assert.True(t, hit)

	var disabled *Cache
	_, hit, err = disabled.Load("wttr", at(5, 0, 0))
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestReplay(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/last.json", fixture(t, "wttr.json"), 0644))

	s, err := NewReplay(Wttr{}, fs, "/last.json", cest).Forecast(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Daily, 2)

	_, err = NewReplay(Wttr{}, fs, "/none.json", cest).Forecast(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}
