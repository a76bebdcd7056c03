package forecast

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"weatherpaper/pkg/icon"
)

const (
	openMeteoEndpoint = "https://api.open-meteo.com/v1/forecast"
	openMeteoTime     = "2006-01-02T15:04"
	openMeteoDate     = "2006-01-02"
)

// OpenMeteo reads the open-meteo.com forecast API: parallel arrays keyed by
// ISO-8601 local times and WMO condition codes.
type OpenMeteo struct {
	Window FixedWindow
}

var _ Source = (*OpenMeteo)(nil)

func NewOpenMeteo() *OpenMeteo {
	return &OpenMeteo{Window: DefaultWindow}
}

func (o *OpenMeteo) Name() string {
	return "openmeteo"
}

func (o *OpenMeteo) Request(q Query) (string, url.Values) {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', 4, 64))
	v.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', 4, 64))
	v.Set("hourly", "temperature_2m,precipitation_probability,precipitation,weather_code,cloud_cover")
	v.Set("daily", "sunrise,sunset")
	v.Set("timezone", lo.Ternary(q.Timezone != nil, q.Timezone.String(), "auto"))
	v.Set("forecast_days", strconv.Itoa(lo.Ternary(q.Days > 0, q.Days, 3)))
	return openMeteoEndpoint, v
}

type openMeteoPayload struct {
	Timezone string `json:"timezone"`
	Hourly   struct {
		Time          []string   `json:"time"`
		Temperature   []float64  `json:"temperature_2m"`
		Probability   []*int     `json:"precipitation_probability"`
		Precipitation []*float64 `json:"precipitation"`
		WeatherCode   []int      `json:"weather_code"`
		CloudCover    []*int     `json:"cloud_cover"`
	} `json:"hourly"`
	Daily struct {
		Time    []string `json:"time"`
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

// Normalize parses times in loc. Arrays of unequal length are cut to the
// shortest of the required ones; cloud cover may be missing altogether.
func (o *OpenMeteo) Normalize(raw []byte, loc *time.Location) (*Series, error) {
	var p openMeteoPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(ErrPayload, err.Error())
	}
	if loc == nil {
		loc = time.Local
	}

	h := p.Hourly
	n := min(len(h.Time), len(h.Temperature), len(h.WeatherCode))
	s := &Series{Hourly: make([]Sample, 0, n)}

	for i := 0; i < n; i++ {
		t, err := time.ParseInLocation(openMeteoTime, h.Time[i], loc)
		if err != nil {
			return nil, errors.Wrapf(ErrPayload, "hourly time %q", h.Time[i])
		}
		sample := Sample{
			Time:         t,
			TemperatureC: h.Temperature[i],
			Code:         h.WeatherCode[i],
		}
		if i < len(h.Probability) {
			sample.Probability = lo.FromPtr(h.Probability[i])
		}
		if i < len(h.Precipitation) {
			sample.PrecipitationMM = lo.FromPtr(h.Precipitation[i])
		}
		if i < len(h.CloudCover) {
			sample.CloudCover = h.CloudCover[i]
		}
		s.Hourly = append(s.Hourly, sample)
	}

	d := p.Daily
	for i, date := range d.Time {
		day := Day{}
		var err error
		if day.Date, err = time.ParseInLocation(openMeteoDate, date, loc); err != nil {
			return nil, errors.Wrapf(ErrPayload, "daily time %q", date)
		}
		if i < len(d.Sunrise) {
			if day.Sunrise, err = time.ParseInLocation(openMeteoTime, d.Sunrise[i], loc); err != nil {
				return nil, errors.Wrapf(ErrPayload, "sunrise %q", d.Sunrise[i])
			}
		}
		if i < len(d.Sunset) {
			if day.Sunset, err = time.ParseInLocation(openMeteoTime, d.Sunset[i], loc); err != nil {
				return nil, errors.Wrapf(ErrPayload, "sunset %q", d.Sunset[i])
			}
		}
		s.Daily = append(s.Daily, day)
	}

	return s, nil
}

func (o *OpenMeteo) Daylight() Daylight {
	return o.Window
}

func (o *OpenMeteo) Icons() icon.Selector {
	return icon.WMO
}
