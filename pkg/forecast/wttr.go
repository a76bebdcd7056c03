package forecast

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"weatherpaper/pkg/icon"
)

const (
	wttrEndpoint = "https://wttr.in/"
	wttrDate     = "2006-01-02"
	wttrClock    = "3:04 PM"
)

// Wttr reads wttr.in's j1 format: one object per day with eight three-hourly
// entries, every number quoted, World Weather Online condition codes. Days
// are not guaranteed to arrive in order.
type Wttr struct{}

var _ Source = Wttr{}

func (Wttr) Name() string {
	return "wttr"
}

func (Wttr) Request(q Query) (string, url.Values) {
	place := q.Location
	if place == "" {
		place = strconv.FormatFloat(q.Latitude, 'f', 4, 64) + "," + strconv.FormatFloat(q.Longitude, 'f', 4, 64)
	}
	return wttrEndpoint + url.PathEscape(place), url.Values{"format": {"j1"}}
}

type wttrPayload struct {
	Weather []struct {
		Date      string `json:"date"`
		Astronomy []struct {
			Sunrise string `json:"sunrise"`
			Sunset  string `json:"sunset"`
		} `json:"astronomy"`
		Hourly []struct {
			Time         string `json:"time"`
			TempC        string `json:"tempC"`
			PrecipMM     string `json:"precipMM"`
			ChanceOfRain string `json:"chanceofrain"`
			WeatherCode  string `json:"weatherCode"`
			CloudCover   string `json:"cloudcover"`
		} `json:"hourly"`
	} `json:"weather"`
}

func (Wttr) Normalize(raw []byte, loc *time.Location) (*Series, error) {
	var p wttrPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(ErrPayload, err.Error())
	}
	if loc == nil {
		loc = time.Local
	}

	s := &Series{}
	for _, w := range p.Weather {
		date, err := time.ParseInLocation(wttrDate, w.Date, loc)
		if err != nil {
			return nil, errors.Wrapf(ErrPayload, "date %q", w.Date)
		}

		day := Day{Date: date}
		if len(w.Astronomy) > 0 {
			day.Sunrise = wttrClockOn(date, w.Astronomy[0].Sunrise)
			day.Sunset = wttrClockOn(date, w.Astronomy[0].Sunset)
		}
		s.Daily = append(s.Daily, day)

		for _, h := range w.Hourly {
			hmm, err := strconv.Atoi(strings.TrimSpace(h.Time))
			if err != nil {
				return nil, errors.Wrapf(ErrPayload, "%s hour %q", w.Date, h.Time)
			}

			sample := Sample{Time: atClock(date, hmm/100, hmm%100)}
			if err := parseFields(
				field{h.TempC, &sample.TemperatureC},
				field{h.PrecipMM, &sample.PrecipitationMM},
			); err != nil {
				return nil, errors.Wrapf(ErrPayload, "%s %s: %v", w.Date, h.Time, err)
			}
			if sample.Probability, err = strconv.Atoi(h.ChanceOfRain); err != nil {
				return nil, errors.Wrapf(ErrPayload, "%s %s chanceofrain %q", w.Date, h.Time, h.ChanceOfRain)
			}
			if sample.Code, err = strconv.Atoi(h.WeatherCode); err != nil {
				return nil, errors.Wrapf(ErrPayload, "%s %s weatherCode %q", w.Date, h.Time, h.WeatherCode)
			}
			if cover, err := strconv.Atoi(h.CloudCover); err == nil {
				sample.CloudCover = lo.ToPtr(cover)
			}
			s.Hourly = append(s.Hourly, sample)
		}
	}

	s.Sort()
	return s, nil
}

type field struct {
	raw string
	dst *float64
}

func parseFields(fields ...field) error {
	for _, f := range fields {
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// wttrClockOn places an "h:mm AM" clock on date. Entries such as
// "No sunrise" give the zero time.
func wttrClockOn(date time.Time, clock string) time.Time {
	t, err := time.Parse(wttrClock, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}
	}
	return atClock(date, t.Hour(), t.Minute())
}

func atClock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func (Wttr) Daylight() Daylight {
	return Sunlight{}
}

func (Wttr) Icons() icon.Selector {
	return icon.WWO
}
