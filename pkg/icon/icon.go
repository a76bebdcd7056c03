// Package icon maps forecast condition codes onto weather glyphs and holds
// the packed 32×32 bitmaps they are drawn from.
package icon

import (
	"github.com/pkg/errors"
)

// ID names a glyph, using the weather-icons naming.
type ID string

// None is returned when no glyph fits; nothing is drawn for it.
const None ID = ""

const (
	Cloudy       ID = "wi-cloudy"
	Fog          ID = "wi-fog"
	Raindrops    ID = "wi-raindrops"
	Rain         ID = "wi-rain"
	RainMix      ID = "wi-rain-mix"
	Sleet        ID = "wi-sleet"
	Snow         ID = "wi-snow"
	Showers      ID = "wi-showers"
	Thunderstorm ID = "wi-thunderstorm"

	DaySunny        ID = "wi-day-sunny"
	DayCloudy       ID = "wi-day-cloudy"
	DayFog          ID = "wi-day-fog"
	DayRain         ID = "wi-day-rain"
	DayRainMix      ID = "wi-day-rain-mix"
	DaySnow         ID = "wi-day-snow"
	DayShowers      ID = "wi-day-showers"
	DayThunderstorm ID = "wi-day-thunderstorm"

	NightClear        ID = "wi-night-clear"
	NightCloudy       ID = "wi-night-cloudy"
	NightFog          ID = "wi-night-fog"
	NightRain         ID = "wi-night-rain"
	NightRainMix      ID = "wi-night-rain-mix"
	NightSnow         ID = "wi-night-snow"
	NightShowers      ID = "wi-night-showers"
	NightThunderstorm ID = "wi-night-thunderstorm"
)

// All lists every glyph a selector can return.
var All = []ID{
	Cloudy, Fog, Raindrops, Rain, RainMix, Sleet, Snow, Showers, Thunderstorm,
	DaySunny, DayCloudy, DayFog, DayRain, DayRainMix, DaySnow, DayShowers, DayThunderstorm,
	NightClear, NightCloudy, NightFog, NightRain, NightRainMix, NightSnow, NightShowers, NightThunderstorm,
}

// Size is the edge length of every glyph in pixels.
const Size = 32

// HeavyCloud is the cover percentage above which the cloud overlay wins.
const HeavyCloud = 80

var ErrUnknownCondition = errors.New("unknown condition code")

// Condition is what a glyph is chosen from.
type Condition struct {
	Code int
	// CloudCover in percent, nil when the source does not report it.
	CloudCover *int
	Day        bool
}

func (c Condition) overcast() bool {
	return c.CloudCover != nil && *c.CloudCover > HeavyCloud
}

// Selector picks a glyph for a condition. Select never fails; codes it does
// not know yield None.
type Selector interface {
	Select(c Condition) ID
}
