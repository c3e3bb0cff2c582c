package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/surfaumaroc/surfcast/internal/surf"
)

const defaultWeatherBaseURL = "https://api.open-meteo.com/v1/forecast"

// msToKmh is the single place wind speeds cross from the provider's m/s into
// the canonical km/h. Requests pin wind_speed_unit=ms so the conversion
// happens exactly once regardless of API defaults.
const msToKmh = 3.6

// OpenMeteo serves current weather and daily wind forecasts from the
// Open-Meteo forecast API. No API key required.
type OpenMeteo struct {
	name    string
	baseURL string
	res     resilient
}

func NewOpenMeteo(client *http.Client, baseURL string) *OpenMeteo {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &OpenMeteo{
		name:    "openmeteo",
		baseURL: baseURL,
		res:     newResilient(client, "openmeteo"),
	}
}

func (p *OpenMeteo) Name() string {
	return p.name
}

func (p *OpenMeteo) Fetch(ctx context.Context, coords surf.Coordinates) (surf.Observation, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", coords.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", coords.Longitude))
	values.Set("current", "temperature_2m,wind_speed_10m,wind_direction_10m")
	values.Set("wind_speed_unit", "ms")
	values.Set("forecast_days", "1")

	var payload struct {
		Current struct {
			Temperature   *float64 `json:"temperature_2m"`
			WindSpeedMS   *float64 `json:"wind_speed_10m"`
			WindDirection *float64 `json:"wind_direction_10m"`
		} `json:"current"`
	}

	if err := p.res.getJSON(ctx, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return surf.Observation{}, err
	}

	obs := surf.Observation{ProviderName: p.name}
	obs.AirTempC = payload.Current.Temperature
	obs.WindDirectionDeg = payload.Current.WindDirection
	if payload.Current.WindSpeedMS != nil {
		kmh := *payload.Current.WindSpeedMS * msToKmh
		obs.WindSpeedKmh = &kmh
	}
	return obs, nil
}

func (p *OpenMeteo) FetchDaily(ctx context.Context, coords surf.Coordinates, days int) ([]surf.DailyObservation, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", coords.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", coords.Longitude))
	values.Set("daily", "wind_speed_10m_max,wind_direction_10m_dominant")
	values.Set("wind_speed_unit", "ms")
	values.Set("forecast_days", fmt.Sprintf("%d", days))

	var payload struct {
		Daily struct {
			Time          []string   `json:"time"`
			WindSpeedMS   []*float64 `json:"wind_speed_10m_max"`
			WindDirection []*float64 `json:"wind_direction_10m_dominant"`
		} `json:"daily"`
	}

	if err := p.res.getJSON(ctx, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	out := make([]surf.DailyObservation, 0, len(payload.Daily.Time))
	for i, day := range payload.Daily.Time {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		d := surf.DailyObservation{Date: date}
		if i < len(payload.Daily.WindSpeedMS) && payload.Daily.WindSpeedMS[i] != nil {
			kmh := *payload.Daily.WindSpeedMS[i] * msToKmh
			d.WindSpeedMaxKmh = &kmh
		}
		if i < len(payload.Daily.WindDirection) {
			d.WindDirectionDeg = payload.Daily.WindDirection[i]
		}
		out = append(out, d)
	}
	return out, nil
}
