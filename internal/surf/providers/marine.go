package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/surfaumaroc/surfcast/internal/surf"
)

const defaultMarineBaseURL = "https://marine-api.open-meteo.com/v1/marine"

// Marine serves wave and swell data from the Open-Meteo marine API. Wave
// fields are frequently absent close to shore; callers must treat every field
// as optional.
type Marine struct {
	name    string
	baseURL string
	res     resilient
}

func NewMarine(client *http.Client, baseURL string) *Marine {
	if baseURL == "" {
		baseURL = defaultMarineBaseURL
	}
	return &Marine{
		name:    "openmeteo-marine",
		baseURL: baseURL,
		res:     newResilient(client, "openmeteo-marine"),
	}
}

func (p *Marine) Name() string {
	return p.name
}

func (p *Marine) Fetch(ctx context.Context, coords surf.Coordinates) (surf.Observation, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", coords.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", coords.Longitude))
	values.Set("current", "wave_height,wave_period,swell_wave_height,swell_wave_period,swell_wave_direction")

	var payload struct {
		Current struct {
			WaveHeight     *float64 `json:"wave_height"`
			WavePeriod     *float64 `json:"wave_period"`
			SwellHeight    *float64 `json:"swell_wave_height"`
			SwellPeriod    *float64 `json:"swell_wave_period"`
			SwellDirection *float64 `json:"swell_wave_direction"`
		} `json:"current"`
	}

	if err := p.res.getJSON(ctx, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return surf.Observation{}, err
	}

	obs := surf.Observation{ProviderName: p.name}
	obs.WaveHeightM = firstOf(payload.Current.WaveHeight, payload.Current.SwellHeight)
	obs.SwellPeriodS = firstOf(payload.Current.SwellPeriod, payload.Current.WavePeriod)
	obs.SwellDirectionDeg = payload.Current.SwellDirection
	return obs, nil
}

func (p *Marine) FetchDaily(ctx context.Context, coords surf.Coordinates, days int) ([]surf.DailyObservation, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", coords.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", coords.Longitude))
	values.Set("daily", "wave_height_max,wave_direction_dominant,wave_period_max,swell_wave_height_max,swell_wave_direction_dominant,swell_wave_period_max")
	values.Set("forecast_days", fmt.Sprintf("%d", days))

	var payload struct {
		Daily struct {
			Time           []string   `json:"time"`
			WaveHeight     []*float64 `json:"wave_height_max"`
			WavePeriod     []*float64 `json:"wave_period_max"`
			SwellHeight    []*float64 `json:"swell_wave_height_max"`
			SwellPeriod    []*float64 `json:"swell_wave_period_max"`
			SwellDirection []*float64 `json:"swell_wave_direction_dominant"`
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
		d.WaveHeightMaxM = at(payload.Daily.WaveHeight, i)
		d.SwellHeightMaxM = at(payload.Daily.SwellHeight, i)
		d.SwellPeriodMaxS = firstOf(at(payload.Daily.SwellPeriod, i), at(payload.Daily.WavePeriod, i))
		d.SwellDirectionDeg = at(payload.Daily.SwellDirection, i)
		out = append(out, d)
	}
	return out, nil
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func firstOf(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
