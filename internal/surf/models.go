// Package surf implements the surf-condition derivation pipeline: merging
// provider observations, filling gaps with synthetic values, and normalizing
// the result into the display-ready condition record.
//
// Canonical internal units are meters, km/h, degrees and °C. Provider
// boundaries convert into these exactly once (m/s → km/h via ×3.6); knots
// appear only in final display formatting (km/h → knots via ×0.54).
package surf

import (
	"context"
	"time"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Source tags the provenance of a condition record: measured provider data or
// the synthetic fallback generator. Diagnostic only; it must never be turned
// into a user-facing error state.
type Source string

const (
	SourceOpenMeteo Source = "OPEN-METEO"
	SourceFallback  Source = "FALLBACK"
)

// Observation is a single provider's raw, possibly partial reading.
// Nil fields mean the provider did not supply that value; the synthesizer
// fills them field by field.
type Observation struct {
	ProviderName string

	WindSpeedKmh      *float64
	WindDirectionDeg  *float64
	AirTempC          *float64
	WaveHeightM       *float64
	SwellPeriodS      *float64
	SwellDirectionDeg *float64
}

// DailyObservation is one forecast day's worth of provider maxima, used by the
// 7-day forecast aggregator. Nil fields fall back to fixed defaults.
type DailyObservation struct {
	Date time.Time

	WindSpeedMaxKmh   *float64
	WindDirectionDeg  *float64
	WaveHeightMaxM    *float64
	SwellHeightMaxM   *float64
	SwellPeriodMaxS   *float64
	SwellDirectionDeg *float64
}

// Provider abstracts an external marine/weather data source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords Coordinates) (Observation, error)
}

// ForecastProvider is implemented by providers that can serve multi-day
// forecast maxima in addition to current observations.
type ForecastProvider interface {
	Provider
	FetchDaily(ctx context.Context, coords Coordinates, days int) ([]DailyObservation, error)
}

// Reading is the complete per-request measurement set the normalizer consumes.
// Every field is populated, either measured or synthesized.
type Reading struct {
	WindSpeedKmh      float64
	WindDirectionDeg  float64
	WaveHeightM       float64
	SwellPeriodS      float64
	SwellDirectionDeg float64
	AirTempC          float64
	Source            Source
}

// Rating is the ordinal surf quality tag.
type Rating string

const (
	RatingPoor      Rating = "POOR"
	RatingFair      Rating = "FAIR"
	RatingGood      Rating = "GOOD"
	RatingExcellent Rating = "EXCELLENT"
)

type SurfHeight struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Description string  `json:"description"`
}

type Swell struct {
	Height    float64 `json:"height"`
	Period    int     `json:"period"`
	Direction string  `json:"direction"`
	Angle     int     `json:"angle"`
}

// WindType classifies wind relative to the incoming swell.
type WindType string

const (
	WindOnshore    WindType = "Onshore"
	WindOffshore   WindType = "Offshore"
	WindCrossShore WindType = "Cross-shore"
)

type Wind struct {
	Speed     int      `json:"speed"` // knots
	Gusts     int      `json:"gusts"` // knots
	Direction string   `json:"direction"`
	Type      WindType `json:"type"`
}

type TideTrend string

const (
	TideRising  TideTrend = "rising"
	TideFalling TideTrend = "falling"
)

type TidePoint struct {
	Time   string  `json:"time"`
	Height float64 `json:"height"`
}

type Tide struct {
	Current    float64     `json:"current"`
	Trend      TideTrend   `json:"trend"`
	NextChange string      `json:"nextChange"`
	Data       []TidePoint `json:"data"`
}

type Temperature struct {
	Air     int    `json:"air"`
	Water   int    `json:"water"`
	Wetsuit string `json:"wetsuit"`
}

// Condition is the pipeline's output contract. Constructed fresh per request
// and never mutated afterwards.
type Condition struct {
	SpotID      string      `json:"spotId"`
	Rating      Rating      `json:"rating"`
	RatingValue int         `json:"ratingValue"`
	SurfHeight  SurfHeight  `json:"surfHeight"`
	Swell       []Swell     `json:"swell"`
	Wind        Wind        `json:"wind"`
	Tide        Tide        `json:"tide"`
	Temperature Temperature `json:"temperature"`
	Forecast    Source      `json:"forecast"`
	LastUpdated string      `json:"lastUpdated"`
	Timestamp   time.Time   `json:"timestamp"` // always UTC
}

// ForecastDay is one entry of the 7-day forecast view.
type ForecastDay struct {
	Date          time.Time `json:"date"`
	WaveHeight    string    `json:"waveHeight"` // display range, e.g. "0.6-0.9m"
	WindDirection string    `json:"windDirection"`
	WindSpeed     int       `json:"windSpeed"` // km/h
	Rating        int       `json:"rating"`    // 1-5 stars
	Conditions    string    `json:"conditions"`
}

// Store is the contract the in-memory snapshot store must satisfy.
type Store interface {
	SaveCondition(spotID string, cond Condition)
	Latest(spotID string) (Condition, error)
	Range(spotID string, from, to time.Time) ([]Condition, error)
}
