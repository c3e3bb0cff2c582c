package surf

import (
	"fmt"
	"math"
	"time"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint maps an angle in degrees to one of the 16 standard compass
// points. Any finite angle is accepted; it is normalized into [0, 360) first.
func CompassPoint(angleDeg float64) string {
	a := math.Mod(angleDeg, 360)
	if a < 0 {
		a += 360
	}
	return compassPoints[int(math.Round(a/22.5))%16]
}

// ClassifyWind classifies wind relative to swell direction. The angular
// difference is normalized to [0, 180]: under 45° is onshore, over 135°
// offshore, anything between cross-shore.
func ClassifyWind(windDeg, swellDeg float64) WindType {
	diff := math.Abs(math.Mod(windDeg, 360) - math.Mod(swellDeg, 360))
	if diff > 180 {
		diff = 360 - diff
	}
	switch {
	case diff < 45:
		return WindOnshore
	case diff > 135:
		return WindOffshore
	default:
		return WindCrossShore
	}
}

// HeightBand returns the qualitative surf-height description for a wave
// height in meters.
func HeightBand(waveM float64) string {
	switch {
	case waveM < 1.0:
		return "Cheville à genou"
	case waveM < 2.0:
		return "Cuisse à ventre"
	case waveM < 3.0:
		return "Ventre à poitrine"
	default:
		return "Poitrine à tête"
	}
}

const (
	kmhToKnots = 0.54
	gustFactor = 1.3

	wetsuitThresholdC = 18.0

	tideBaseHeightM = 0.9
	tideAmplitudeM  = 0.5
	tideSeriesLen   = 8
)

// Normalize converts a complete Reading into the display-ready condition
// record. Pure: no I/O, no randomness; the wall clock comes in as now and
// feeds only the tide simulation and the display timestamp.
func Normalize(spotID string, raw Reading, now time.Time) Condition {
	rating, value := Rate(raw.WaveHeightM, raw.WindSpeedKmh, raw.SwellPeriodS)

	minH := math.Max(0.3, round1(raw.WaveHeightM*0.8))
	maxH := round1(raw.WaveHeightM * 1.2)
	if maxH < minH {
		maxH = minH
	}

	knots := raw.WindSpeedKmh * kmhToKnots
	airC := int(math.Round(raw.AirTempC))
	wetsuit := "Combinaison 2mm"
	if raw.AirTempC < wetsuitThresholdC {
		wetsuit = "Combinaison 3mm"
	}

	return Condition{
		SpotID:      spotID,
		Rating:      rating,
		RatingValue: value,
		SurfHeight: SurfHeight{
			Min:         minH,
			Max:         maxH,
			Description: HeightBand(raw.WaveHeightM),
		},
		Swell: []Swell{{
			Height:    round1(raw.WaveHeightM),
			Period:    int(math.Round(raw.SwellPeriodS)),
			Direction: CompassPoint(raw.SwellDirectionDeg),
			Angle:     normalizeAngle(raw.SwellDirectionDeg),
		}},
		Wind: Wind{
			Speed:     int(math.Round(knots)),
			Gusts:     int(math.Round(knots * gustFactor)),
			Direction: CompassPoint(raw.WindDirectionDeg),
			Type:      ClassifyWind(raw.WindDirectionDeg, raw.SwellDirectionDeg),
		},
		Tide: simulateTide(now),
		Temperature: Temperature{
			Air:     airC,
			Water:   airC - 3, // rough Atlantic estimate
			Wetsuit: wetsuit,
		},
		Forecast:    raw.Source,
		LastUpdated: now.Format("3:04pm, MST"),
		Timestamp:   now.UTC(),
	}
}

// simulateTide models tide height as a sinusoid of the hour of day. This is a
// presentation-layer simulation, not tidal prediction; no live tide feed is
// integrated.
func simulateTide(now time.Time) Tide {
	hour := now.Hour()

	trend := TideFalling
	if hour%12 < 6 {
		trend = TideRising
	}

	data := make([]TidePoint, 0, tideSeriesLen)
	for i := 0; i < tideSeriesLen; i++ {
		t := now.Add(time.Duration(i) * time.Hour)
		data = append(data, TidePoint{
			Time:   t.Format("3pm"),
			Height: tideHeightAt(t.Hour()),
		})
	}

	next := now.Add(2 * time.Hour)
	return Tide{
		Current:    tideHeightAt(hour),
		Trend:      trend,
		NextChange: fmt.Sprintf("%s %.1fm", next.Format("3:04pm"), tideBaseHeightM+tideAmplitudeM),
		Data:       data,
	}
}

func tideHeightAt(hour int) float64 {
	return round1(tideBaseHeightM + math.Sin(float64(hour)/6*math.Pi)*tideAmplitudeM)
}

func normalizeAngle(deg float64) int {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return int(math.Round(a)) % 360
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
