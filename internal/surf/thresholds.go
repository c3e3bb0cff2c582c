package surf

// The source of truth for rating derivation. The bands are checked in order;
// the first match wins. Anything that matches no band and is not degraded is
// FAIR. Thresholds operate on canonical units (meters, km/h, seconds).
//
// One table, on purpose. Tune here, nowhere else.

// RatingBand qualifies a condition for a rating when the wave height clears
// MinWaveHeightM (strictly, unless WaveInclusive), the wind stays below
// MaxWindSpeedKmh and the swell period exceeds MinSwellPeriodS.
type RatingBand struct {
	Rating          Rating
	Value           int
	MinWaveHeightM  float64
	WaveInclusive   bool
	MaxWindSpeedKmh float64
	MinSwellPeriodS float64
}

// RatingTable lists the positive bands, best first.
var RatingTable = []RatingBand{
	{Rating: RatingExcellent, Value: 90, MinWaveHeightM: 1.8, MaxWindSpeedKmh: 15, MinSwellPeriodS: 8},
	{Rating: RatingGood, Value: 75, MinWaveHeightM: 0.6, WaveInclusive: true, MaxWindSpeedKmh: 25, MinSwellPeriodS: 6},
}

// Degraded conditions: flat or blown out.
const (
	PoorMaxWaveHeightM  = 0.3
	PoorMinWindSpeedKmh = 40.0
	PoorValue           = 25
	FairValue           = 50
)

func (b RatingBand) matches(waveM, windKmh, periodS float64) bool {
	if b.WaveInclusive {
		if waveM < b.MinWaveHeightM {
			return false
		}
	} else if waveM <= b.MinWaveHeightM {
		return false
	}
	return windKmh < b.MaxWindSpeedKmh && periodS > b.MinSwellPeriodS
}

// Rate derives the ordinal rating and its 0-100 value from canonical-unit
// measurements. The two always agree; there is no other code path.
func Rate(waveM, windKmh, periodS float64) (Rating, int) {
	for _, band := range RatingTable {
		if band.matches(waveM, windKmh, periodS) {
			return band.Rating, band.Value
		}
	}
	if waveM < PoorMaxWaveHeightM || windKmh > PoorMinWindSpeedKmh {
		return RatingPoor, PoorValue
	}
	return RatingFair, FairValue
}
