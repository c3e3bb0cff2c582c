package surf

import (
	"math"
	"math/rand"
	"time"
)

// Synthetic generation bounds. Waves are derived from wind so that a
// fabricated reading stays internally consistent: stronger wind, bigger sea.
const (
	synthMaxWindKmh     = 30.0
	synthBaseWaveM      = 0.5
	synthWindWaveGainM  = 2.0
	synthWaveJitterM    = 0.8
	synthBasePeriodS    = 6.0
	synthPeriodPerWaveS = 2.0
	synthPeriodJitterS  = 3.0
	synthSwellSpreadDeg = 30.0

	defaultAirTempC = 20.0
	defaultWindDeg  = 180.0
)

// Synthesizer produces plausible substitute measurements when provider data
// is unavailable or incomplete. The random source is injected so tests can
// pin it down.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer returns a Synthesizer backed by rng. A nil rng gets a
// time-seeded source.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{rng: rng}
}

// Complete turns a possibly partial observation into a full Reading, filling
// every missing field. Missing wave data is derived from wind speed; a missing
// wind speed starts the whole chain from a uniform draw. The reading is tagged
// SourceOpenMeteo only when the key wind measurement was actually measured.
func (s *Synthesizer) Complete(obs Observation) Reading {
	source := SourceFallback

	var windKmh float64
	if obs.WindSpeedKmh != nil {
		windKmh = *obs.WindSpeedKmh
		source = SourceOpenMeteo
	} else {
		windKmh = s.rng.Float64() * synthMaxWindKmh
	}

	windDeg := defaultWindDeg
	if obs.WindDirectionDeg != nil {
		windDeg = *obs.WindDirectionDeg
	}

	var waveM float64
	if obs.WaveHeightM != nil {
		waveM = *obs.WaveHeightM
	} else {
		windFactor := math.Min(windKmh/synthMaxWindKmh, 1)
		base := synthBaseWaveM + windFactor*synthWindWaveGainM
		waveM = base + s.rng.Float64()*synthWaveJitterM
	}

	var periodS float64
	if obs.SwellPeriodS != nil {
		periodS = *obs.SwellPeriodS
	} else {
		periodS = synthBasePeriodS + waveM*synthPeriodPerWaveS + s.rng.Float64()*synthPeriodJitterS
	}

	var swellDeg float64
	if obs.SwellDirectionDeg != nil {
		swellDeg = *obs.SwellDirectionDeg
	} else {
		swellDeg = windDeg + (s.rng.Float64()*2-1)*synthSwellSpreadDeg
	}

	airC := defaultAirTempC
	if obs.AirTempC != nil {
		airC = *obs.AirTempC
	}

	return Reading{
		WindSpeedKmh:      windKmh,
		WindDirectionDeg:  windDeg,
		WaveHeightM:       waveM,
		SwellPeriodS:      periodS,
		SwellDirectionDeg: swellDeg,
		AirTempC:          airC,
		Source:            source,
	}
}

// Generate fabricates a Reading from nothing, for when every provider failed.
func (s *Synthesizer) Generate() Reading {
	return s.Complete(Observation{})
}
