package surf

import (
	"math/rand"
	"testing"
)

func seeded(seed int64) *Synthesizer {
	return NewSynthesizer(rand.New(rand.NewSource(seed)))
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := seeded(42).Generate()
	b := seeded(42).Generate()
	if a != b {
		t.Fatalf("same seed produced different readings:\n%+v\n%+v", a, b)
	}
}

func TestGenerateStaysInBounds(t *testing.T) {
	s := seeded(7)
	for i := 0; i < 1000; i++ {
		r := s.Generate()

		if r.WindSpeedKmh < 0 || r.WindSpeedKmh >= synthMaxWindKmh {
			t.Fatalf("wind %.2f outside [0, %.0f)", r.WindSpeedKmh, synthMaxWindKmh)
		}
		// base is 0.5-2.5 depending on wind, jitter adds up to 0.8
		if r.WaveHeightM < synthBaseWaveM || r.WaveHeightM >= synthBaseWaveM+synthWindWaveGainM+synthWaveJitterM {
			t.Fatalf("wave %.2f outside plausible range", r.WaveHeightM)
		}
		if r.SwellPeriodS < synthBasePeriodS {
			t.Fatalf("period %.2f below base", r.SwellPeriodS)
		}
		if r.Source != SourceFallback {
			t.Fatalf("fully synthetic reading tagged %s", r.Source)
		}
	}
}

func TestCompleteKeepsMeasuredFields(t *testing.T) {
	wind := 12.0
	dir := 200.0
	temp := 19.5

	r := seeded(1).Complete(Observation{
		WindSpeedKmh:     &wind,
		WindDirectionDeg: &dir,
		AirTempC:         &temp,
	})

	if r.WindSpeedKmh != wind || r.WindDirectionDeg != dir || r.AirTempC != temp {
		t.Fatalf("measured fields were not preserved: %+v", r)
	}
	if r.Source != SourceOpenMeteo {
		t.Fatalf("reading with measured wind tagged %s", r.Source)
	}

	// Missing wave data must be derived from the measured wind:
	// windFactor 0.4 → base 1.3m, plus at most 0.8m jitter.
	if r.WaveHeightM < 1.3 || r.WaveHeightM >= 2.1 {
		t.Fatalf("derived wave %.2f inconsistent with wind %.0f km/h", r.WaveHeightM, wind)
	}

	// Synthesized swell stays within the spread of the measured wind direction.
	if r.SwellDirectionDeg < dir-synthSwellSpreadDeg || r.SwellDirectionDeg > dir+synthSwellSpreadDeg {
		t.Fatalf("swell direction %.1f outside wind spread", r.SwellDirectionDeg)
	}
}

func TestCompleteWithoutWindIsFallback(t *testing.T) {
	wave := 1.7
	r := seeded(3).Complete(Observation{WaveHeightM: &wave})

	if r.WaveHeightM != wave {
		t.Fatalf("measured wave not preserved: %.2f", r.WaveHeightM)
	}
	if r.Source != SourceFallback {
		t.Fatalf("reading without measured wind tagged %s", r.Source)
	}
}
