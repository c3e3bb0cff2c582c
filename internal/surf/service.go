package surf

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/surfaumaroc/surfcast/internal/spots"
)

// fallbackSpotID is substituted when a requested spot is not in the registry.
// Callers still get a well-formed condition rather than an empty state.
const fallbackSpotID = "taghazout"

// Service orchestrates the derivation pipeline: resolve the spot, gather
// provider observations, synthesize what is missing, normalize, and cache the
// result. Fetch failures are absorbed here; Current never fails because of a
// provider.
type Service struct {
	store     Store
	providers []Provider
	synth     *Synthesizer
	maxAge    time.Duration
}

// NewService creates a Service. maxAge bounds how old a cached snapshot may be
// before Current refreshes it.
func NewService(store Store, providers []Provider, synth *Synthesizer, maxAge time.Duration) *Service {
	if synth == nil {
		synth = NewSynthesizer(nil)
	}
	return &Service{
		store:     store,
		providers: providers,
		synth:     synth,
		maxAge:    maxAge,
	}
}

// Current returns the current condition for a spot. Unknown identifiers fall
// back to the default spot's data with the requested identifier echoed back.
// Setting refresh bypasses the snapshot cache.
func (s *Service) Current(ctx context.Context, spotID string, refresh bool) Condition {
	spot, err := spots.Resolve(spotID)
	if err != nil {
		log.Printf("surf: unknown spot %q, falling back to %s", spotID, fallbackSpotID)
		spot, _ = spots.Resolve(fallbackSpotID)
	}

	if !refresh {
		if cached, err := s.store.Latest(spot.ID); err == nil {
			if s.maxAge <= 0 || time.Since(cached.Timestamp) <= s.maxAge {
				cached.SpotID = spotID
				return cached
			}
		}
	}

	cond := s.derive(ctx, spot)
	s.store.SaveCondition(spot.ID, cond)
	cond.SpotID = spotID
	return cond
}

// RefreshAll derives and stores fresh conditions for every registered spot.
// Spots are refreshed concurrently; a failing provider only degrades that
// spot's reading to synthetic data.
func (s *Service) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, spot := range spots.All() {
		spot := spot
		wg.Add(1)
		go func() {
			defer wg.Done()
			cond := s.derive(ctx, spot)
			s.store.SaveCondition(spot.ID, cond)
		}()
	}
	wg.Wait()
}

// History returns stored snapshots for a spot between from and to.
func (s *Service) History(spotID string, from, to time.Time) ([]Condition, error) {
	spot, err := spots.Resolve(spotID)
	if err != nil {
		return nil, err
	}
	return s.store.Range(spot.ID, from, to)
}

func (s *Service) derive(ctx context.Context, spot spots.Spot) Condition {
	coords := Coordinates{Latitude: spot.Latitude, Longitude: spot.Longitude}
	obs := s.observe(ctx, coords)
	reading := s.synth.Complete(obs)
	return Normalize(spot.ID, reading, time.Now())
}

// observe fans out to all providers concurrently and merges their partial
// observations, earlier-configured providers winning per field. Provider
// errors are logged and treated as an empty observation.
func (s *Service) observe(ctx context.Context, coords Coordinates) Observation {
	results := make([]Observation, len(s.providers))
	ok := make([]bool, len(s.providers))

	var wg sync.WaitGroup
	for i, p := range s.providers {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs, err := p.Fetch(ctx, coords)
			if err != nil {
				log.Printf("surf: provider %s fetch failed: %v", p.Name(), err)
				return
			}
			results[i] = obs
			ok[i] = true
		}()
	}
	wg.Wait()

	var merged Observation
	for i := range results {
		if !ok[i] {
			continue
		}
		mergeObservation(&merged, results[i])
	}
	return merged
}

func mergeObservation(dst *Observation, src Observation) {
	if dst.WindSpeedKmh == nil {
		dst.WindSpeedKmh = src.WindSpeedKmh
	}
	if dst.WindDirectionDeg == nil {
		dst.WindDirectionDeg = src.WindDirectionDeg
	}
	if dst.AirTempC == nil {
		dst.AirTempC = src.AirTempC
	}
	if dst.WaveHeightM == nil {
		dst.WaveHeightM = src.WaveHeightM
	}
	if dst.SwellPeriodS == nil {
		dst.SwellPeriodS = src.SwellPeriodS
	}
	if dst.SwellDirectionDeg == nil {
		dst.SwellDirectionDeg = src.SwellDirectionDeg
	}
}
