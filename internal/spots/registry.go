// Package spots holds the static registry of Moroccan surf spots.
// The registry is compiled in and never mutated at runtime.
package spots

import (
	"errors"
	"math"
)

// ErrNotFound is returned when a spot identifier is not in the registry.
var ErrNotFound = errors.New("unknown surf spot")

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

type WaveType string

const (
	WaveBeachBreak WaveType = "beach break"
	WavePointBreak WaveType = "point break"
	WaveReefBreak  WaveType = "reef break"
)

type CrowdLevel string

const (
	CrowdLow    CrowdLevel = "low"
	CrowdMedium CrowdLevel = "medium"
	CrowdHigh   CrowdLevel = "high"
)

// Spot is a named surf location with fixed coordinates and descriptive metadata.
type Spot struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	NameKey       string     `json:"nameKey"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	HasLiveStream bool       `json:"hasLiveStream"`
	StreamURL     string     `json:"streamUrl,omitempty"`
	City          string     `json:"city"`
	Region        string     `json:"region"`
	Description   string     `json:"description"`
	BestSeasons   []string   `json:"bestSeasons"`
	SkillLevel    SkillLevel `json:"skillLevel"`
	WaveType      WaveType   `json:"waveType"`
	CrowdLevel    CrowdLevel `json:"crowdLevel"`
}

var registry = []Spot{
	{
		ID: "mehdia-beach", Name: "Mehdia Beach", NameKey: "mehdia_beach",
		Latitude: 34.2570, Longitude: -6.6810,
		HasLiveStream: true,
		StreamURL:     "https://player.castr.com/live_6c77f3a06bf711f0a9fddf5a54be1b73",
		City:          "Kenitra", Region: "Rabat-Salé-Kénitra",
		Description: "A beautiful beach break perfect for beginners and intermediate surfers.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillBeginner, WaveType: WaveBeachBreak, CrowdLevel: CrowdMedium,
	},
	{
		ID: "rabat-beach", Name: "Rabat Beach", NameKey: "rabat_beach",
		Latitude: 34.034961, Longitude: -6.837362,
		City:     "Rabat", Region: "Rabat-Salé-Kénitra",
		Description: "Capital city beach with consistent waves and easy access.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdHigh,
	},
	{
		ID: "mohammedia", Name: "Mohammedia", NameKey: "mohammedia",
		Latitude: 33.722732, Longitude: -7.348247,
		City:     "Mohammedia", Region: "Casablanca-Settat",
		Description: "Popular surf spot near Casablanca with good waves.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdMedium,
	},
	{
		ID: "dar-bouazza", Name: "Dar Bouazza", NameKey: "dar_bouazza",
		Latitude: 33.530570, Longitude: -7.832972,
		City:     "Casablanca", Region: "Casablanca-Settat",
		Description: "Casablanca area beach break with powerful waves.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdMedium,
	},
	{
		ID: "bouznika", Name: "Bouznika", NameKey: "bouznika",
		Latitude: 33.825611, Longitude: -7.150553,
		City:     "Bouznika", Region: "Casablanca-Settat",
		Description: "Scenic coastal town with reliable surf conditions.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillBeginner, WaveType: WaveBeachBreak, CrowdLevel: CrowdLow,
	},
	{
		ID: "plage-des-nations", Name: "Plage des Nations", NameKey: "plage_des_nations",
		Latitude: 34.150943, Longitude: -6.738099,
		City:     "Salé", Region: "Rabat-Salé-Kénitra",
		Description: "Popular beach near Rabat with consistent waves.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdHigh,
	},
	{
		ID: "larache", Name: "Larache", NameKey: "larache",
		Latitude: 35.205304, Longitude: -6.152181,
		City:     "Larache", Region: "Tanger-Tétouan-Al Hoceïma",
		Description: "Northern Morocco surf spot with Atlantic swells.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdLow,
	},
	{
		ID: "assilah", Name: "Assilah", NameKey: "assilah",
		Latitude: 35.475152, Longitude: -6.031830,
		City:     "Assilah", Region: "Tanger-Tétouan-Al Hoceïma",
		Description: "Historic coastal town with beautiful surf breaks.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdMedium,
	},
	{
		ID: "moulay-bouselham", Name: "Moulay Bouselham", NameKey: "moulay_bouselham",
		Latitude: 34.888412, Longitude: -6.295382,
		City:     "Moulay Bouselham", Region: "Rabat-Salé-Kénitra",
		Description: "Lagoon area with unique surf conditions and wildlife.",
		BestSeasons: []string{"Autumn", "Winter"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdLow,
	},
	{
		ID: "safi", Name: "Safi", NameKey: "safi",
		Latitude: 32.320099, Longitude: -9.259436,
		City:     "Safi", Region: "Marrakech-Safi",
		Description: "Southern coastal city with powerful waves.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillAdvanced, WaveType: WavePointBreak, CrowdLevel: CrowdMedium,
	},
	{
		ID: "imsouane", Name: "Imsouane", NameKey: "imsouane",
		Latitude: 30.839529, Longitude: -9.819274,
		City:     "Imsouane", Region: "Souss-Massa",
		Description: "Famous right-hand point break, paradise for longboarders.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillIntermediate, WaveType: WavePointBreak, CrowdLevel: CrowdHigh,
	},
	{
		ID: "taghazout", Name: "Taghazout", NameKey: "taghazout",
		Latitude: 30.544901, Longitude: -9.727011,
		City:     "Taghazout", Region: "Souss-Massa",
		Description: "World-famous surf village with multiple breaks.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillIntermediate, WaveType: WavePointBreak, CrowdLevel: CrowdHigh,
	},
	{
		ID: "anchor-point", Name: "Anchor Point", NameKey: "anchor_point",
		Latitude: 30.5325, Longitude: -9.7189,
		City:     "Taghazout", Region: "Souss-Massa",
		Description: "Morocco's most famous right-hand point break, long walls on a good swell.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillAdvanced, WaveType: WavePointBreak, CrowdLevel: CrowdHigh,
	},
	{
		ID: "sidi-ifni", Name: "Sidi Ifni", NameKey: "sidi_ifni",
		Latitude: 29.387104, Longitude: -10.174070,
		City:     "Sidi Ifni", Region: "Souss-Massa",
		Description: "Coastal town with consistent waves and dramatic cliffs.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdLow,
	},
	{
		ID: "tarfaya", Name: "Tarfaya", NameKey: "tarfaya",
		Latitude: 27.947872, Longitude: -12.928467,
		City:     "Tarfaya", Region: "Laâyoune-Sakia El Hamra",
		Description: "Remote southern spot with steady trade winds and empty lineups.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdLow,
	},
	{
		ID: "dakhla", Name: "Dakhla", NameKey: "dakhla",
		Latitude: 23.767069, Longitude: -15.925064,
		City:     "Dakhla", Region: "Dakhla-Oued Ed-Dahab",
		Description: "Desert peninsula with a world-class lagoon and ocean peaks.",
		BestSeasons: []string{"Autumn", "Winter", "Spring"},
		SkillLevel:  SkillIntermediate, WaveType: WaveBeachBreak, CrowdLevel: CrowdLow,
	},
}

var byID = func() map[string]Spot {
	m := make(map[string]Spot, len(registry))
	for _, s := range registry {
		m[s.ID] = s
	}
	return m
}()

// Resolve looks up a spot by identifier. It never panics; absent identifiers
// are reported through ErrNotFound.
func Resolve(id string) (Spot, error) {
	s, ok := byID[id]
	if !ok {
		return Spot{}, ErrNotFound
	}
	return s, nil
}

// All returns every registered spot in a stable north-to-south-ish order.
func All() []Spot {
	out := make([]Spot, len(registry))
	copy(out, registry)
	return out
}

const earthRadiusKm = 6371.0

// Nearest returns the registered spot closest to the given coordinates.
func Nearest(lat, lon float64) Spot {
	best := registry[0]
	bestDist := math.MaxFloat64
	for _, s := range registry {
		d := haversineKm(lat, lon, s.Latitude, s.Longitude)
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
