package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/surfaumaroc/surfcast/internal/surf"
)

func TestOpenMeteoFetchConvertsWindSpeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("wind_speed_unit"); got != "ms" {
			t.Errorf("wind_speed_unit = %q, want ms", got)
		}
		fmt.Fprint(w, `{"current":{"temperature_2m":21.5,"wind_speed_10m":5.0,"wind_direction_10m":310}}`)
	}))
	defer srv.Close()

	p := NewOpenMeteo(srv.Client(), srv.URL)
	obs, err := p.Fetch(context.Background(), surf.Coordinates{Latitude: 30.54, Longitude: -9.73})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if obs.WindSpeedKmh == nil || *obs.WindSpeedKmh != 18.0 {
		t.Fatalf("wind speed not converted to km/h: %+v", obs.WindSpeedKmh)
	}
	if obs.WindDirectionDeg == nil || *obs.WindDirectionDeg != 310 {
		t.Fatalf("wind direction lost: %+v", obs.WindDirectionDeg)
	}
	if obs.AirTempC == nil || *obs.AirTempC != 21.5 {
		t.Fatalf("temperature lost: %+v", obs.AirTempC)
	}
	if obs.WaveHeightM != nil {
		t.Fatal("weather provider must not report wave height")
	}
}

func TestOpenMeteoFetchPartialPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current":{"temperature_2m":19.0}}`)
	}))
	defer srv.Close()

	p := NewOpenMeteo(srv.Client(), srv.URL)
	obs, err := p.Fetch(context.Background(), surf.Coordinates{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if obs.WindSpeedKmh != nil {
		t.Fatal("missing wind speed must stay nil")
	}
	if obs.AirTempC == nil || *obs.AirTempC != 19.0 {
		t.Fatalf("temperature lost: %+v", obs.AirTempC)
	}
}

func TestOpenMeteoFetchDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"daily":{
			"time":["2025-06-15","2025-06-16"],
			"wind_speed_10m_max":[5.0,null],
			"wind_direction_10m_dominant":[270,180]
		}}`)
	}))
	defer srv.Close()

	p := NewOpenMeteo(srv.Client(), srv.URL)
	days, err := p.FetchDaily(context.Background(), surf.Coordinates{}, 2)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].WindSpeedMaxKmh == nil || *days[0].WindSpeedMaxKmh != 18.0 {
		t.Fatalf("day 0 wind not converted: %+v", days[0].WindSpeedMaxKmh)
	}
	if days[1].WindSpeedMaxKmh != nil {
		t.Fatal("null wind speed must stay nil")
	}
	if days[1].WindDirectionDeg == nil || *days[1].WindDirectionDeg != 180 {
		t.Fatalf("day 1 direction lost: %+v", days[1].WindDirectionDeg)
	}
}

// Swell fields fall back to total wave fields when absent, and vice versa.
func TestMarineFetchFieldFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current":{"wave_height":1.4,"wave_period":9.0,"swell_wave_direction":300}}`)
	}))
	defer srv.Close()

	p := NewMarine(srv.Client(), srv.URL)
	obs, err := p.Fetch(context.Background(), surf.Coordinates{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if obs.WaveHeightM == nil || *obs.WaveHeightM != 1.4 {
		t.Fatalf("wave height lost: %+v", obs.WaveHeightM)
	}
	// No swell period in the payload: the wave period stands in.
	if obs.SwellPeriodS == nil || *obs.SwellPeriodS != 9.0 {
		t.Fatalf("period fallback failed: %+v", obs.SwellPeriodS)
	}
	if obs.WindSpeedKmh != nil {
		t.Fatal("marine provider must not report wind")
	}
}

func TestMarineFetchDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"daily":{
			"time":["2025-06-15","not-a-date","2025-06-17"],
			"wave_height_max":[1.2,1.5,null],
			"swell_wave_height_max":[1.0,1.1,0.9],
			"swell_wave_period_max":[11.0,null,8.0],
			"wave_period_max":[9.0,7.0,6.0],
			"swell_wave_direction_dominant":[290,300,310]
		}}`)
	}))
	defer srv.Close()

	p := NewMarine(srv.Client(), srv.URL)
	days, err := p.FetchDaily(context.Background(), surf.Coordinates{}, 3)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}

	// The unparseable date is dropped, not fatal.
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].SwellPeriodMaxS == nil || *days[0].SwellPeriodMaxS != 11.0 {
		t.Fatalf("day 0 period lost: %+v", days[0].SwellPeriodMaxS)
	}
	if days[1].WaveHeightMaxM != nil {
		t.Fatal("null wave height must stay nil")
	}
	if days[1].SwellHeightMaxM == nil || *days[1].SwellHeightMaxM != 0.9 {
		t.Fatalf("day 1 swell height lost: %+v", days[1].SwellHeightMaxM)
	}
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "try later", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	res := newResilient(srv.Client(), "test")
	var out struct {
		OK bool `json:"ok"`
	}
	if err := res.getJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("getJSON after retries: %v", err)
	}
	if !out.OK {
		t.Fatal("payload not decoded")
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("server hit %d times, want 3", got)
	}
}

func TestGetJSONGivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := newResilient(srv.Client(), "test")
	var out map[string]any
	if err := res.getJSON(context.Background(), srv.URL, &out); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := hits.Load(); got != maxRetries+1 {
		t.Fatalf("server hit %d times, want %d", got, maxRetries+1)
	}
}

func TestGetJSONHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newResilient(srv.Client(), "test")
	var out map[string]any
	if err := res.getJSON(ctx, srv.URL, &out); err == nil {
		t.Fatal("expected context error")
	}
}
