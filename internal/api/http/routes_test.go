package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/surfaumaroc/surfcast/internal/contact"
	"github.com/surfaumaroc/surfcast/internal/geo"
	"github.com/surfaumaroc/surfcast/internal/news"
	"github.com/surfaumaroc/surfcast/internal/spots"
	"github.com/surfaumaroc/surfcast/internal/store"
	"github.com/surfaumaroc/surfcast/internal/surf"
	"github.com/surfaumaroc/surfcast/internal/videos"
)

// newTestApp wires the routes with no providers and no external API keys, so
// every surf response comes from the synthetic path and geocoding is off.
func newTestApp() *fiber.App {
	client := &http.Client{Timeout: time.Second}
	surfSvc := surf.NewService(
		store.NewMemoryStore(10, time.Hour),
		nil,
		surf.NewSynthesizer(nil),
		time.Minute,
	)

	app := fiber.New()
	RegisterRoutes(app, Services{
		Surf:    surfSvc,
		News:    news.NewService(client, nil, time.Minute),
		Videos:  videos.NewService(client, ""),
		Contact: contact.NewService(store.NewSubmissionLog(), "", "sender@example.com", "receiver@example.com"),
		Geo:     geo.New(""),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func TestListSpots(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/v1/spots", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got []spots.Spot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding spots: %v", err)
	}
	if len(got) != 16 {
		t.Fatalf("listed %d spots, want 16", len(got))
	}
}

func TestGetSpot(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/v1/spots/taghazout", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("known spot status = %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/v1/spots/nowhere", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown spot status = %d, want 404", resp.StatusCode)
	}
}

// Conditions never error outward, even for unknown spots with no providers.
func TestConditionsAlwaysSucceed(t *testing.T) {
	app := newTestApp()

	for _, id := range []string{"taghazout", "nowhere"} {
		resp := doRequest(t, app, http.MethodGet, "/api/v1/spots/"+id+"/conditions?refresh=true", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("conditions for %s: status = %d", id, resp.StatusCode)
		}

		var cond surf.Condition
		if err := json.NewDecoder(resp.Body).Decode(&cond); err != nil {
			t.Fatalf("decoding condition for %s: %v", id, err)
		}
		if cond.SpotID != id {
			t.Fatalf("spot id = %s, want %s", cond.SpotID, id)
		}
		if cond.Rating == "" || cond.Forecast != surf.SourceFallback {
			t.Fatalf("malformed synthetic condition: %+v", cond)
		}
	}
}

func TestForecastDaysValidation(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/v1/spots/taghazout/forecast", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing days: status = %d, want 400", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/v1/spots/taghazout/forecast?days=8", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("days=8: status = %d, want 400", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/v1/spots/taghazout/forecast?days=3", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("days=3: status = %d", resp.StatusCode)
	}
	var days []surf.ForecastDay
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		t.Fatalf("decoding forecast: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("forecast has %d entries, want 3", len(days))
	}
}

func TestHistoryValidation(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/v1/spots/taghazout/history", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing range: status = %d, want 400", resp.StatusCode)
	}

	// to before from
	resp = doRequest(t, app, http.MethodGet,
		"/api/v1/spots/taghazout/history?from=2025-06-02T00:00:00Z&to=2025-06-01T00:00:00Z", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("inverted range: status = %d, want 400", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet,
		"/api/v1/spots/nowhere/history?from=2025-06-01T00:00:00Z&to=2025-06-02T00:00:00Z", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown spot history: status = %d, want 404", resp.StatusCode)
	}

	// Known spot, empty store.
	resp = doRequest(t, app, http.MethodGet,
		"/api/v1/spots/taghazout/history?from=2025-06-01T00:00:00Z&to=2025-06-02T00:00:00Z", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty history: status = %d, want 404", resp.StatusCode)
	}
}

func TestNearestSpot(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/v1/spots/nearest", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing address: status = %d, want 400", resp.StatusCode)
	}

	// No geocoder key configured.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/spots/nearest?address=Agadir", "")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("geocoding disabled: status = %d, want 503", resp.StatusCode)
	}
}

func TestVideosFallback(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, http.MethodGet, "/api/v1/videos", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var vids []videos.Video
	if err := json.NewDecoder(resp.Body).Decode(&vids); err != nil {
		t.Fatalf("decoding videos: %v", err)
	}
	if len(vids) != 5 {
		t.Fatalf("got %d videos, want 5", len(vids))
	}
	for _, v := range vids {
		if v.VideoID == "" || v.URL == "" {
			t.Fatalf("incomplete video entry: %+v", v)
		}
	}
}

func TestContactSubmission(t *testing.T) {
	app := newTestApp()

	resp := doRequest(t, app, http.MethodPost, "/api/v1/contact",
		`{"name":"A","email":"not-an-email","subject":"","message":"hi","inquiryType":"spam"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid submission: status = %d, want 400", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodPost, "/api/v1/contact",
		`{"name":"Yassine","email":"yassine@example.com","subject":"Sponsoring","message":"We would like to discuss a partnership.","inquiryType":"sponsoring"}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("valid submission: status = %d, want 202", resp.StatusCode)
	}

	var out struct {
		ID          string    `json:"id"`
		SubmittedAt time.Time `json:"submittedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.ID == "" || out.SubmittedAt.IsZero() {
		t.Fatalf("incomplete acceptance: %+v", out)
	}
}
