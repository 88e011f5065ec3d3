package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	m := New("dream_eleven")
	m.ResolutionsTotal.WithLabelValues(OutcomeResolved).Inc()
	m.CacheHitsTotal.Inc()
	m.RecommendationDuration.Observe(0.42)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	out := string(body)
	for _, want := range []string{
		"dream_eleven_player_resolutions_total",
		"dream_eleven_stats_cache_hits_total",
		"dream_eleven_recommendation_duration_seconds",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("scrape output missing %s:\n%s", want, out)
		}
	}
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	a := New("dream_eleven")
	b := New("dream_eleven")
	a.CacheMissesTotal.Inc()
	b.CacheMissesTotal.Inc()
}
