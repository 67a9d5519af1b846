package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Private registries mean multiple collectors can coexist, e.g. across
// parallel tests.
func TestNewCollectorIndependent(t *testing.T) {
	if _, err := NewCollector(); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCollector(); err != nil {
		t.Fatalf("second collector failed: %v", err)
	}
}

func TestSolveOutcomesExposed(t *testing.T) {
	c, err := NewCollector()
	if err != nil {
		t.Fatal(err)
	}
	c.ObserveSolve(OutcomeConverged)
	c.ObserveSolve(OutcomeVegaUnderflow)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Result().Body)
	if !strings.Contains(string(body), "optionpricer_solver_implied_vol_solves_total") {
		t.Fatalf("solver counter not exposed:\n%s", body)
	}
}

func TestInstrumentHandlerRecordsStatus(t *testing.T) {
	c, err := NewCollector()
	if err != nil {
		t.Fatal(err)
	}

	h := c.InstrumentHandler("/api/v1/price", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))

	rec = httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Result().Body)
	if !strings.Contains(string(body), `status="400"`) {
		t.Fatalf("request status not recorded:\n%s", body)
	}
}
