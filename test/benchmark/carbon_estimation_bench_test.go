// Package benchmark provides performance benchmarks for footprint
// estimation.
//
// Run with: go test ./test/benchmark/... -bench=. -benchmem
package benchmark

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/carbonwise/internal/carbon"
	"github.com/rshade/carbonwise/internal/config"
	"github.com/rshade/carbonwise/internal/profile"
	"github.com/rshade/carbonwise/internal/report"
	"github.com/rshade/carbonwise/internal/server"
)

const (
	// maxLatencyMs is the maximum acceptable latency for one estimate,
	// including HTTP decoding and encoding.
	maxLatencyMs = 100
)

const formBody = `{"carMiles":"1000","publicTransportHours":"4","flightHours":"2","electricityUsage":"300",
"energySource":"natural-gas","energyEfficient":true,"wasteKg":"20","recyclePercentage":"35",
"foodType":"omnivore","foodSpending":"400"}`

func sampleInput() carbon.Input {
	return carbon.Input{
		CarMiles:             1000,
		PublicTransportHours: 4,
		FlightHours:          2,
		ElectricityUsage:     300,
		EnergySource:         carbon.EnergySourceNaturalGas,
		EnergyEfficient:      true,
		WasteKg:              20,
		RecyclePercentage:    35,
		FoodType:             carbon.DietOmnivore,
		FoodSpending:         400,
	}
}

// BenchmarkEstimate measures the pure estimator.
func BenchmarkEstimate(b *testing.B) {
	estimator := carbon.NewEstimator()
	in := sampleInput()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		estimator.Estimate(in)
	}
}

// BenchmarkEstimate_Parallel measures the estimator under contention.
func BenchmarkEstimate_Parallel(b *testing.B) {
	estimator := carbon.NewEstimator()
	in := sampleInput()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			estimator.Estimate(in)
		}
	})
}

// BenchmarkDecodeJSON measures boundary decoding of a form submission.
func BenchmarkDecodeJSON(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := profile.DecodeJSON(strings.NewReader(formBody)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCalculateHandler measures a full POST /api/calculate through
// the middleware chain.
func BenchmarkCalculateHandler(b *testing.B) {
	h := server.New(config.Default(), nil, zerolog.Nop()).Handler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, server.PathCalculate, strings.NewReader(formBody))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("status %d", w.Code)
		}
	}
}

// BenchmarkRenderText measures the plain text report.
func BenchmarkRenderText(b *testing.B) {
	res := carbon.Estimate(sampleInput())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := report.RenderText(io.Discard, res); err != nil {
			b.Fatal(err)
		}
	}
}

// TestLatencyRequirement_Estimate checks a single estimate stays under the
// latency budget.
func TestLatencyRequirement_Estimate(t *testing.T) {
	estimator := carbon.NewEstimator()

	start := time.Now()
	estimator.Estimate(sampleInput())
	elapsed := time.Since(start)

	if elapsed.Milliseconds() > maxLatencyMs {
		t.Errorf("estimate took %v, exceeds %dms limit", elapsed, maxLatencyMs)
	}
}

// TestLatencyRequirement_Handler checks a full HTTP round trip through the
// handler stays under the latency budget.
func TestLatencyRequirement_Handler(t *testing.T) {
	h := server.New(config.Default(), nil, zerolog.Nop()).Handler()
	req := httptest.NewRequest(http.MethodPost, server.PathCalculate, strings.NewReader(formBody))
	w := httptest.NewRecorder()

	start := time.Now()
	h.ServeHTTP(w, req)
	elapsed := time.Since(start)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if elapsed.Milliseconds() > maxLatencyMs {
		t.Errorf("calculate handler took %v, exceeds %dms limit", elapsed, maxLatencyMs)
	}
}
