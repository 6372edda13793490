// Package server exposes the footprint estimator over HTTP and gRPC.
package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/rshade/carbonwise/internal/carbon"
	"github.com/rshade/carbonwise/internal/config"
	"github.com/rshade/carbonwise/internal/profile"
)

// Route paths.
const (
	PathHealth    = "/api/health"
	PathCalculate = "/api/calculate"
	PathMetrics   = "/metrics"
)

// Server serves footprint estimates.
type Server struct {
	cfg       config.Config
	estimator carbon.FootprintEstimator
	logger    zerolog.Logger // logger is immutable (copy-on-write)
	registry  *prometheus.Registry
	metrics   *Metrics
	testMode  bool // true when CARBONWISE_TEST_MODE=true
}

// New creates a Server. A nil estimator selects carbon.NewEstimator().
// Each Server owns its own Prometheus registry.
func New(cfg config.Config, estimator carbon.FootprintEstimator, logger zerolog.Logger) *Server {
	if estimator == nil {
		estimator = carbon.NewEstimator()
	}

	ValidateTestModeEnv(logger)
	testMode := IsTestMode()
	if testMode {
		logger.Info().Msg("Test mode enabled")
	}

	registry := prometheus.NewRegistry()

	return &Server{
		cfg:       cfg,
		estimator: estimator,
		logger:    logger,
		registry:  registry,
		metrics:   NewMetrics(registry),
		testMode:  testMode,
	}
}

// Handler returns the HTTP handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(PathHealth, s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(PathCalculate, s.handleCalculate).Methods(http.MethodPost)
	r.Handle(PathMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	var h http.Handler = r
	h = securityHeaders(h)
	h = newCORS(s.cfg.CORS).Handler(h)
	h = s.recoverer(h)
	h = hlog.AccessHandler(accessLog)(h)
	h = traceIDHandler(h)
	h = hlog.NewHandler(s.logger)(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{Status: "OK", Message: "CarbonWise API is running"})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusNotFound, errNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusMethodNotAllowed, errMethodNotAllowed, fmt.Sprintf("%s is not allowed on %s", r.Method, r.URL.Path))
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	input, err := profile.DecodeJSON(body)
	if err != nil {
		status, label, reason := http.StatusBadRequest, errInvalidPayload, reasonInvalidPayload
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status, label, reason = http.StatusRequestEntityTooLarge, errPayloadTooLarge, reasonTooLarge
		}
		s.metrics.ObserveFailure(transportHTTP, reason)
		logger.Warn().
			Str(fieldOperation, "Calculate").
			Err(err).
			Msg("profile rejected")
		writeFailure(w, status, label, err.Error())
		return
	}

	result, err := s.calculate(*logger, transportHTTP, input)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, errCalculationFailed, err.Error())
		return
	}

	writeSuccess(w, result)
}

// calculate runs the estimator with panic protection, logging and metrics.
// It is shared by the HTTP and gRPC transports; logger must already carry
// the request's trace ID.
func (s *Server) calculate(logger zerolog.Logger, transport string, in carbon.Input) (result carbon.Result, err error) {
	start := time.Now()

	if s.testMode {
		logger.Debug().
			Interface("input", in).
			Bool("energy_source_known", in.EnergySource.Known()).
			Bool("food_type_known", in.FoodType.Known()).
			Msg("Test mode: Calculate request details")
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("estimator panic: %v", rec)
			s.metrics.ObserveFailure(transport, reasonPanic)
			logger.Error().
				Str(fieldOperation, "Calculate").
				Str("transport", transport).
				Err(err).
				Msg("request failed")
		}
	}()

	result = s.estimator.Estimate(in)

	if err = checkFinite(result); err != nil {
		s.metrics.ObserveFailure(transport, reasonNonFinite)
		logger.Error().
			Str(fieldOperation, "Calculate").
			Str("transport", transport).
			Err(err).
			Msg("request failed")
		return carbon.Result{}, err
	}

	if s.testMode {
		b := result.Breakdown
		logger.Debug().
			Float64("travel_kg", b.Travel.Total).
			Float64("energy_kg", b.Energy.Total).
			Float64("waste_kg", b.Waste.NetEmissions).
			Float64("food_kg", b.Food.Emissions).
			Float64("energy_source_factor", carbon.EnergySourceFactor(in.EnergySource)).
			Float64("diet_multiplier", carbon.DietMultiplier(in.FoodType)).
			Msg("Test mode: Calculate breakdown")
	}

	s.metrics.ObserveEstimate(transport, result)

	logger.Info().
		Str(fieldOperation, "Calculate").
		Str("transport", transport).
		Float64("monthly_kg", result.MonthlyEmissions).
		Float64("yearly_kg", result.YearlyEmissions).
		Int("recommendation_count", len(result.Recommendations)).
		Int64(fieldDurationMs, time.Since(start).Milliseconds()).
		Msg("footprint calculated")

	return result, nil
}

// checkFinite reports totals that overflowed float64; they have no JSON
// encoding.
func checkFinite(r carbon.Result) error {
	for _, v := range []float64{r.MonthlyEmissions, r.YearlyEmissions} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("emissions not finite: monthly=%v yearly=%v", r.MonthlyEmissions, r.YearlyEmissions)
		}
	}
	return nil
}
