// Package server exposes the pricing engine over HTTP. Endpoints:
//
//	GET /api/v1/price        price and Greeks for one contract
//	GET /api/v1/implied-vol  implied volatility for a target price
//	GET /health              liveness probe
//	GET /metrics             Prometheus metrics
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/metrics"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Server wires the pricing handlers, solver settings, and metrics.
type Server struct {
	solver    config.SolverConfig
	collector *metrics.Collector
}

// New builds a Server using the given solver settings.
func New(solver config.SolverConfig, collector *metrics.Collector) *Server {
	return &Server{solver: solver, collector: collector}
}

// Router returns the configured HTTP router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/api/v1/price",
		s.collector.InstrumentHandler("/api/v1/price", s.withRequestID(s.handlePrice))).Methods(http.MethodGet)
	r.Handle("/api/v1/implied-vol",
		s.collector.InstrumentHandler("/api/v1/implied-vol", s.withRequestID(s.handleImpliedVol))).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", s.collector.Handler()).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	logger.Infof("pricing API listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

// withRequestID tags each request with a uuid, echoed in X-Request-ID and
// attached to log lines.
func (s *Server) withRequestID(h func(http.ResponseWriter, *http.Request, string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		logger.Debugf("request %s: %s %s", id, r.Method, r.URL.RequestURI())
		h(w, r, id)
	})
}

type priceResponse struct {
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Maturity   float64 `json:"maturity"`
	Rate       float64 `json:"rate"`
	Volatility float64 `json:"volatility"`
	Kind       string  `json:"kind"`

	Price float64 `json:"price"`

	// Omitted at zero maturity, where d1/d2 are infinite and the Greeks
	// are undefined.
	D1    *float64 `json:"d1,omitempty"`
	D2    *float64 `json:"d2,omitempty"`
	Delta *float64 `json:"delta,omitempty"`
	Gamma *float64 `json:"gamma,omitempty"`
	Vega  *float64 `json:"vega,omitempty"`
	Theta *float64 `json:"theta,omitempty"`
	Rho   *float64 `json:"rho,omitempty"`
}

type impliedVolResponse struct {
	ImpliedVol float64 `json:"implied_vol"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request, reqID string) {
	opt, ok := s.optionFromQuery(w, r, reqID, true)
	if !ok {
		return
	}

	resp := priceResponse{
		Spot:       opt.Spot,
		Strike:     opt.Strike,
		Maturity:   opt.Maturity,
		Rate:       opt.Rate,
		Volatility: opt.Volatility,
		Kind:       string(opt.Kind),
		Price:      opt.Price(),
	}

	if opt.Maturity > 0 {
		d1, d2 := opt.D1(), opt.D2()
		delta, _ := opt.Delta()
		gamma, _ := opt.Gamma()
		vega, _ := opt.Vega()
		theta, _ := opt.Theta()
		rho, _ := opt.Rho()
		resp.D1, resp.D2 = &d1, &d2
		resp.Delta, resp.Gamma, resp.Vega, resp.Theta, resp.Rho = &delta, &gamma, &vega, &theta, &rho
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleImpliedVol(w http.ResponseWriter, r *http.Request, reqID string) {
	opt, ok := s.optionFromQuery(w, r, reqID, false)
	if !ok {
		return
	}

	target, err := queryFloat(r, "target")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tol := s.solver.Tolerance
	maxIter := s.solver.MaxIterations
	if v := r.URL.Query().Get("tol"); v != "" {
		if tol, err = strconv.ParseFloat(v, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tol"})
			return
		}
	}
	if v := r.URL.Query().Get("max_iter"); v != "" {
		if maxIter, err = strconv.Atoi(v); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid max_iter"})
			return
		}
	}

	vol, err := opt.ImpliedVolatilityWithin(target, tol, maxIter)
	if err != nil {
		reason := metrics.OutcomeMaxIterations
		if errors.Is(err, pricing.ErrVegaUnderflow) {
			reason = metrics.OutcomeVegaUnderflow
		}
		s.collector.ObserveSolve(reason)
		logger.Infof("request %s: implied vol failed: %v", reqID, err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Reason: reason})
		return
	}

	s.collector.ObserveSolve(metrics.OutcomeConverged)
	writeJSON(w, http.StatusOK, impliedVolResponse{ImpliedVol: vol})
}

// optionFromQuery parses the shared contract parameters. The vol parameter
// is only required for pricing; the implied-vol endpoint solves for it.
func (s *Server) optionFromQuery(w http.ResponseWriter, r *http.Request, reqID string, needVol bool) (*pricing.Option, bool) {
	var vals [5]float64
	names := []string{"spot", "strike", "maturity", "rate"}
	if needVol {
		names = append(names, "vol")
	}
	for i, name := range names {
		f, err := queryFloat(r, name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return nil, false
		}
		vals[i] = f
	}

	opt, err := pricing.New(vals[0], vals[1], vals[2], vals[3], vals[4], r.URL.Query().Get("kind"))
	if err != nil {
		logger.Infof("request %s: rejected: %v", reqID, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return opt, true
}

func queryFloat(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, errors.New("missing parameter " + name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New("invalid parameter " + name)
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
