// Package sweep evaluates an option across a range of spot prices,
// producing the price and Greek curves that reporting tools consume.
//
// The pricing engine is scalar, so the sweep constructs a fresh call and
// put contract per grid point. That is the intended batch usage, not a
// workaround.
package sweep

import (
	"fmt"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Config describes the grid and the contract parameters held fixed while
// spot varies.
type Config struct {
	SpotMin    float64 `yaml:"spot_min"`
	SpotMax    float64 `yaml:"spot_max"`
	Points     int     `yaml:"points"`
	Strike     float64 `yaml:"strike"`
	Maturity   float64 `yaml:"maturity"`
	Rate       float64 `yaml:"rate"`
	Volatility float64 `yaml:"volatility"`
}

// Point is one evaluated grid point. Gamma and Vega are shared between the
// call and put legs, so they appear once.
type Point struct {
	Spot      float64 `json:"spot"`
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
	CallDelta float64 `json:"call_delta"`
	PutDelta  float64 `json:"put_delta"`
	Gamma     float64 `json:"gamma"`
	Vega      float64 `json:"vega"`
}

// Curve evaluates the configured grid and returns one Point per spot.
//
// At zero maturity the Greek columns are left at zero (prices collapse to
// intrinsic payoffs and the sensitivities are undefined).
func Curve(cfg Config) ([]Point, error) {
	if cfg.Points < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", cfg.Points)
	}
	if cfg.SpotMax <= cfg.SpotMin {
		return nil, fmt.Errorf("sweep range invalid: [%f, %f]", cfg.SpotMin, cfg.SpotMax)
	}

	logger.Infof("sweeping spot %.2f..%.2f over %d points (K=%.2f T=%.2f r=%.3f vol=%.3f)",
		cfg.SpotMin, cfg.SpotMax, cfg.Points, cfg.Strike, cfg.Maturity, cfg.Rate, cfg.Volatility)

	step := (cfg.SpotMax - cfg.SpotMin) / float64(cfg.Points-1)
	out := make([]Point, 0, cfg.Points)

	for i := 0; i < cfg.Points; i++ {
		spot := cfg.SpotMin + float64(i)*step

		call, err := pricing.New(spot, cfg.Strike, cfg.Maturity, cfg.Rate, cfg.Volatility, "call")
		if err != nil {
			return nil, fmt.Errorf("sweep point %d: %w", i, err)
		}
		put, err := pricing.New(spot, cfg.Strike, cfg.Maturity, cfg.Rate, cfg.Volatility, "put")
		if err != nil {
			return nil, fmt.Errorf("sweep point %d: %w", i, err)
		}

		pt := Point{
			Spot:      spot,
			CallPrice: call.Price(),
			PutPrice:  put.Price(),
		}

		if cfg.Maturity > 0 {
			// Errors are impossible here once maturity is positive.
			pt.CallDelta, _ = call.Delta()
			pt.PutDelta, _ = put.Delta()
			pt.Gamma, _ = call.Gamma()
			pt.Vega, _ = call.Vega()
		}

		out = append(out, pt)
		logger.Tracef("sweep point %d: spot=%.2f call=%.4f put=%.4f", i, spot, pt.CallPrice, pt.PutPrice)
	}

	return out, nil
}
