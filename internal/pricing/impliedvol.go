package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// Solver defaults. Exposed so callers and config layers share one source
// of truth with ImpliedVolatilityWithin.
const (
	DefaultTolerance = 1e-5
	DefaultMaxIter   = 100

	// ivSeed is the fixed initial volatility estimate. Deliberately not
	// derived from the target price.
	ivSeed = 0.5

	// vegaFloor is the smallest |vega| Newton-Raphson can make progress
	// against. Below it the step diff/vega blows up, typically for deep
	// in/out-of-the-money contracts.
	vegaFloor = 1e-8

	// Guardrails on the working estimate. Without the lower bound a
	// below-intrinsic target walks sigma negative and Newton converges on
	// a spurious negative root instead of failing.
	sigmaMin = 1e-4
	sigmaMax = 5.0
)

// Convergence failures returned by the implied-volatility solver. Wrapped
// with iteration context; match with errors.Is.
var (
	ErrVegaUnderflow = errors.New("vega underflow")
	ErrMaxIterations = errors.New("max iterations exceeded")
)

// ImpliedVolatility recovers the volatility that reproduces target under
// the contract's other parameters, using the default tolerance and
// iteration budget.
func (o *Option) ImpliedVolatility(target float64) (float64, error) {
	return o.ImpliedVolatilityWithin(target, DefaultTolerance, DefaultMaxIter)
}

// ImpliedVolatilityWithin runs Newton-Raphson on the price/vega pair until
// the model price is within tol of target or maxIter iterations have run.
//
// The iteration works on a local copy of the contract; the receiver is
// never modified, whatever the outcome. Callers that want the recovered
// volatility applied assign it themselves.
//
// Failure modes, distinguishable with errors.Is:
//   - ErrVegaUnderflow: |vega| fell below 1e-8, so the Newton step cannot
//     make progress (deep ITM/OTM targets, or targets outside the
//     no-arbitrage bounds that push the estimate into a flat region).
//   - ErrMaxIterations: the iteration budget ran out before converging.
func (o *Option) ImpliedVolatilityWithin(target, tol float64, maxIter int) (float64, error) {
	sigma := ivSeed
	work := *o

	for i := 0; i < maxIter; i++ {
		work.Volatility = sigma

		price := work.Price()
		diff := target - price

		if math.Abs(diff) < tol {
			logger.Debugf("implied vol converged: sigma=%.6f after %d iterations", sigma, i)
			return sigma, nil
		}

		vega, err := work.Vega()
		if err != nil || math.Abs(vega) < vegaFloor {
			return 0, fmt.Errorf("%w: sigma=%f after %d iterations (target %f, model %f)",
				ErrVegaUnderflow, sigma, i, target, price)
		}

		sigma += diff / vega

		if sigma < sigmaMin {
			sigma = sigmaMin
		}
		if sigma > sigmaMax {
			sigma = sigmaMax
		}
	}

	return 0, fmt.Errorf("%w: %d iterations, last sigma=%f (target %f)",
		ErrMaxIterations, maxIter, sigma, target)
}
