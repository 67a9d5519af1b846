// Package pricing implements the Black-Scholes-Merton model for European
// vanilla options: theoretical price, the five analytic Greeks, and a
// Newton-Raphson implied-volatility solver.
//
// The unit of work is a single validated Option contract. Evaluation is
// scalar by design: sweeping a parameter (e.g. spot) means constructing a
// fresh contract per point. See the sweep package for that usage.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind identifies the option side.
type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// Validation errors returned by New. Wrapped with context; match with errors.Is.
var (
	ErrInvalidKind   = errors.New("invalid option kind")
	ErrNegativeParam = errors.New("invalid non-negative parameter")
)

// ErrZeroMaturity is returned by the Greek methods when the contract has
// expired (maturity zero). Price remains defined at expiry (intrinsic
// payoff), but the sensitivities are not.
var ErrZeroMaturity = errors.New("greek undefined at zero maturity")

// Option is a European vanilla option contract plus the market inputs
// needed to value it under Black-Scholes-Merton.
//
// All evaluation methods, the implied-volatility solver included, are pure
// reads of the struct, so a single Option may be queried repeatedly and
// from multiple goroutines. Spot and Strike are assumed positive; the
// model produces NaNs otherwise.
type Option struct {
	Spot       float64 // current underlying price
	Strike     float64 // exercise price
	Maturity   float64 // time to expiry in years, >= 0
	Rate       float64 // continuously-compounded risk-free rate
	Volatility float64 // annualized volatility, >= 0
	Kind       Kind
}

// New validates the inputs and builds an Option.
//
// kind is case-insensitive; an empty string defaults to call. Construction
// fails with ErrInvalidKind for any other value, and with ErrNegativeParam
// when volatility or maturity is negative.
func New(spot, strike, maturity, rate, volatility float64, kind string) (*Option, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))
	if k == "" {
		k = Call
	}
	if k != Call && k != Put {
		return nil, fmt.Errorf("%w: %q (want call or put)", ErrInvalidKind, kind)
	}
	if volatility < 0 {
		return nil, fmt.Errorf("%w: volatility %f", ErrNegativeParam, volatility)
	}
	if maturity < 0 {
		return nil, fmt.Errorf("%w: maturity %f", ErrNegativeParam, maturity)
	}

	return &Option{
		Spot:       spot,
		Strike:     strike,
		Maturity:   maturity,
		Rate:       rate,
		Volatility: volatility,
		Kind:       k,
	}, nil
}

// D1 returns the first standardized distance term of the Black-Scholes
// formula.
//
// At zero maturity the direct ratio is undefined; D1 follows the
// deep-in/out-of-the-money limit instead: +Inf when spot > strike,
// -Inf otherwise.
func (o *Option) D1() float64 {
	if o.Maturity == 0 {
		if o.Spot > o.Strike {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return (math.Log(o.Spot/o.Strike) + (o.Rate+0.5*o.Volatility*o.Volatility)*o.Maturity) /
		(o.Volatility * math.Sqrt(o.Maturity))
}

// D2 returns d1 - sigma*sqrt(T). At zero maturity it inherits D1's
// infinite-limit convention.
func (o *Option) D2() float64 {
	return o.D1() - o.Volatility*math.Sqrt(o.Maturity)
}

// Price returns the theoretical Black-Scholes price.
//
// At zero maturity it returns the intrinsic payoff directly, without
// touching d1/d2. The result is non-negative for valid inputs.
func (o *Option) Price() float64 {
	if o.Maturity == 0 {
		if o.Kind == Call {
			return math.Max(o.Spot-o.Strike, 0)
		}
		return math.Max(o.Strike-o.Spot, 0)
	}

	d1 := o.D1()
	d2 := o.D2()
	discount := math.Exp(-o.Rate * o.Maturity)

	if o.Kind == Call {
		return o.Spot*normCDF(d1) - o.Strike*discount*normCDF(d2)
	}
	return o.Strike*discount*normCDF(-d2) - o.Spot*normCDF(-d1)
}

// Delta is the sensitivity of the price to the underlying: Phi(d1) for a
// call, Phi(d1)-1 for a put. Bounded in [0,1] and [-1,0] respectively.
func (o *Option) Delta() (float64, error) {
	if o.Maturity == 0 {
		return 0, ErrZeroMaturity
	}
	d1 := o.D1()
	if o.Kind == Call {
		return normCDF(d1), nil
	}
	return normCDF(d1) - 1, nil
}

// Gamma is the second derivative of price with respect to the underlying.
// Identical for calls and puts.
func (o *Option) Gamma() (float64, error) {
	if o.Maturity == 0 {
		return 0, ErrZeroMaturity
	}
	return normPDF(o.D1()) / (o.Spot * o.Volatility * math.Sqrt(o.Maturity)), nil
}

// Vega is the sensitivity of the price to volatility, per unit of vol
// (not per 1%). Identical for calls and puts.
func (o *Option) Vega() (float64, error) {
	if o.Maturity == 0 {
		return 0, ErrZeroMaturity
	}
	return o.Spot * math.Sqrt(o.Maturity) * normPDF(o.D1()), nil
}

// Theta is the time decay, expressed per year. Divide by 365 for a
// per-day figure.
func (o *Option) Theta() (float64, error) {
	if o.Maturity == 0 {
		return 0, ErrZeroMaturity
	}
	d1 := o.D1()
	d2 := o.D2()
	decay := -(o.Spot * normPDF(d1) * o.Volatility) / (2 * math.Sqrt(o.Maturity))
	carry := o.Rate * o.Strike * math.Exp(-o.Rate*o.Maturity)

	if o.Kind == Call {
		return decay - carry*normCDF(d2), nil
	}
	return decay + carry*normCDF(-d2), nil
}

// Rho is the sensitivity of the price to the risk-free rate.
func (o *Option) Rho() (float64, error) {
	if o.Maturity == 0 {
		return 0, ErrZeroMaturity
	}
	d2 := o.D2()
	kt := o.Strike * o.Maturity * math.Exp(-o.Rate*o.Maturity)
	if o.Kind == Call {
		return kt * normCDF(d2), nil
	}
	return -kt * normCDF(-d2), nil
}
