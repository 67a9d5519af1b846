package pricing

import (
	"errors"
	"math"
	"testing"
)

// Round trip: price a contract with a known vol, then recover that vol
// from the price alone.
func TestImpliedVolRoundTrip(t *testing.T) {
	trueVol := 0.30
	priced, err := New(100, 100, 1, 0.05, trueVol, "call")
	if err != nil {
		t.Fatal(err)
	}
	marketPrice := priced.Price()

	// Fresh solver contract seeded with a wrong vol.
	solver, err := New(100, 100, 1, 0.05, 0.5, "call")
	if err != nil {
		t.Fatal(err)
	}
	got, err := solver.ImpliedVolatility(marketPrice)
	if err != nil {
		t.Fatalf("solver failed: %v", err)
	}
	if math.Abs(got-trueVol) > 1e-4 {
		t.Fatalf("recovered vol = %f, want %f within 1e-4", got, trueVol)
	}
}

func TestImpliedVolRoundTripPut(t *testing.T) {
	trueVol := 0.45
	priced, err := New(90, 100, 0.5, 0.02, trueVol, "put")
	if err != nil {
		t.Fatal(err)
	}
	solver, err := New(90, 100, 0.5, 0.02, 0, "put")
	if err != nil {
		t.Fatal(err)
	}
	got, err := solver.ImpliedVolatility(priced.Price())
	if err != nil {
		t.Fatalf("solver failed: %v", err)
	}
	if math.Abs(got-trueVol) > 1e-4 {
		t.Fatalf("recovered vol = %f, want %f within 1e-4", got, trueVol)
	}
}

// The solver must not touch the receiver's state, converged or not.
func TestImpliedVolDoesNotMutate(t *testing.T) {
	opt, err := New(100, 100, 1, 0.05, 0.2, "call")
	if err != nil {
		t.Fatal(err)
	}
	target := opt.Price()

	if _, err := opt.ImpliedVolatility(target + 3); err != nil {
		t.Fatalf("solver failed: %v", err)
	}
	if opt.Volatility != 0.2 {
		t.Fatalf("solver mutated volatility: %f", opt.Volatility)
	}

	_, _ = opt.ImpliedVolatility(-5) // failure path
	if opt.Volatility != 0.2 {
		t.Fatalf("failed solve mutated volatility: %f", opt.Volatility)
	}
}

// Targets outside the no-arbitrage bounds must fail, not return a number.
func TestImpliedVolUnattainableTargets(t *testing.T) {
	opt, err := New(100, 100, 1, 0.05, 0.2, "call")
	if err != nil {
		t.Fatal(err)
	}

	for _, target := range []float64{-5, 150} {
		got, err := opt.ImpliedVolatility(target)
		if err == nil {
			t.Fatalf("target %f: expected failure, got vol %f", target, got)
		}
		if !errors.Is(err, ErrVegaUnderflow) && !errors.Is(err, ErrMaxIterations) {
			t.Fatalf("target %f: unexpected error kind: %v", target, err)
		}
	}
}

func TestImpliedVolMaxIterations(t *testing.T) {
	opt, err := New(100, 100, 1, 0.05, 0.2, "call")
	if err != nil {
		t.Fatal(err)
	}
	target := opt.Price() + 2

	// Zero budget exhausts immediately.
	_, err = opt.ImpliedVolatilityWithin(target, 1e-12, 0)
	if !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("expected ErrMaxIterations, got %v", err)
	}
	if errors.Is(err, ErrVegaUnderflow) {
		t.Fatalf("failure modes not distinct: %v", err)
	}
}

func TestImpliedVolVegaUnderflowAtExpiry(t *testing.T) {
	opt, err := New(110, 100, 0, 0.05, 0.2, "call")
	if err != nil {
		t.Fatal(err)
	}

	// At expiry the model price is the intrinsic payoff and vega is gone;
	// any off-intrinsic target cannot make progress.
	_, err = opt.ImpliedVolatility(12)
	if !errors.Is(err, ErrVegaUnderflow) {
		t.Fatalf("expected ErrVegaUnderflow, got %v", err)
	}
}
