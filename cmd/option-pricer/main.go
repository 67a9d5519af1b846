package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/metrics"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/report"
	"github.com/contactkeval/option-pricer/internal/server"
	"github.com/contactkeval/option-pricer/internal/sweep"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	spot := flag.Float64("spot", 100, "underlying spot price")
	strike := flag.Float64("strike", 100, "strike price")
	maturity := flag.Float64("maturity", 1.0, "time to expiry in years")
	rate := flag.Float64("rate", 0.05, "risk-free rate")
	vol := flag.Float64("vol", 0.20, "annualized volatility")
	sweepDir := flag.String("sweep", "", "run a spot sweep and write curve.csv/curve.json to this directory")
	rest := flag.Bool("rest", false, "run as REST server")
	port := flag.String("port", "", "REST server listen address (overrides config)")
	verbosity := flag.Int("v", int(logger.Info), "log verbosity (0=error 1=info 2=debug 3=trace)")
	flag.Parse()

	logger.SetVerbosity(*verbosity)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *configPath != "" {
		logger.SetVerbosity(cfg.Logging.Verbosity)
	}

	if *rest {
		collector, err := metrics.NewCollector()
		if err != nil {
			log.Fatalf("metrics: %v", err)
		}
		addr := cfg.Server.Port
		if *port != "" {
			addr = *port
		}
		srv := server.New(cfg.Solver, collector)
		log.Fatal(srv.ListenAndServe(addr))
		return
	}

	if *sweepDir != "" {
		runSweep(cfg.Sweep, *sweepDir)
		return
	}

	printTable(*spot, *strike, *maturity, *rate, *vol)
}

// runSweep evaluates the configured curve and writes it to outdir.
func runSweep(cfg sweep.Config, outdir string) {
	start := time.Now()
	points, err := sweep.Curve(cfg)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		log.Fatalf("could not create output dir %s: %v", outdir, err)
	}
	if err := report.WriteJSON(points, outdir); err != nil {
		log.Fatalf("writing curve.json: %v", err)
	}
	if err := report.WriteCSV(points, outdir); err != nil {
		log.Fatalf("writing curve.csv: %v", err)
	}
	logger.Infof("finished in %v, wrote %d points to %s", time.Since(start), len(points), outdir)
}

// printTable prices a call and a put with the given parameters and prints
// the side-by-side metric table plus a put-call parity check.
func printTable(spot, strike, maturity, rate, vol float64) {
	call, err := pricing.New(spot, strike, maturity, rate, vol, "call")
	if err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}
	put, err := pricing.New(spot, strike, maturity, rate, vol, "put")
	if err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	fmt.Printf("S=%.2f K=%.2f T=%.2fy r=%.2f%% vol=%.2f%%\n\n",
		spot, strike, maturity, rate*100, vol*100)
	fmt.Printf("%-14s | %12s | %12s\n", "Metric", "Call", "Put")
	fmt.Println("--------------------------------------------")
	fmt.Printf("%-14s | %12.4f | %12.4f\n", "Price", call.Price(), put.Price())

	if maturity > 0 {
		rows := []struct {
			name string
			from func(*pricing.Option) (float64, error)
		}{
			{"Delta", (*pricing.Option).Delta},
			{"Gamma", (*pricing.Option).Gamma},
			{"Vega", (*pricing.Option).Vega},
			{"Theta (year)", (*pricing.Option).Theta},
			{"Rho", (*pricing.Option).Rho},
		}
		for _, row := range rows {
			cv, _ := row.from(call)
			pv, _ := row.from(put)
			fmt.Printf("%-14s | %12.4f | %12.4f\n", row.name, cv, pv)
		}
	}

	// C - P = S - K*exp(-rT)
	parity := (call.Price() - put.Price()) - (spot - strike*math.Exp(-rate*maturity))
	fmt.Println("--------------------------------------------")
	fmt.Printf("Put-call parity residual: %.6f\n", parity)
}
