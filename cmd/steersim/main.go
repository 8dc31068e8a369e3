// cmd/steersim/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// steersim flies one or more JSON scenarios under the lateral steering
// director and reports how well each tracked its path.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/mmp/rollsteer/log"
	"github.com/mmp/rollsteer/sim"
	"github.com/mmp/rollsteer/steer"

	"github.com/brunoga/deep"
	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var (
	logLevel  = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir    = flag.String("logdir", "", "log file directory")
	traceDir  = flag.String("tracedir", "", "directory to write .msgpack.zst traces to; none are written if empty")
	simRates  = flag.String("rates", "", "comma-separated sim rates to run each scenario at; the scenario's own rate if empty")
	nWorkers  = flag.Int("nworkers", runtime.NumCPU(), "number of scenarios to run concurrently")
	steerLog  = flag.Bool("steerlog", false, "print per-tick steering logging (requires -tags steerlog)")
	steerCats = flag.String("steerlogcats", "all", "comma-separated steering log categories: state, roll, guard, drive")
	dump      = flag.Bool("dump", false, "print each scenario after loading and validation")
)

func main() {
	flag.Parse()

	if len(flag.Args()) == 0 {
		fmt.Fprintf(os.Stderr, "usage: steersim [flags] scenario.json...\nwhere [flags] may be:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	lg := log.New(*logLevel, *logDir)
	steer.InitSteerLog(*steerLog, *steerCats)

	rates, err := parseRates(*simRates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "-rates: %v\n", err)
		os.Exit(1)
	}

	var scenarios []*sim.Scenario
	for _, fn := range flag.Args() {
		s, err := sim.LoadScenarioFile(fn)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if *dump {
			fmt.Printf("%s:\n", fn)
			godump.Dump(s)
		}
		if len(rates) == 0 {
			scenarios = append(scenarios, s)
		}
		for _, r := range rates {
			// Each run gets its own copy of the scenario.
			sr := deep.MustCopy(s)
			sr.SimRate = r
			sr.Name = fmt.Sprintf("%s-x%g", s.Name, r)
			scenarios = append(scenarios, sr)
		}
	}

	if *traceDir != "" {
		if err := os.MkdirAll(*traceDir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	summaries := make([]sim.Summary, len(scenarios))
	var eg errgroup.Group
	eg.SetLimit(*nWorkers)
	for i, s := range scenarios {
		eg.Go(func() error {
			sm, err := sim.NewSim(s, lg)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			tr := sm.Run()
			summaries[i] = tr.Summarize()

			if *traceDir != "" {
				fn := filepath.Join(*traceDir, s.Name+".msgpack.zst")
				if err := sim.WriteTraceFile(fn, tr); err != nil {
					return fmt.Errorf("%s: %w", fn, err)
				}
			}
			return nil
		})
	}

	err = eg.Wait()
	for i, s := range scenarios {
		if summaries[i].Frames > 0 {
			fmt.Printf("%-24s %s\n", s.Name, summaries[i])
		}
	}
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
}

func parseRates(s string) ([]float32, error) {
	if s == "" {
		return nil, nil
	}
	var rates []float32
	for _, f := range strings.Split(s, ",") {
		r, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, err
		}
		if r <= 0 {
			return nil, fmt.Errorf("%g: sim rate must be positive", r)
		}
		rates = append(rates, float32(r))
	}
	return rates, nil
}
