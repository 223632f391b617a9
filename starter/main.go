// starter project main.go
//
// Runs every scenario of a scenario file concurrently and tabulates the results
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/blgolden/animalProd/catalog"
	"github.com/blgolden/animalProd/config"
	"github.com/blgolden/animalProd/facility"
	"github.com/blgolden/animalProd/logger"
	"github.com/blgolden/animalProd/recoup"

	hjson "github.com/hjson/hjson-go"
	"go.uber.org/zap"
)

var version string = "beta0.1.0"

var scenarioFile *string
var catalogFile *string
var outputMode *string
var logFile *string
var outputFile *string
var workers *int

var zlog *zap.Logger

// Parse the arg list looking for the scenario file
func parseArgs(cfg *config.Config) {

	scenarioFile = flag.String("scenarios", "", "The hjson scenario file (required)")
	catalogFile = flag.String("catalog", cfg.Catalog, "Catalog file, .hjson or a sqlite database")
	outputMode = flag.String("outputMode", cfg.OutputMode, "'verbose'(default), 'model' or 'quiet'")
	logFile = flag.String("logFile", cfg.LogFile, "Log file outside verbose mode")
	outputFile = flag.String("outputFile", "", "Optional hjson file of the results")
	workers = flag.Int("workers", cfg.Workers, "Concurrent runs, 0 is one per CPU")
	isVersion := flag.Bool("version", false, "prints the version number of starter")

	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	if *scenarioFile == "" {
		fmt.Fprintf(os.Stderr, "Error: a scenario file must be provided on the command line\n\tstarter -scenarios=[file name]\n\n")
		flag.Usage()
		os.Exit(1)
	}
}

func loadTemplates(path string) (map[string]facility.Template, error) {
	c, err := catalog.Load(context.Background(), path)
	if err != nil {
		return nil, err
	}
	return c.Templates()
}

// Write a table of the runs to w
func publishResults(w io.Writer, results []recoup.BatchResult, reqs []recoup.Request) {

	fmt.Fprintln(w, "\t ___________________________________________________________________________________________")
	fmt.Fprintln(w, "\t| Scenario             | Facility         | Breed      | Policy | Break-even |   Per month   |")
	fmt.Fprintln(w, "\t|______________________|__________________|____________|________|____________|_______________|")
	for i, r := range results {
		req := reqs[i]
		switch {
		case r.Result == nil:
			fmt.Fprintf(w, "\t| %-20s | %-16s | %-10s |   -    | %-25s |\n", label(req, i), req.FacilityID, req.Breed, "error")
		case !r.Result.BrokeEven:
			fmt.Fprintf(w, "\t| %-20s | %-16s | %-10s | %-6s |      never | %13.2f |\n", label(req, i), req.FacilityID, req.Breed, r.Result.Policy, r.Result.Slope)
		default:
			fmt.Fprintf(w, "\t| %-20s | %-16s | %-10s | %-6s | %10d | %13.2f |\n", label(req, i), req.FacilityID, req.Breed, r.Result.Policy, r.Result.BreakEvenMonth, r.Result.Slope)
		}
	}
	fmt.Fprintln(w, "\t|___________________________________________________________________________________________|")

	s := recoup.Summarize(results)
	fmt.Fprintf(w, "\t Runs: %d, broke even: %d\n", s.Runs, s.BrokeEven)
	fmt.Fprintf(w, "\t Per month:  mean %10.2f  stddev %10.2f\n", s.MeanSlope, s.StdDevSlope)
	fmt.Fprintf(w, "\t Break-even: mean %10.2f  stddev %10.2f\n\n", s.MeanBreakEven, s.StdDevBreakEven)
}

func label(req recoup.Request, i int) string {
	if req.Name != "" {
		return req.Name
	}
	return fmt.Sprintf("scenario %d", i+1)
}

// The results as an hjson document
func marshalResults(results []recoup.BatchResult, reqs []recoup.Request) ([]byte, error) {
	runs := make([]interface{}, 0, len(results))
	for i, r := range results {
		run := map[string]interface{}{
			"name":     label(reqs[i], i),
			"facility": reqs[i].FacilityID,
			"breed":    reqs[i].Breed,
		}
		if r.Err != nil {
			run["error"] = r.Err.Error()
		}
		if r.Result != nil {
			run["policy"] = string(r.Result.Policy)
			run["runId"] = r.Result.RunID.String()
			run["brokeEven"] = r.Result.BrokeEven
			run["breakEvenMonth"] = r.Result.BreakEvenMonth
			run["slope"] = r.Result.Slope
			run["intercept"] = r.Result.Intercept
		}
		runs = append(runs, run)
	}
	return hjson.Marshal(map[string]interface{}{"runs": runs})
}

func main() {

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	parseArgs(cfg)

	zlog, err = logger.New(*outputMode, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = zlog.Sync() }()

	templates, err := loadTemplates(*catalogFile)
	if err != nil {
		zlog.Fatal("failed to load catalog", zap.String("file", *catalogFile), zap.Error(err))
	}
	reqs, err := recoup.LoadScenarios(*scenarioFile)
	if err != nil {
		zlog.Fatal("failed to load scenarios", zap.String("file", *scenarioFile), zap.Error(err))
	}

	start := time.Now()
	results := recoup.RunBatch(recoup.NewContext(logger.Named(zlog, "recoup")), templates, reqs, *workers)
	elapsed := time.Since(start)

	for i, r := range results {
		if r.Err != nil && !errors.Is(r.Err, recoup.ErrNoBreakEven) {
			zlog.Error("scenario failed", zap.String("scenario", label(reqs[i], i)), zap.Error(r.Err))
		}
	}

	if *outputMode != logger.Quiet {
		publishResults(os.Stdout, results, reqs)
	}
	if *outputMode == logger.Verbose {
		fmt.Println("Total time:", elapsed, "Time per scenario:", elapsed.Seconds()/float64(len(reqs)))
	}

	if *outputFile != "" {
		data, err := marshalResults(results, reqs)
		if err != nil {
			zlog.Fatal("failed to marshal results", zap.Error(err))
		}
		if err := os.WriteFile(*outputFile, data, 0644); err != nil {
			zlog.Fatal("cannot write outputFile", zap.String("file", *outputFile), zap.Error(err))
		}
	}
}
