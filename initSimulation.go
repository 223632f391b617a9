// animalProd project initSimulation.go
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
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/blgolden/animalProd/animal"
	"github.com/blgolden/animalProd/catalog"
	"github.com/blgolden/animalProd/config"
	"github.com/blgolden/animalProd/facility"
	"github.com/blgolden/animalProd/logger"
	"github.com/blgolden/animalProd/recoup"

	"go.uber.org/zap"
)

var (
	catalogFile *string // hjson catalog or sqlite database
	facilityID  *string
	breedName   *string
	stock       *int
	buyAge      *int
	autosell    *string
	food        *string // comma separated fill types
	manureHeap  *bool
	autoBuy     *bool
	autoSell    *bool
	trailing    *int
	extra       *int
	ledgerFile  *string
	outputMode  *string
	logFile     *string
	list        *bool
)

var zlog *zap.Logger
var templates map[string]facility.Template

// Initialize everything
func initSimulation() {

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

	cat, err := catalog.Load(context.Background(), *catalogFile)
	if err != nil {
		zlog.Fatal("failed to load catalog", zap.String("file", *catalogFile), zap.Error(err))
	}
	templates, err = cat.Templates()
	if err != nil {
		zlog.Fatal("failed to build facilities", zap.Error(err))
	}
	zlog.Info("catalog loaded", zap.String("file", *catalogFile), zap.Int("facilities", len(templates)))
}

func parseArgs(cfg *config.Config) {

	def := recoup.DefaultRequest()

	catalogFile = flag.String("catalog", cfg.Catalog, "Catalog file, .hjson or a sqlite database")
	facilityID = flag.String("facility", "", "Facility id from the catalog (required)")
	breedName = flag.String("breed", "", "Breed to stock (required)")
	stock = flag.Int("stock", 0, "Number of animals bought at the start, 0 fills the facility")
	buyAge = flag.Int("buyAge", 0, "Age in months of the animals bought")
	autosell = flag.String("autosell", def.Autosell, "'none', 'all', 'new', 'old' or 'mature'")
	food = flag.String("food", "", "Comma separated food fill types, default is the facility default")
	manureHeap = flag.Bool("manureHeap", false, "Buy the manure heap before stocking")
	autoBuy = flag.Bool("autoBuy", def.AutoBuy, "Buy inputs each month")
	autoSell = flag.Bool("autoSell", def.AutoSell, "Sell outputs each month")
	trailing = flag.Int("trailingMonths", def.TrailingWindowMonths, "Months fitted when no animals are sold, 0 for all")
	extra = flag.Int("extraMonths", 0, "Months simulated after break-even")
	ledgerFile = flag.String("ledger", "", "Optional file for the full ledger")
	outputMode = flag.String("outputMode", cfg.OutputMode, "'verbose'(default), 'model' or 'quiet'")
	logFile = flag.String("logFile", cfg.LogFile, "Log file outside verbose mode")
	list = flag.Bool("list", false, "List the catalog facilities and exit")
	isVersion := flag.Bool("version", false, "prints the version number of animalProd")

	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	if *outputMode == logger.Verbose {
		fmt.Printf("\n\t*** animalProd ver %v ***\n\n", version)
	}

	if !*list && (*facilityID == "" || *breedName == "") {
		fmt.Fprintf(os.Stderr, "Error: a facility and a breed must be provided on the command line\n\tanimalProd -facility=[id] -breed=[name]\n\n")
		flag.Usage()
		os.Exit(1)
	}
}

func parseFood(s string) []animal.FillType {
	var fills []animal.FillType
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fills = append(fills, animal.NewFillType(f))
		}
	}
	return fills
}

// The run described by the flags
func request() recoup.Request {
	req := recoup.DefaultRequest()
	req.FacilityID = *facilityID
	req.Breed = *breedName
	req.StockAmount = *stock
	req.BuyAgeMonths = *buyAge
	req.Autosell = *autosell
	req.Food = parseFood(*food)
	req.PurchaseStorageExtension = *manureHeap
	req.AutoBuy = *autoBuy
	req.AutoSell = *autoSell
	req.TrailingWindowMonths = *trailing
	req.ExtraMonths = *extra
	if t, ok := templates[req.FacilityID]; ok && req.StockAmount == 0 {
		req.StockAmount = t.UnitMax
	}
	return req
}
