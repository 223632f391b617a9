// animalProd project main.go
//
// How long until a stocked facility pays for itself
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
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/blgolden/animalProd/facility"
	"github.com/blgolden/animalProd/logger"
	"github.com/blgolden/animalProd/recoup"

	"go.uber.org/zap"
)

var version = "beta0.1.0"

// Print the cumulative profit every 12 months and the fitted trend
func printTables(w io.Writer, res *recoup.Result) {
	req := res.Request
	f := res.Facility

	fmt.Fprintf(w, "Facility: %s (%s)\n", f.Name(), f.ID())
	fmt.Fprintf(w, "Breed:    %s, %d bought at %d months, autosell %s\n\n", req.Breed, req.StockAmount, req.BuyAgeMonths, res.Policy)

	fmt.Fprintf(w, "Month        Monthly     Cumulative\n")
	for i, m := range res.Series {
		if i%12 != 0 && i != len(res.Series)-1 {
			continue
		}
		fmt.Fprintf(w, "%5d %14.2f %14.2f\n", m.Month, m.Amount, m.Cumulative)
	}

	fmt.Fprintf(w, "\nTrend:       %10.2f per month, intercept %.2f (%d months fitted)\n", res.Slope, res.Intercept, len(res.FitMonths))
	if res.BrokeEven {
		fmt.Fprintf(w, "Break-even:  month %d\n", res.BreakEvenMonth)
	} else {
		fmt.Fprintf(w, "Break-even:  not within %d months\n", recoup.MaxSearchMonths)
	}
	fmt.Fprintf(w, "End state:   %d units, value %.2f, profit %.2f\n", f.Units(), f.Value(), f.Profit())
}

// List the facilities of the catalog
func printFacilities(w io.Writer, ts map[string]facility.Template) {
	ids := make([]string, 0, len(ts))
	for id := range ts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "%-24s %-10s %7s %12s  %s\n", "Facility", "Type", "Units", "Price", "Breeds")
	for _, id := range ids {
		t := ts[id]
		var breeds string
		for i, b := range t.Breeds {
			if i > 0 {
				breeds += ","
			}
			breeds += b.Name
		}
		fmt.Fprintf(w, "%-24s %-10s %7d %12.2f  %s\n", id, t.AnimalType.Name, t.UnitMax, t.Price, breeds)
	}
}

// Write the whole ledger, one entry per line
func dumpLedger(path string, f *facility.Facility) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Ledger().WriteTo(fp); err != nil {
		_ = fp.Close()
		return err
	}
	return fp.Close()
}

func main() {

	initSimulation() // Initialize everything
	defer func() { _ = zlog.Sync() }()

	if *list {
		printFacilities(os.Stdout, templates)
		return
	}

	req := request()
	res, err := recoup.Run(recoup.NewContext(zlog), templates, req)
	if err != nil && !errors.Is(err, recoup.ErrNoBreakEven) {
		zlog.Fatal("recoupment failed", zap.Error(err))
	}

	switch *outputMode {
	case logger.Verbose, logger.Model:
		printTables(os.Stdout, res)
	case logger.Quiet:
		fmt.Printf("%d,%.2f\n", res.BreakEvenMonth, res.Slope)
	}

	if *ledgerFile != "" {
		if err := dumpLedger(*ledgerFile, res.Facility); err != nil {
			zlog.Fatal("failed to write ledger", zap.String("file", *ledgerFile), zap.Error(err))
		}
	}
}
