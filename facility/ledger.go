// facility project ledger.go
//
// The append only money record of a facility
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
package facility

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/blgolden/animalProd/animal"

	"gonum.org/v1/gonum/floats"
)

type LedgerEntry struct {
	Month  int     // Facility age when recorded
	Label  string  // Fill type, breed, facility or extension id
	Amount float64 // Negative for expenses, positive for revenue. Cents.
}

// Entries in the order they were recorded
type Ledger []LedgerEntry

// Sum of entries for one month and the running total through it
type MonthTotal struct {
	Month      int
	Amount     float64
	Cumulative float64
}

func (l Ledger) Profit() float64 {
	amounts := make([]float64, len(l))
	for i, e := range l {
		amounts[i] = e.Amount
	}
	return animal.Round2(floats.Sum(amounts))
}

// Net amount booked in each month
func (l Ledger) ByMonth() map[int]float64 {
	byMonth := make(map[int]float64)
	for _, e := range l {
		byMonth[e.Month] += e.Amount
	}
	return byMonth
}

// Per month totals in month order, only months with entries appear
func (l Ledger) Cumulative() []MonthTotal {
	byMonth := l.ByMonth()
	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	totals := make([]MonthTotal, len(months))
	var cum float64
	for i, m := range months {
		cum += byMonth[m]
		totals[i] = MonthTotal{Month: m, Amount: animal.Round2(byMonth[m]), Cumulative: animal.Round2(cum)}
	}
	return totals
}

// Months with revenue booked under label, each month once
func (l Ledger) SaleMonths(label string) []int {
	seen := make(map[int]bool)
	var months []int
	for _, e := range l {
		if e.Label == label && e.Amount > 0 && !seen[e.Month] {
			seen[e.Month] = true
			months = append(months, e.Month)
		}
	}
	sort.Ints(months)
	return months
}

// Tab separated dump, one entry per line
func (l Ledger) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, e := range l {
		k, err := fmt.Fprintf(bw, "%d\t%s\t%.2f\n", e.Month, e.Label, e.Amount)
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
