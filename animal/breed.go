// breed
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
package animal

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoPrice is returned when a price table has no breakpoint at or below an age
var ErrNoPrice = errors.New("no price defined for age")

// Everything the catalog knows about a breed (subType in animals.xml)
type BreedSpec struct {
	Name                string
	Type                *AnimalType
	Reproduces          bool // false when the catalog has no reproduction block
	ReproMinAgeMonths   int
	ReproDurationMonths int
	ReproMinHealth      float64
	FeedIn              []FeedRow
	FeedOut             []FeedRow
	BuyPrices           []PriceBreakpoint
	SellPrices          []PriceBreakpoint
	TransportPrices     []PriceBreakpoint
}

// A breed with its tables normalised. Never modified after NewBreed.
type Breed struct {
	Name                string
	Type                *AnimalType
	Reproduces          bool
	ReproMinAgeMonths   int
	ReproDurationMonths int
	ReproMinHealth      float64

	FeedIn          []FeedRow
	FeedOut         []FeedRow
	BuyPrices       []PriceBreakpoint // Sparse, these are the purchasable age classes
	SellPrices      []PriceBreakpoint // Dense, one entry per month
	TransportPrices []PriceBreakpoint // Dense, one entry per month

	matureSellAge int
}

func NewBreed(spec BreedSpec) (*Breed, error) {
	if spec.Type == nil {
		return nil, fmt.Errorf("breed %s has no animal type", spec.Name)
	}
	if spec.Reproduces && spec.ReproDurationMonths <= 0 {
		return nil, fmt.Errorf("breed %s: reproduction duration must be positive", spec.Name)
	}

	b := &Breed{
		Name:                spec.Name,
		Type:                spec.Type,
		Reproduces:          spec.Reproduces,
		ReproMinAgeMonths:   spec.ReproMinAgeMonths,
		ReproDurationMonths: spec.ReproDurationMonths,
		ReproMinHealth:      spec.ReproMinHealth,
		FeedIn:              normaliseRows(spec.FeedIn),
		FeedOut:             normaliseRows(spec.FeedOut),
		BuyPrices:           sortedBreakpoints(spec.BuyPrices),
	}
	// both sell and transport are modeled between the breakpoints, the game does the same
	b.SellPrices = Interpolate(sortedBreakpoints(spec.SellPrices))
	b.TransportPrices = Interpolate(sortedBreakpoints(spec.TransportPrices))

	b.matureSellAge = peakAge(b.SellPrices)

	return b, nil
}

// Age the sell price first reaches its lifetime maximum
func (b *Breed) MatureSellAge() int {
	return b.matureSellAge
}

// Does this breed need this input at some age
func (b *Breed) Requires(fill FillType) bool {
	for _, r := range b.FeedIn {
		if r.FillType == fill {
			return true
		}
	}
	return false
}

// Expand sparse breakpoints into one value per integer month.
// Values between two breakpoints are linear and rounded to cents.
func Interpolate(prices []PriceBreakpoint) []PriceBreakpoint {
	if len(prices) == 0 {
		return nil
	}

	var dense []PriceBreakpoint
	for i := 0; i < len(prices)-1; i++ {
		dense = append(dense, prices[i])

		ageMin := prices[i].AgeMonths
		ageDif := prices[i+1].AgeMonths - ageMin
		if ageDif <= 0 {
			continue // duplicate age, a catalog fault
		}
		moIncrease := (prices[i+1].Price - prices[i].Price) / float64(ageDif)

		for j := 1; j < ageDif; j++ {
			dense = append(dense, PriceBreakpoint{
				AgeMonths: ageMin + j,
				Price:     Round2(prices[i].Price + float64(j)*moIncrease),
			})
		}
	}
	dense = append(dense, prices[len(prices)-1])

	return dense
}

// Price of the latest breakpoint at or below age
func PriceAt(table []PriceBreakpoint, age int) (float64, error) {
	i, err := breakpointAt(table, age)
	if err != nil {
		return 0, err
	}
	return table[i].Price, nil
}

// Standardise a purchase age to the age classes of the buy table
func SnapAge(table []PriceBreakpoint, age int) (int, error) {
	i, err := breakpointAt(table, age)
	if err != nil {
		return 0, err
	}
	return table[i].AgeMonths, nil
}

func breakpointAt(table []PriceBreakpoint, age int) (int, error) {
	// first breakpoint older than age
	i := sort.Search(len(table), func(k int) bool { return table[k].AgeMonths > age })
	if i == 0 {
		return 0, fmt.Errorf("%w %d", ErrNoPrice, age)
	}
	return i - 1, nil
}

// The current rows at age: for each fill type the row with the
// largest age_mo <= age. Fill types with no such row are absent.
func RatesAt(rows []FeedRow, age int) []FeedRow {
	var current []FeedRow
	index := make(map[FillType]int)

	for _, r := range rows {
		if r.AgeMonths > age {
			continue
		}
		if k, ok := index[r.FillType]; ok {
			if r.AgeMonths > current[k].AgeMonths {
				current[k] = r
			}
			continue
		}
		index[r.FillType] = len(current)
		current = append(current, r)
	}
	return current
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func peakAge(table []PriceBreakpoint) int {
	if len(table) == 0 {
		return 0
	}
	best := 0
	for i := range table {
		if table[i].Price > table[best].Price {
			best = i
		}
	}
	return table[best].AgeMonths
}

func normaliseRows(rows []FeedRow) []FeedRow {
	out := make([]FeedRow, len(rows))
	for i, r := range rows {
		r.FillType = NewFillType(string(r.FillType))
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AgeMonths < out[j].AgeMonths })
	return out
}

func sortedBreakpoints(prices []PriceBreakpoint) []PriceBreakpoint {
	out := append([]PriceBreakpoint(nil), prices...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AgeMonths < out[j].AgeMonths })
	return out
}
