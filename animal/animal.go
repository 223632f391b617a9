// animal project animal.go
//
// Defines the static descriptors of an animal type and its fill types
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
	"fmt"
	"strings"
)

type FillType string // A resource such as feed, water, bedding or a produced good

// Fill types the simulation treats specially
const (
	Food    FillType = "FOOD"    // Generic feed input resolved through the food groups
	Water   FillType = "WATER"   // Drinking water, may be supplied automatically
	Straw   FillType = "STRAW"   // Bedding, required for manure output
	Manure  FillType = "MANURE"  // Output weighted by the bedding availability
	Pallets FillType = "PALLETS" // Output resolved to the facility pallet fill type
	Forage  FillType = "FORAGE"  // Mixed ration, price adjusted by the facility
)

// Canonical fill type name
func NewFillType(name string) FillType {
	return FillType(strings.ToUpper(strings.TrimSpace(name)))
}

type ConsumptionMode string // How an animal type eats from its food groups

const (
	Serial   ConsumptionMode = "SERIAL"   // One food at a time
	Parallel ConsumptionMode = "PARALLEL" // Every food group is eaten together
)

// Parse the consumption type of animalFood
func ParseConsumptionMode(s string) (ConsumptionMode, error) {
	switch m := ConsumptionMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case Serial, Parallel:
		return m, nil
	default:
		return "", fmt.Errorf("unknown consumption type %q", s)
	}
}

type FoodGroup struct {
	Title            string  // Name of the group e.g. "hay"
	ProductionWeight float64 // Contribution to the health factor when the group is fed
	EatWeight        float64 // Share of the food intake taken from this group
}

type GroupFill struct {
	Title         string   // FoodGroup this fill type belongs to
	FillType      FillType // Member fill type
	PricePerLiter float64  // Market price
}

// The animal type - e.g. COW - shared by all of its breeds
type AnimalType struct {
	Name        string
	Consumption ConsumptionMode
	FoodGroups  []FoodGroup
	GroupFills  []GroupFill
}

// Return the food group with this title
func (t *AnimalType) Group(title string) (FoodGroup, bool) {
	for _, g := range t.FoodGroups {
		if g.Title == title {
			return g, true
		}
	}
	return FoodGroup{}, false
}

// Market price of a food fill type, the first matching group fill wins
func (t *AnimalType) FillPrice(fill FillType) (float64, bool) {
	for _, gf := range t.GroupFills {
		if gf.FillType == fill {
			return gf.PricePerLiter, true
		}
	}
	return 0, false
}

type FeedRow struct {
	FillType  FillType
	AgeMonths int     // Row applies from this age on
	LiterDay  float64 // Amount per simulated step
}

type PriceBreakpoint struct {
	AgeMonths int
	Price     float64
}
