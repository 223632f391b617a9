// animal project cohort.go
//
// A group of same age, same breed animals kept together in a facility
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

import "fmt"

// An output row with the weight it is currently produced at
type Output struct {
	FeedRow
	ProductionWeight float64
}

type Cohort struct {
	Breed       *Breed
	AgeMonths   int
	Units       int
	ReproMonths int // Months spent toward the next birth

	available map[FillType]bool // Inputs the facility currently holds

	FoodWeight   float64
	WaterWeight  float64
	ManureWeight float64
	Health       float64 // Production multiplier 0..1

	FeedIn  []FeedRow
	FeedOut []Output

	BuyPrice       float64
	SellPrice      float64
	TransportPrice float64
}

// Create a cohort and derive its rates and prices for age
func NewCohort(breed *Breed, age, units int) (*Cohort, error) {
	if breed == nil {
		return nil, fmt.Errorf("cohort needs a breed")
	}
	if age < 0 || units < 0 {
		return nil, fmt.Errorf("cohort of %s: negative age %d or units %d", breed.Name, age, units)
	}
	c := &Cohort{
		Breed:     breed,
		AgeMonths: age,
		Units:     units,
		available: make(map[FillType]bool),
	}
	if err := c.Update(); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace the set of inputs the cohort has access to and refresh the weights
func (c *Cohort) SetAvailableInputs(fills []FillType) error {
	c.available = make(map[FillType]bool, len(fills))
	for _, f := range fills {
		c.available[f] = true
	}
	return c.Update()
}

func (c *Cohort) IsAvailable(fill FillType) bool {
	return c.available[fill]
}

// Update fill amounts, prices and production weights
func (c *Cohort) Update() error {
	if err := c.updateFillPrice(); err != nil {
		return err
	}
	c.updateProductionWeight()
	return nil
}

func (c *Cohort) updateFillPrice() error {
	b := c.Breed

	c.FeedIn = RatesAt(b.FeedIn, c.AgeMonths)

	out := RatesAt(b.FeedOut, c.AgeMonths)
	c.FeedOut = make([]Output, len(out))
	for i := range out {
		c.FeedOut[i] = Output{FeedRow: out[i]}
	}

	var err error
	if c.BuyPrice, err = PriceAt(b.BuyPrices, c.AgeMonths); err != nil {
		return fmt.Errorf("%s buy price: %w", b.Name, err)
	}
	if c.SellPrice, err = PriceAt(b.SellPrices, c.AgeMonths); err != nil {
		return fmt.Errorf("%s sell price: %w", b.Name, err)
	}
	if c.TransportPrice, err = PriceAt(b.TransportPrices, c.AgeMonths); err != nil {
		return fmt.Errorf("%s transport price: %w", b.Name, err)
	}
	return nil
}

func (c *Cohort) updateProductionWeight() {
	t := c.Breed.Type

	// best production weight of each group that has an available fill type
	var chosen []float64
	seen := make(map[string]int)
	for _, gf := range t.GroupFills {
		if !c.available[gf.FillType] {
			continue
		}
		g, ok := t.Group(gf.Title)
		if !ok {
			continue
		}
		if k, ok := seen[g.Title]; ok {
			if g.ProductionWeight > chosen[k] {
				chosen[k] = g.ProductionWeight
			}
			continue
		}
		seen[g.Title] = len(chosen)
		chosen = append(chosen, g.ProductionWeight)
	}

	c.FoodWeight = 0
	for _, w := range chosen {
		if t.Consumption == Serial {
			if w > c.FoodWeight {
				c.FoodWeight = w
			}
		} else {
			c.FoodWeight += w
		}
	}

	c.WaterWeight = presenceWeight(c.requiresNow(Water), c.available[Water])
	c.Health = c.FoodWeight * c.WaterWeight

	// manure needs straw bedding
	c.ManureWeight = presenceWeight(c.requiresNow(Straw), c.available[Straw])

	for i := range c.FeedOut {
		if c.FeedOut[i].FillType == Manure {
			c.FeedOut[i].ProductionWeight = c.Health * c.ManureWeight
		} else {
			c.FeedOut[i].ProductionWeight = c.Health
		}
	}
}

func (c *Cohort) requiresNow(fill FillType) bool {
	for _, r := range c.FeedIn {
		if r.FillType == fill {
			return true
		}
	}
	return false
}

func presenceWeight(required, available bool) float64 {
	if !required || available {
		return 1
	}
	return 0
}

// Age the cohort one month. The reproduction counter moves while the
// animals are old enough and healthy enough.
func (c *Cohort) IncreaseAge() error {
	b := c.Breed
	if b.Reproduces && c.AgeMonths >= b.ReproMinAgeMonths &&
		c.Health >= b.ReproMinHealth && c.ReproMonths < b.ReproDurationMonths {
		c.ReproMonths++
	}
	c.AgeMonths++
	return c.Update()
}

// Ready to give birth
func (c *Cohort) CanReproduce() bool {
	return c.Breed.Reproduces && c.ReproMonths >= c.Breed.ReproDurationMonths
}

// Sale revenue per animal at the current age
func (c *Cohort) NetSalePrice() float64 {
	return c.SellPrice - c.TransportPrice
}

// Total value of the cohort if sold now
func (c *Cohort) Value() float64 {
	return c.NetSalePrice() * float64(c.Units)
}

func (c *Cohort) Clone() *Cohort {
	n := *c
	n.available = make(map[FillType]bool, len(c.available))
	for k, v := range c.available {
		n.available[k] = v
	}
	n.FeedIn = append([]FeedRow(nil), c.FeedIn...)
	n.FeedOut = append([]Output(nil), c.FeedOut...)
	return &n
}
