// fill
//
// Monthly feed demand, purchasing, production and storage
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
	"math"

	"github.com/blgolden/animalProd/animal"
)

// Quantities per fill type, kept in first-seen order
type fillTotals struct {
	order []animal.FillType
	qty   map[animal.FillType]float64
}

func newFillTotals() *fillTotals {
	return &fillTotals{qty: make(map[animal.FillType]float64)}
}

func (t *fillTotals) add(fill animal.FillType, q float64) {
	if _, ok := t.qty[fill]; !ok {
		t.order = append(t.order, fill)
	}
	t.qty[fill] += q
}

// A concrete food and the share of the FOOD ration it covers
type foodShare struct {
	fill      animal.FillType
	eatWeight float64
}

// Resolve the generic FOOD input of an animal type against the current feed list
func (f *Facility) foodShares(at *animal.AnimalType) []foodShare {
	if at.Consumption == animal.Serial {
		shares := make([]foodShare, len(f.food))
		for i, fl := range f.food {
			shares[i] = foodShare{fl, 1}
		}
		return shares
	}

	offered := make(map[animal.FillType]bool, len(f.food))
	for _, fl := range f.food {
		offered[fl] = true
	}

	// cheapest offered fill of each group
	var shares []foodShare
	for _, g := range at.FoodGroups {
		best := -1
		for i, gf := range at.GroupFills {
			if gf.Title != g.Title || !offered[gf.FillType] {
				continue
			}
			if best < 0 || gf.PricePerLiter < at.GroupFills[best].PricePerLiter {
				best = i
			}
		}
		if best >= 0 {
			shares = append(shares, foodShare{at.GroupFills[best].FillType, g.EatWeight})
		}
	}
	return shares
}

func (f *Facility) demand() *fillTotals {
	in := newFillTotals()
	for _, c := range f.cohorts {
		units := float64(c.Units)
		for _, r := range c.FeedIn {
			if r.FillType != animal.Food {
				in.add(r.FillType, r.LiterDay*units)
				continue
			}
			for _, s := range f.foodShares(c.Breed.Type) {
				in.add(s.fill, math.Ceil(r.LiterDay*units*s.eatWeight))
			}
		}
	}
	return in
}

func (f *Facility) production() *fillTotals {
	out := newFillTotals()
	for _, c := range f.cohorts {
		for _, o := range c.FeedOut {
			fill := o.FillType
			if fill == animal.Pallets && f.tmpl.PalletFill != "" {
				fill = f.tmpl.PalletFill
			}
			out.add(fill, o.LiterDay*float64(c.Units)*o.ProductionWeight)
		}
	}
	return out
}

// One month of feeding and production: buy the demand, refresh animal
// health, sell or store the output, then take the demand out of stock.
func (f *Facility) ApplyMonthlyFillExchange() error {
	in := f.demand()

	if f.AutoBuy {
		for _, fill := range in.order {
			q := in.qty[fill]
			if q <= 0 {
				continue
			}
			price, ok := f.priceIn(fill)
			if !ok || price <= 0 {
				continue
			}
			f.record(string(fill), -(price * q * f.adjustment(fill)))
			f.inventory[fill] += q
		}
	}

	if err := f.updateAnimalFill(); err != nil {
		return err
	}

	out := f.production()
	for _, fill := range out.order {
		q := out.qty[fill]
		if q <= 0 {
			continue
		}
		if f.AutoSell {
			if price, ok := f.priceOut(fill); ok && price > 0 {
				f.record(string(fill), price*q)
				continue
			}
		}
		f.inventory[fill] += q
	}

	for _, fill := range in.order {
		q := in.qty[fill]
		if q <= 0 {
			continue
		}
		f.inventory[fill] = math.Max(f.inventory[fill]-q, 0)
	}
	return nil
}
