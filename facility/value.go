// value
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
	"sort"

	"github.com/blgolden/animalProd/animal"
)

// Resale value: half the price of the building and its extensions, the
// stock on hand at market price and the live animals at net sale price.
// Unlimited stock such as piped water is left out.
func (f *Facility) Value() float64 {
	v := f.tmpl.Price / 2
	for _, e := range f.extensions {
		v += e.Price / 2
	}

	fills := make([]animal.FillType, 0, len(f.inventory))
	for fill := range f.inventory {
		fills = append(fills, fill)
	}
	sort.Slice(fills, func(i, j int) bool { return fills[i] < fills[j] })
	for _, fill := range fills {
		q := f.inventory[fill]
		if math.IsInf(q, 0) {
			continue
		}
		v += f.marketPrice(fill) * q
	}

	for _, c := range f.cohorts {
		v += c.Value()
	}
	return v
}

// storage table first, then the feed list of the animal type
func (f *Facility) marketPrice(fill animal.FillType) float64 {
	if p, ok := f.priceOut(fill); ok {
		return p
	}
	if f.tmpl.AnimalType != nil {
		if p, ok := f.tmpl.AnimalType.FillPrice(fill); ok {
			return p
		}
	}
	return 0
}
