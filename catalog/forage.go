// forage
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
package catalog

import (
	"fmt"
	"sort"

	"github.com/blgolden/animalProd/animal"
)

// Weights of the components of a forage ration
type ForageMix map[animal.FillType]float64

var (
	// 50% hay, 20% silage, 30% straw, no mineral feed
	LowForageMix = ForageMix{"DRYGRASS_WINDROW": 0.5, "SILAGE": 0.2, "STRAW": 0.3, "MINERAL_FEED": 0}

	// Feeding robot in the big barn
	HighForageMix = ForageMix{"DRYGRASS_WINDROW": 0.375, "SILAGE": 0.375, "STRAW": 0.2, "MINERAL_FEED": 0.05}
)

// Mix used to price forage at a facility. The cow barns mix by hand, the
// vector barn has a feeding robot. Others buy forage at list price.
func DefaultForageMix(pointID string) (ForageMix, bool) {
	switch pointID {
	case "cowBarnSmall", "cowBarnMedium", "cowBarnBig":
		return LowForageMix, true
	case "cowBarnBigVector":
		return HighForageMix, true
	}
	return nil, false
}

// Ratio of the weighted component price to the FORAGE list price, to 2 dp.
// Components missing from fills are left out of the average. A non-empty
// recipe also leaves out components it does not list.
func ForageAdjustment(fills map[animal.FillType]Fill, recipe []animal.FillType, mix ForageMix) (float64, error) {
	forage, ok := fills[animal.Forage]
	if !ok || forage.PricePerLiter <= 0 {
		return 0, fmt.Errorf("forage adjustment: no FORAGE price")
	}

	names := make([]animal.FillType, 0, len(mix))
	for n := range mix {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	inRecipe := make(map[animal.FillType]bool, len(recipe))
	for _, n := range recipe {
		inRecipe[n] = true
	}

	var priceWgt, wgt float64
	for _, n := range names {
		f, ok := fills[n]
		if !ok || (len(recipe) > 0 && !inRecipe[n]) {
			continue
		}
		priceWgt += f.PricePerLiter * mix[n]
		wgt += mix[n]
	}
	if wgt <= 0 {
		return 0, fmt.Errorf("forage adjustment: no priced components")
	}
	return animal.Round2(priceWgt / wgt / forage.PricePerLiter), nil
}
