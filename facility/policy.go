// policy
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

import "strings"

type AutosellPolicy string // Rule for selling livestock automatically

const (
	SellNone   AutosellPolicy = "none"   // stock is never sold automatically
	SellAll    AutosellPolicy = "all"    // all stock sold after reproduction, breeders bought back
	SellNew    AutosellPolicy = "new"    // newborn stock sold after reproduction
	SellOld    AutosellPolicy = "old"    // newborns kept and mothers sold after reproduction
	SellMature AutosellPolicy = "mature" // stock sold once it reaches its peak sell price
)

var AutosellPolicies = []AutosellPolicy{SellNone, SellAll, SellNew, SellOld, SellMature}

func ParseAutosellPolicy(s string) (AutosellPolicy, bool) {
	p := AutosellPolicy(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range AutosellPolicies {
		if p == v {
			return p, true
		}
	}
	return SellNone, false
}

// Policies that act when a cohort gives birth
func (p AutosellPolicy) onBirth() bool {
	return p == SellNew || p == SellOld || p == SellAll
}
