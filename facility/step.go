// step
//
// Month stepping, reproduction and automatic livestock sales
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
	"fmt"

	"github.com/blgolden/animalProd/animal"

	"go.uber.org/zap"
)

// Advance the facility months months
func (f *Facility) Step(months int) error {
	for i := 0; i < months; i++ {
		if err := f.stepMonth(); err != nil {
			return fmt.Errorf("%s month %d: %w", f.tmpl.ID, f.ageMonths, err)
		}
	}
	return nil
}

func (f *Facility) stepMonth() error {
	if err := f.ApplyMonthlyFillExchange(); err != nil {
		return err
	}
	for _, c := range f.cohorts {
		if err := c.IncreaseAge(); err != nil {
			return err
		}
	}

	// cohorts born or bought below are not visited this month
	current := f.Cohorts()
	for _, c := range current {
		if !f.holds(c) {
			continue
		}
		if _, _, err := f.reproduce(c); err != nil {
			return err
		}
		if f.policy == SellMature && f.holds(c) {
			if err := f.autosell(c, 0); err != nil {
				return err
			}
		}
	}

	f.record(f.tmpl.ID+"_upkeep", -f.tmpl.UpkeepPrice)
	for _, e := range f.extensions {
		f.record(e.ID+"_upkeep", -e.UpkeepPrice)
	}
	f.ageMonths++
	return nil
}

// Give birth when the cohort is due. Newborns fill free slots only,
// the units that found no slot are the remainder.
func (f *Facility) reproduce(c *animal.Cohort) (born, remainder int, err error) {
	if !c.CanReproduce() {
		return 0, 0, nil
	}
	remainder = c.Units
	if empty := f.EmptySlots(); empty > 0 {
		want := c.Units
		if empty < want {
			want = empty
		}
		if born, err = f.BuyAnimals(c.Breed.Name, 0, want, true); err != nil {
			return 0, 0, err
		}
		remainder = c.Units - born
	}
	f.log.Debug("birth",
		zap.String("breed", c.Breed.Name),
		zap.Int("month", f.ageMonths),
		zap.Int("born", born),
		zap.Int("remainder", remainder))

	if f.policy.onBirth() {
		if err := f.autosell(c, remainder); err != nil {
			return born, remainder, err
		}
	}
	c.ReproMonths = 1
	return born, remainder, nil
}

// Apply the autosell policy for cohort c. buyMore is the number of
// newborns that could not be housed.
func (f *Facility) autosell(c *animal.Cohort, buyMore int) error {
	breed := c.Breed.Name
	switch f.policy {
	case SellAll:
		units := c.Units
		for _, x := range f.Cohorts() {
			f.SellAnimals(x, x.Units)
		}
		if _, err := f.BuyAnimals(breed, 0, units, false); err != nil {
			return err
		}
	case SellNew:
		for _, x := range f.Cohorts() {
			if x.AgeMonths == 0 {
				f.SellAnimals(x, x.Units)
			}
		}
	case SellOld:
		f.SellAnimals(c, c.Units)
		if buyMore > 0 {
			if _, err := f.BuyAnimals(breed, 0, buyMore, false); err != nil {
				return err
			}
		}
	case SellMature:
		if c.AgeMonths >= c.Breed.MatureSellAge() {
			f.SellAnimals(c, c.Units)
		}
	}
	return nil
}
