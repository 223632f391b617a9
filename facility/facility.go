// facility project facility.go
//
// A barn, pen or coop holding cohorts of one animal type
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
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/blgolden/animalProd/animal"

	"go.uber.org/zap"
)

var ErrUnknownBreed = errors.New("breed not allowed at facility")

// One row of the facility storage table
type StorageSlot struct {
	FillType      animal.FillType
	Capacity      float64 // liters
	PricePerLiter float64 // sale price of stored output, purchase price of STRAW and WATER
}

// A purchasable add-on with its own upkeep
type Extension struct {
	ID          string
	Price       float64
	UpkeepPrice float64
}

var ManureHeap = Extension{ID: "manureHeapExtension", Price: 25000, UpkeepPrice: 25}

const ManureHeapCapacity = 4000000.0

// Static description of a facility as it is sold in the shop
type Template struct {
	ID          string
	Name        string
	PlaceType   string
	Price       float64
	UpkeepPrice float64 // per month

	AnimalType   *animal.AnimalType
	Breeds       []*animal.Breed // Breeds the facility can house
	UnitMax      int
	FoodCapacity float64
	DefaultFood  animal.FillType

	Storage     []StorageSlot
	PalletFill  animal.FillType // fill type produced for PALLETS outputs
	PalletMaxNo int
	WaterAuto   bool

	ForageAdjustment float64 // multiplier on FORAGE purchases, 0 means 1
}

// Breed by name from the allowed list
func (t *Template) Breed(name string) (*animal.Breed, bool) {
	for _, b := range t.Breeds {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// A purchasable input and its unit price
type FillPrice struct {
	FillType      animal.FillType
	PricePerLiter float64
}

type Facility struct {
	tmpl    Template
	storage []StorageSlot
	log     *zap.Logger

	AutoBuy          bool
	AutoSell         bool
	ForageAdjustment float64

	policy      AutosellPolicy
	food        []animal.FillType
	availableIn []FillPrice
	inventory   map[animal.FillType]float64
	cohorts     []*animal.Cohort
	extensions  []Extension
	ledger      Ledger
	ageMonths   int
}

// Build a facility from its template and book the purchase
func New(t Template, log *zap.Logger) *Facility {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Facility{
		tmpl:             t,
		storage:          append([]StorageSlot(nil), t.Storage...),
		log:              log.With(zap.String("facility", t.ID)),
		ForageAdjustment: t.ForageAdjustment,
		policy:           SellNone,
		inventory:        make(map[animal.FillType]float64),
	}
	if f.ForageAdjustment == 0 {
		f.ForageAdjustment = 1
	}
	if t.DefaultFood != "" {
		f.food = []animal.FillType{animal.NewFillType(string(t.DefaultFood))}
	}

	for _, s := range f.storage {
		if (s.FillType == animal.Straw || s.FillType == animal.Water) && s.Capacity > 0 {
			f.availableIn = append(f.availableIn, FillPrice{s.FillType, s.PricePerLiter})
		}
	}
	if t.AnimalType != nil {
		for _, gf := range t.AnimalType.GroupFills {
			f.availableIn = append(f.availableIn, FillPrice{gf.FillType, gf.PricePerLiter})
		}
	}
	if t.WaterAuto {
		f.inventory[animal.Water] = math.Inf(1)
		f.availableIn = append(f.availableIn, FillPrice{animal.Water, 0})
	}

	f.record(t.ID, -t.Price)
	return f
}

func (f *Facility) ID() string                     { return f.tmpl.ID }
func (f *Facility) Name() string                   { return f.tmpl.Name }
func (f *Facility) Template() Template             { return f.tmpl }
func (f *Facility) UnitMax() int                   { return f.tmpl.UnitMax }
func (f *Facility) AgeMonths() int                 { return f.ageMonths }
func (f *Facility) AutosellPolicy() AutosellPolicy { return f.policy }

// Live units across all cohorts
func (f *Facility) Units() int {
	n := 0
	for _, c := range f.cohorts {
		n += c.Units
	}
	return n
}

func (f *Facility) EmptySlots() int {
	return f.tmpl.UnitMax - f.Units()
}

// Cohorts currently housed. The slice is a copy, the cohorts are not.
func (f *Facility) Cohorts() []*animal.Cohort {
	return append([]*animal.Cohort(nil), f.cohorts...)
}

func (f *Facility) HasAnimals() bool {
	return len(f.cohorts) > 0
}

func (f *Facility) Ledger() Ledger {
	return append(Ledger(nil), f.ledger...)
}

// Cumulative profit, the rounded sum of the ledger
func (f *Facility) Profit() float64 {
	return f.ledger.Profit()
}

func (f *Facility) Inventory(fill animal.FillType) float64 {
	return f.inventory[fill]
}

func (f *Facility) Storage() []StorageSlot {
	return append([]StorageSlot(nil), f.storage...)
}

func (f *Facility) Extensions() []Extension {
	return append([]Extension(nil), f.extensions...)
}

func (f *Facility) Food() []animal.FillType {
	return append([]animal.FillType(nil), f.food...)
}

// Inputs the facility can buy with their prices
func (f *Facility) AvailableFillIn() []FillPrice {
	return append([]FillPrice(nil), f.availableIn...)
}

// Replace the feed list offered to the animals
func (f *Facility) SetFood(fills []animal.FillType) {
	f.food = make([]animal.FillType, 0, len(fills))
	for _, fl := range fills {
		f.food = append(f.food, animal.NewFillType(string(fl)))
	}
}

// Set the autosell policy. Unknown names fall back to none.
func (f *Facility) SetAutosellPolicy(name string) AutosellPolicy {
	p, ok := ParseAutosellPolicy(name)
	if !ok {
		f.log.Warn("unknown autosell policy, using none",
			zap.String("policy", name),
			zap.Any("allowed", AutosellPolicies))
	}
	f.policy = p
	return p
}

func (f *Facility) record(label string, amount float64) {
	f.ledger = append(f.ledger, LedgerEntry{Month: f.ageMonths, Label: label, Amount: animal.Round2(amount)})
}

// Buy units animals of breed at the purchasable age class at or below age.
// Units beyond the free slots are not bought. Free purchases book nothing.
func (f *Facility) BuyAnimals(breedName string, age, units int, free bool) (int, error) {
	b, ok := f.tmpl.Breed(breedName)
	if !ok {
		return 0, fmt.Errorf("%w: %s at %s", ErrUnknownBreed, breedName, f.tmpl.ID)
	}
	ageStd, err := animal.SnapAge(b.BuyPrices, age)
	if err != nil {
		return 0, fmt.Errorf("buy %s: %w", breedName, err)
	}
	if units <= 0 {
		return 0, nil
	}
	if empty := f.EmptySlots(); units > empty {
		f.log.Debug("purchase capped to free slots",
			zap.String("breed", breedName),
			zap.Int("requested", units),
			zap.Int("empty", empty))
		units = empty
	}
	if units <= 0 {
		return 0, nil
	}

	c, err := animal.NewCohort(b, ageStd, units)
	if err != nil {
		return 0, err
	}
	if err := c.SetAvailableInputs(f.availableInputs()); err != nil {
		return 0, err
	}
	if !free {
		f.record(b.Name, -(c.BuyPrice+c.TransportPrice)*float64(units))
	}
	f.cohorts = append(f.cohorts, c)
	return units, nil
}

// Manual purchase of amount liters of an input
func (f *Facility) BuyFill(fill animal.FillType, amount float64) (bool, error) {
	fill = animal.NewFillType(string(fill))
	price, ok := f.priceIn(fill)
	if !ok {
		return false, nil
	}
	f.record(string(fill), -price*amount*f.adjustment(fill))
	f.inventory[fill] += amount
	return true, f.updateAnimalFill()
}

// Add capacity to the storage slot for fill. False when the facility
// has no such storage.
func (f *Facility) BuyExtension(e Extension, fill animal.FillType, addCapacity float64) bool {
	idx := -1
	for i := range f.storage {
		if f.storage[i].FillType == fill {
			idx = i
		}
	}
	if idx < 0 {
		f.log.Warn("no storage to extend", zap.String("extension", e.ID), zap.String("fill", string(fill)))
		return false
	}
	f.storage[idx].Capacity += addCapacity
	f.record(e.ID, -e.Price)
	f.extensions = append(f.extensions, e)
	return true
}

func (f *Facility) BuyManureHeap() bool {
	return f.BuyExtension(ManureHeap, animal.Manure, ManureHeapCapacity)
}

// Sell up to units animals from c. Returns the units sold.
func (f *Facility) SellAnimals(c *animal.Cohort, units int) int {
	if !f.holds(c) || units <= 0 {
		return 0
	}
	n := units
	if c.Units < n {
		n = c.Units
	}
	f.record(c.Breed.Name, c.NetSalePrice()*float64(n))
	c.Units -= n
	if c.Units <= 0 {
		if c.Units < 0 {
			f.log.Warn("cohort units below zero after sale",
				zap.String("breed", c.Breed.Name), zap.Int("units", c.Units))
		}
		f.remove(c)
	}
	return n
}

func (f *Facility) holds(c *animal.Cohort) bool {
	for _, x := range f.cohorts {
		if x == c {
			return true
		}
	}
	return false
}

func (f *Facility) remove(c *animal.Cohort) {
	for i, x := range f.cohorts {
		if x == c {
			f.cohorts = append(f.cohorts[:i], f.cohorts[i+1:]...)
			return
		}
	}
}

// first listed price of an input
func (f *Facility) priceIn(fill animal.FillType) (float64, bool) {
	for _, p := range f.availableIn {
		if p.FillType == fill {
			return p.PricePerLiter, true
		}
	}
	return 0, false
}

// first listed storage price of an output
func (f *Facility) priceOut(fill animal.FillType) (float64, bool) {
	for _, s := range f.storage {
		if s.FillType == fill {
			return s.PricePerLiter, true
		}
	}
	return 0, false
}

func (f *Facility) adjustment(fill animal.FillType) float64 {
	if fill == animal.Forage {
		return f.ForageAdjustment
	}
	return 1
}

// Purchasable inputs with stock on hand
func (f *Facility) availableInputs() []animal.FillType {
	allowed := make(map[animal.FillType]bool, len(f.availableIn))
	for _, p := range f.availableIn {
		allowed[p.FillType] = true
	}
	var avail []animal.FillType
	for fill, qty := range f.inventory {
		if qty > 0 && allowed[fill] {
			avail = append(avail, fill)
		}
	}
	sort.Slice(avail, func(i, j int) bool { return avail[i] < avail[j] })
	return avail
}

func (f *Facility) updateAnimalFill() error {
	avail := f.availableInputs()
	for _, c := range f.cohorts {
		if err := c.SetAvailableInputs(avail); err != nil {
			return err
		}
	}
	return nil
}

// Independent deep copy. Catalog data is shared.
func (f *Facility) Clone() *Facility {
	n := *f
	n.storage = append([]StorageSlot(nil), f.storage...)
	n.food = append([]animal.FillType(nil), f.food...)
	n.availableIn = append([]FillPrice(nil), f.availableIn...)
	n.extensions = append([]Extension(nil), f.extensions...)
	n.ledger = append(Ledger(nil), f.ledger...)
	n.inventory = make(map[animal.FillType]float64, len(f.inventory))
	for k, v := range f.inventory {
		n.inventory[k] = v
	}
	n.cohorts = make([]*animal.Cohort, len(f.cohorts))
	for i, c := range f.cohorts {
		n.cohorts[i] = c.Clone()
	}
	return &n
}

// Clone with a different logger
func (f *Facility) CloneWithLogger(log *zap.Logger) *Facility {
	n := f.Clone()
	if log != nil {
		n.log = log.With(zap.String("facility", f.tmpl.ID))
	}
	return n
}
