// catalog project catalog.go
//
// The economy data for animal facilities: fills, animal types, breeds and
// the facilities themselves
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
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blgolden/animalProd/animal"
	"github.com/blgolden/animalProd/facility"

	"go.uber.org/zap"
)

type Fill struct {
	Name          animal.FillType
	Title         string
	PricePerLiter float64
}

// Storage row of a facility before prices are attached
type Capacity struct {
	FillType animal.FillType
	Liters   float64
}

// A facility as listed in the shop
type Point struct {
	ID           string
	PlaceType    string
	Name         string
	Price        float64
	UpkeepPrice  float64
	Type         string // animal type housed
	UnitMax      int
	FoodCapacity float64
	DefaultFood  animal.FillType
	PalletFill   animal.FillType
	PalletMaxNo  int
	WaterAuto    bool
	Capacity     []Capacity
}

// One component of a mixed food, e.g. SILAGE in FORAGE
type Recipe struct {
	FillType  animal.FillType // the mixed food
	Component animal.FillType
	PctMin    float64
	PctMax    float64
}

type Catalog struct {
	Fills       map[animal.FillType]Fill
	AnimalTypes map[string]*animal.AnimalType
	Breeds      map[string][]*animal.Breed // by animal type, sorted by name
	Points      []Point                    // sorted by id
	Recipes     []Recipe
}

// Components of the mixed food fill, nil when the catalog has no recipe for it
func (c *Catalog) Components(fill animal.FillType) []animal.FillType {
	var out []animal.FillType
	for _, r := range c.Recipes {
		if r.FillType == fill {
			out = append(out, r.Component)
		}
	}
	return out
}

// Load a catalog file. .db, .sqlite and .sqlite3 files are sqlite databases,
// anything else is hjson.
func Load(ctx context.Context, path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("no catalog file")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSqlite(ctx, path)
	}
	return LoadHjson(path)
}

// Breed by name across all animal types
func (c *Catalog) Breed(name string) (*animal.Breed, bool) {
	for _, bs := range c.Breeds {
		for _, b := range bs {
			if b.Name == name {
				return b, true
			}
		}
	}
	return nil, false
}

func (c *Catalog) Point(id string) (Point, bool) {
	for _, p := range c.Points {
		if p.ID == id {
			return p, true
		}
	}
	return Point{}, false
}

func (c *Catalog) price(fill animal.FillType) float64 {
	return c.Fills[fill].PricePerLiter
}

// Storage capacity of the pallet area of a facility
func PalletCapacity(fill animal.FillType, maxNo int) float64 {
	switch fill {
	case "EGG":
		return float64(maxNo) * 1400
	case "WOOL":
		return float64(maxNo) * 1000
	}
	return 0
}

// Facility template for point p
func (c *Catalog) Template(p Point) (facility.Template, error) {
	at, ok := c.AnimalTypes[p.Type]
	if !ok {
		return facility.Template{}, fmt.Errorf("facility %s: unknown animal type %q", p.ID, p.Type)
	}
	t := facility.Template{
		ID:               p.ID,
		Name:             p.Name,
		PlaceType:        p.PlaceType,
		Price:            p.Price,
		UpkeepPrice:      p.UpkeepPrice,
		AnimalType:       at,
		Breeds:           c.Breeds[p.Type],
		UnitMax:          p.UnitMax,
		FoodCapacity:     p.FoodCapacity,
		DefaultFood:      p.DefaultFood,
		PalletFill:       p.PalletFill,
		PalletMaxNo:      p.PalletMaxNo,
		WaterAuto:        p.WaterAuto,
		ForageAdjustment: 1,
	}
	if p.PalletFill != "" {
		t.Storage = append(t.Storage, facility.StorageSlot{
			FillType:      p.PalletFill,
			Capacity:      PalletCapacity(p.PalletFill, p.PalletMaxNo),
			PricePerLiter: c.price(p.PalletFill),
		})
	}
	for _, cp := range p.Capacity {
		t.Storage = append(t.Storage, facility.StorageSlot{
			FillType:      cp.FillType,
			Capacity:      cp.Liters,
			PricePerLiter: c.price(cp.FillType),
		})
	}
	if mix, ok := DefaultForageMix(p.ID); ok {
		adj, err := ForageAdjustment(c.Fills, c.Components(animal.Forage), mix)
		if err != nil {
			return facility.Template{}, fmt.Errorf("facility %s: %w", p.ID, err)
		}
		t.ForageAdjustment = adj
	}
	return t, nil
}

// Templates of every facility keyed by id
func (c *Catalog) Templates() (map[string]facility.Template, error) {
	out := make(map[string]facility.Template, len(c.Points))
	for _, p := range c.Points {
		t, err := c.Template(p)
		if err != nil {
			return nil, err
		}
		out[p.ID] = t
	}
	return out, nil
}

// A new facility for every template
func (c *Catalog) Facilities(log *zap.Logger) (map[string]*facility.Facility, error) {
	ts, err := c.Templates()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*facility.Facility, len(ts))
	for id, t := range ts {
		out[id] = facility.New(t, log)
	}
	return out, nil
}

// The rows shared by the catalog readers before they are tied together
type rawAnimal struct {
	subtype, typ         string
	reproMinAge          int
	reproDuration        int
	reproMinHealth       float64
	fillIn, fillOut      []animal.FeedRow
	buy, sell, transport []animal.PriceBreakpoint
}

type rawType struct {
	name        string
	consumption string
	groups      []animal.FoodGroup
	fills       []animal.GroupFill // prices filled in by build
}

type rawCatalog struct {
	fills   []Fill
	types   map[string]*rawType
	animals map[string]*rawAnimal
	points  []Point
	recipes []Recipe
}

func newRaw() *rawCatalog {
	return &rawCatalog{types: make(map[string]*rawType), animals: make(map[string]*rawAnimal)}
}

func (r *rawCatalog) typ(name string) *rawType {
	t, ok := r.types[name]
	if !ok {
		t = &rawType{name: name}
		r.types[name] = t
	}
	return t
}

func (r *rawCatalog) breed(subtype string) *rawAnimal {
	a, ok := r.animals[subtype]
	if !ok {
		a = &rawAnimal{subtype: subtype}
		r.animals[subtype] = a
	}
	return a
}

func (r *rawCatalog) build() (*Catalog, error) {
	c := &Catalog{
		Fills:       make(map[animal.FillType]Fill, len(r.fills)),
		AnimalTypes: make(map[string]*animal.AnimalType, len(r.types)),
		Breeds:      make(map[string][]*animal.Breed),
	}
	for _, f := range r.fills {
		c.Fills[f.Name] = f
	}

	for name, rt := range r.types {
		mode, err := animal.ParseConsumptionMode(rt.consumption)
		if err != nil {
			return nil, fmt.Errorf("animal type %s: %w", name, err)
		}
		at := &animal.AnimalType{Name: name, Consumption: mode, FoodGroups: rt.groups}
		for _, gf := range rt.fills {
			gf.FillType = animal.NewFillType(string(gf.FillType))
			gf.PricePerLiter = c.price(gf.FillType)
			at.GroupFills = append(at.GroupFills, gf)
		}
		c.AnimalTypes[name] = at
	}

	for subtype, ra := range r.animals {
		at, ok := c.AnimalTypes[ra.typ]
		if !ok {
			return nil, fmt.Errorf("breed %s: unknown animal type %q", subtype, ra.typ)
		}
		b, err := animal.NewBreed(animal.BreedSpec{
			Name:                subtype,
			Type:                at,
			Reproduces:          ra.reproDuration > 0,
			ReproMinAgeMonths:   ra.reproMinAge,
			ReproDurationMonths: ra.reproDuration,
			ReproMinHealth:      ra.reproMinHealth,
			FeedIn:              ra.fillIn,
			FeedOut:             ra.fillOut,
			BuyPrices:           ra.buy,
			SellPrices:          ra.sell,
			TransportPrices:     ra.transport,
		})
		if err != nil {
			return nil, err
		}
		c.Breeds[ra.typ] = append(c.Breeds[ra.typ], b)
	}
	for _, bs := range c.Breeds {
		sort.Slice(bs, func(i, j int) bool { return bs[i].Name < bs[j].Name })
	}

	for _, rc := range r.recipes {
		rc.FillType = animal.NewFillType(string(rc.FillType))
		rc.Component = animal.NewFillType(string(rc.Component))
		c.Recipes = append(c.Recipes, rc)
	}

	c.Points = append(c.Points, r.points...)
	sort.Slice(c.Points, func(i, j int) bool { return c.Points[i].ID < c.Points[j].ID })
	return c, nil
}
