// hjson
//
// Catalog files written by hand. Table rows are comma separated strings.
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
	"os"
	"strconv"
	"strings"

	"github.com/blgolden/animalProd/animal"

	hjson "github.com/hjson/hjson-go"
)

func LoadHjson(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}
	c, err := ParseHjson(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Keys: fills, animalTypes, breeds, points and the optional recipes
func ParseHjson(data []byte) (*Catalog, error) {
	var param map[string]interface{}
	if err := hjson.Unmarshal(data, &param); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hjson: %w", err)
	}
	r := newRaw()

	// name, title, price per liter
	rows, err := rowList(param, "fills", 3)
	if err != nil {
		return nil, err
	}
	for _, s := range rows {
		price, err := strconv.ParseFloat(s[2], 64)
		if err != nil {
			return nil, fmt.Errorf("fills %s: %w", s[0], err)
		}
		r.fills = append(r.fills, Fill{Name: animal.NewFillType(s[0]), Title: s[1], PricePerLiter: price})
	}

	// mixed food, component, minimum share, maximum share
	recipes, err := rowList(param, "recipes", 4)
	if err != nil {
		return nil, err
	}
	for _, s := range recipes {
		pct, err := floats(s[2:])
		if err != nil {
			return nil, fmt.Errorf("recipes %s: %w", s[1], err)
		}
		r.recipes = append(r.recipes, Recipe{FillType: animal.FillType(s[0]), Component: animal.FillType(s[1]), PctMin: pct[0], PctMax: pct[1]})
	}

	types, ok := param["animalTypes"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("'animalTypes:' key not found")
	}
	for name, v := range types {
		if err := parseAnimalType(r.typ(name), v); err != nil {
			return nil, fmt.Errorf("animalTypes %s: %w", name, err)
		}
	}

	breeds, ok := param["breeds"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("'breeds:' key not found")
	}
	for name, v := range breeds {
		if err := parseBreed(r.breed(name), v); err != nil {
			return nil, fmt.Errorf("breeds %s: %w", name, err)
		}
	}

	points, ok := param["points"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("'points:' key not found")
	}
	for id, v := range points {
		p, err := parsePoint(id, v)
		if err != nil {
			return nil, fmt.Errorf("points %s: %w", id, err)
		}
		r.points = append(r.points, p)
	}

	return r.build()
}

func parseAnimalType(t *rawType, v interface{}) error {
	m, ok := v.(map[string]interface{})
	if !ok {
		return fmt.Errorf("not an object")
	}
	t.consumption, _ = m["consumption"].(string)

	// title, production weight, eat weight
	groups, err := rowList(m, "groups", 3)
	if err != nil {
		return err
	}
	for _, s := range groups {
		w, err := floats(s[1:])
		if err != nil {
			return fmt.Errorf("group %s: %w", s[0], err)
		}
		t.groups = append(t.groups, animal.FoodGroup{Title: s[0], ProductionWeight: w[0], EatWeight: w[1]})
	}

	// title, fill type
	fills, err := rowList(m, "groupFills", 2)
	if err != nil {
		return err
	}
	for _, s := range fills {
		t.fills = append(t.fills, animal.GroupFill{Title: s[0], FillType: animal.FillType(s[1])})
	}
	return nil
}

func parseBreed(a *rawAnimal, v interface{}) error {
	m, ok := v.(map[string]interface{})
	if !ok {
		return fmt.Errorf("not an object")
	}
	if a.typ, ok = m["type"].(string); !ok {
		return fmt.Errorf("'type:' key not found")
	}

	// minimum age, duration, minimum health
	if repro, ok := m["reproduction"].(string); ok {
		s := split(repro)
		if len(s) != 3 {
			return fmt.Errorf("reproduction wants 3 fields, got %q", repro)
		}
		var err error
		if a.reproMinAge, err = strconv.Atoi(s[0]); err != nil {
			return fmt.Errorf("reproduction: %w", err)
		}
		if a.reproDuration, err = strconv.Atoi(s[1]); err != nil {
			return fmt.Errorf("reproduction: %w", err)
		}
		if a.reproMinHealth, err = strconv.ParseFloat(s[2], 64); err != nil {
			return fmt.Errorf("reproduction: %w", err)
		}
	}

	var err error
	if a.fillIn, err = feedRows(m, "fillIn"); err != nil {
		return err
	}
	if a.fillOut, err = feedRows(m, "fillOut"); err != nil {
		return err
	}
	if a.buy, err = priceRows(m, "buy"); err != nil {
		return err
	}
	if a.sell, err = priceRows(m, "sell"); err != nil {
		return err
	}
	a.transport, err = priceRows(m, "transport")
	return err
}

func parsePoint(id string, v interface{}) (Point, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return Point{}, fmt.Errorf("not an object")
	}
	p := Point{ID: id}
	p.Name, _ = m["name"].(string)
	p.PlaceType, _ = m["placeType"].(string)
	p.Price, _ = m["price"].(float64)
	p.UpkeepPrice, _ = m["upkeep"].(float64)
	p.FoodCapacity, _ = m["foodCapacity"].(float64)
	p.WaterAuto, _ = m["waterAuto"].(bool)
	if p.Type, ok = m["type"].(string); !ok {
		return Point{}, fmt.Errorf("'type:' key not found")
	}
	if n, ok := m["unitMax"].(float64); ok {
		p.UnitMax = int(n)
	}
	if n, ok := m["palletMaxNo"].(float64); ok {
		p.PalletMaxNo = int(n)
	}
	if s, ok := m["foodDefault"].(string); ok {
		p.DefaultFood = animal.NewFillType(s)
	}
	if s, ok := m["palletFill"].(string); ok {
		p.PalletFill = animal.NewFillType(s)
	}

	// fill type, liters
	rows, err := rowList(m, "capacity", 2)
	if err != nil {
		return Point{}, err
	}
	for _, s := range rows {
		l, err := strconv.ParseFloat(s[1], 64)
		if err != nil {
			return Point{}, fmt.Errorf("capacity %s: %w", s[0], err)
		}
		p.Capacity = append(p.Capacity, Capacity{FillType: animal.NewFillType(s[0]), Liters: l})
	}
	return p, nil
}

// fill type, age in months, liters per day
func feedRows(m map[string]interface{}, key string) ([]animal.FeedRow, error) {
	rows, err := rowList(m, key, 3)
	if err != nil {
		return nil, err
	}
	out := make([]animal.FeedRow, 0, len(rows))
	for _, s := range rows {
		age, err := strconv.Atoi(s[1])
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", key, s[0], err)
		}
		l, err := strconv.ParseFloat(s[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", key, s[0], err)
		}
		out = append(out, animal.FeedRow{FillType: animal.FillType(s[0]), AgeMonths: age, LiterDay: l})
	}
	return out, nil
}

// age in months, price per animal
func priceRows(m map[string]interface{}, key string) ([]animal.PriceBreakpoint, error) {
	rows, err := rowList(m, key, 2)
	if err != nil {
		return nil, err
	}
	out := make([]animal.PriceBreakpoint, 0, len(rows))
	for _, s := range rows {
		age, err := strconv.Atoi(s[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		price, err := strconv.ParseFloat(s[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, animal.PriceBreakpoint{AgeMonths: age, Price: price})
	}
	return out, nil
}

// The rows under key, each split into n fields. A missing key is no rows.
func rowList(m map[string]interface{}, key string, n int) ([][]string, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	array, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("'%s:' is not a list", key)
	}
	rows := make([][]string, 0, len(array))
	for i := range array {
		str, ok := array[i].(string)
		if !ok {
			return nil, fmt.Errorf("%s row %d is not a string", key, i)
		}
		s := split(str)
		if len(s) != n {
			return nil, fmt.Errorf("%s row %q wants %d fields", key, str, n)
		}
		rows = append(rows, s)
	}
	return rows, nil
}

func split(row string) []string {
	s := strings.Split(row, ",")
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
	return s
}

func floats(s []string) ([]float64, error) {
	out := make([]float64, len(s))
	for i := range s {
		var err error
		if out[i], err = strconv.ParseFloat(s[i], 64); err != nil {
			return nil, err
		}
	}
	return out, nil
}
