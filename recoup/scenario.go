// scenario
//
// Reading batches of recoupment requests from an hjson file
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
package recoup

import (
	"fmt"
	"os"

	"github.com/blgolden/animalProd/animal"

	hjson "github.com/hjson/hjson-go"
)

/*
A scenario file looks like

	{
	  defaults: {
	    facility: cowBarnBig
	    breed: COW_SWISS_BROWN
	    stock: 80
	    food: [ "FORAGE" ]
	    manureHeap: true
	  }
	  scenarios: [
	    { name: "forage age 0" }
	    { name: "forage age 24", buyAge: 24 }
	  ]
	}

Every scenario starts from the defaults and overrides what it names.
*/

func LoadScenarios(path string) ([]Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario file: %w", err)
	}
	reqs, err := ParseScenarios(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reqs, nil
}

func ParseScenarios(data []byte) ([]Request, error) {
	var param map[string]interface{}
	if err := hjson.Unmarshal(data, &param); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hjson: %w", err)
	}

	base := DefaultRequest()
	if d, ok := param["defaults"].(map[string]interface{}); ok {
		if err := applyScenario(&base, d); err != nil {
			return nil, fmt.Errorf("defaults: %w", err)
		}
	}

	array, ok := param["scenarios"].([]interface{})
	if !ok {
		// a file of defaults alone is one scenario
		if _, ok := param["defaults"]; ok {
			return []Request{base}, nil
		}
		return nil, fmt.Errorf("'scenarios:' key not found")
	}

	reqs := make([]Request, 0, len(array))
	for i := range array {
		m, ok := array[i].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("scenario %d is not an object", i)
		}
		r := base
		r.Food = append([]animal.FillType(nil), base.Food...)
		if err := applyScenario(&r, m); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

func applyScenario(r *Request, m map[string]interface{}) error {
	for k, v := range m {
		var err error
		switch k {
		case "name":
			r.Name, err = asString(k, v)
		case "facility":
			r.FacilityID, err = asString(k, v)
		case "breed":
			r.Breed, err = asString(k, v)
		case "autosell":
			r.Autosell, err = asString(k, v)
		case "stock":
			r.StockAmount, err = asInt(k, v)
		case "buyAge":
			r.BuyAgeMonths, err = asInt(k, v)
		case "trailingMonths":
			r.TrailingWindowMonths, err = asInt(k, v)
		case "extraMonths":
			r.ExtraMonths, err = asInt(k, v)
		case "manureHeap":
			r.PurchaseStorageExtension, err = asBool(k, v)
		case "autoBuy":
			r.AutoBuy, err = asBool(k, v)
		case "autoSell":
			r.AutoSell, err = asBool(k, v)
		case "food":
			r.Food, err = asFills(k, v)
		default:
			err = fmt.Errorf("unknown key %q", k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func asString(k string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: want a string, got %v", k, v)
	}
	return s, nil
}

func asInt(k string, v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, fmt.Errorf("%s: want a whole number, got %v", k, v)
	}
	return int(f), nil
}

func asBool(k string, v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: want true or false, got %v", k, v)
	}
	return b, nil
}

// A list of fill types, or a single one
func asFills(k string, v interface{}) ([]animal.FillType, error) {
	if s, ok := v.(string); ok {
		return []animal.FillType{animal.NewFillType(s)}, nil
	}
	array, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: want a list of fill types, got %v", k, v)
	}
	fills := make([]animal.FillType, 0, len(array))
	for _, a := range array {
		s, err := asString(k, a)
		if err != nil {
			return nil, err
		}
		fills = append(fills, animal.NewFillType(s))
	}
	return fills, nil
}
