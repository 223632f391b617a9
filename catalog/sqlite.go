// sqlite
//
// Catalogs scraped into a sqlite database
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
	"database/sql"
	"fmt"

	"github.com/blgolden/animalProd/animal"

	_ "modernc.org/sqlite"
)

// Tables read by FromDB
const Schema = `
CREATE TABLE IF NOT EXISTS fill (
	name TEXT PRIMARY KEY,
	title TEXT,
	show INTEGER,
	unit TEXT,
	mass_l REAL,
	price_l REAL
);
CREATE TABLE IF NOT EXISTS animal (
	subtype TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	reprod_agemin_mo INTEGER,
	reprod_duration_mo INTEGER,
	reprod_healthmin REAL
);
CREATE TABLE IF NOT EXISTS animal_price (
	subtype TEXT NOT NULL,
	type TEXT,
	price_type TEXT NOT NULL,
	age_mo INTEGER NOT NULL,
	price_unit REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS animal_fill (
	subtype TEXT NOT NULL,
	type TEXT,
	fill_type TEXT NOT NULL,
	direction TEXT NOT NULL,
	age_mo INTEGER NOT NULL,
	liter_day REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS animal_food (
	type TEXT PRIMARY KEY,
	consumption TEXT
);
CREATE TABLE IF NOT EXISTS animal_food_group (
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	prod_wgt REAL,
	eat_wgt REAL
);
CREATE TABLE IF NOT EXISTS animal_food_fill (
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	fill_type TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS animal_food_recipe (
	fill_type TEXT,
	name TEXT,
	title TEXT,
	fill_types TEXT,
	pct_min REAL,
	pct_max REAL
);
CREATE TABLE IF NOT EXISTS animal_point (
	id TEXT PRIMARY KEY,
	place_type TEXT,
	name TEXT,
	price REAL,
	upkeep_price REAL,
	type TEXT,
	unit_max INTEGER,
	food_cap REAL,
	food_default TEXT,
	pallet_fill TEXT,
	pallet_maxno INTEGER,
	water_auto BOOLEAN
);
CREATE TABLE IF NOT EXISTS animal_capacity (
	point_id TEXT NOT NULL,
	fill_type TEXT NOT NULL,
	capacity REAL
);
`

func OpenSqlite(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()
	c, err := FromDB(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read a catalog from the tables in Schema
func FromDB(ctx context.Context, db *sql.DB) (*Catalog, error) {
	r := newRaw()

	err := query(ctx, db, `SELECT name, title, price_l FROM fill ORDER BY name`, func(rows *sql.Rows) error {
		var name string
		var title sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&name, &title, &price); err != nil {
			return err
		}
		r.fills = append(r.fills, Fill{Name: animal.NewFillType(name), Title: title.String, PricePerLiter: price.Float64})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}

	err = query(ctx, db, `SELECT type, consumption FROM animal_food`, func(rows *sql.Rows) error {
		var typ string
		var consumption sql.NullString
		if err := rows.Scan(&typ, &consumption); err != nil {
			return err
		}
		r.typ(typ).consumption = consumption.String
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_food: %w", err)
	}

	err = query(ctx, db, `SELECT type, title, prod_wgt, eat_wgt FROM animal_food_group ORDER BY rowid`, func(rows *sql.Rows) error {
		var typ, title string
		var prod, eat sql.NullFloat64
		if err := rows.Scan(&typ, &title, &prod, &eat); err != nil {
			return err
		}
		t := r.typ(typ)
		t.groups = append(t.groups, animal.FoodGroup{Title: title, ProductionWeight: prod.Float64, EatWeight: eat.Float64})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_food_group: %w", err)
	}

	err = query(ctx, db, `SELECT type, title, fill_type FROM animal_food_fill ORDER BY rowid`, func(rows *sql.Rows) error {
		var typ, title, fill string
		if err := rows.Scan(&typ, &title, &fill); err != nil {
			return err
		}
		t := r.typ(typ)
		t.fills = append(t.fills, animal.GroupFill{Title: title, FillType: animal.FillType(fill)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_food_fill: %w", err)
	}

	err = query(ctx, db, `SELECT fill_type, fill_types, pct_min, pct_max FROM animal_food_recipe ORDER BY rowid`, func(rows *sql.Rows) error {
		var fill, component string
		var pctMin, pctMax sql.NullFloat64
		if err := rows.Scan(&fill, &component, &pctMin, &pctMax); err != nil {
			return err
		}
		r.recipes = append(r.recipes, Recipe{FillType: animal.FillType(fill), Component: animal.FillType(component), PctMin: pctMin.Float64, PctMax: pctMax.Float64})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_food_recipe: %w", err)
	}

	err = query(ctx, db, `SELECT subtype, type, reprod_agemin_mo, reprod_duration_mo, reprod_healthmin FROM animal`, func(rows *sql.Rows) error {
		var subtype, typ string
		var minAge, duration sql.NullInt64
		var health sql.NullFloat64
		if err := rows.Scan(&subtype, &typ, &minAge, &duration, &health); err != nil {
			return err
		}
		a := r.breed(subtype)
		a.typ = typ
		a.reproMinAge = int(minAge.Int64)
		a.reproDuration = int(duration.Int64)
		a.reproMinHealth = health.Float64
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal: %w", err)
	}

	err = query(ctx, db, `SELECT subtype, price_type, age_mo, price_unit FROM animal_price ORDER BY subtype, age_mo, rowid`, func(rows *sql.Rows) error {
		var subtype, kind string
		var bp animal.PriceBreakpoint
		if err := rows.Scan(&subtype, &kind, &bp.AgeMonths, &bp.Price); err != nil {
			return err
		}
		a := r.breed(subtype)
		switch kind {
		case "buy":
			a.buy = append(a.buy, bp)
		case "sell":
			a.sell = append(a.sell, bp)
		case "transport":
			a.transport = append(a.transport, bp)
		default:
			return fmt.Errorf("%s: unknown price type %q", subtype, kind)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_price: %w", err)
	}

	err = query(ctx, db, `SELECT subtype, fill_type, direction, age_mo, liter_day FROM animal_fill ORDER BY subtype, age_mo, rowid`, func(rows *sql.Rows) error {
		var subtype, fill, direction string
		var row animal.FeedRow
		if err := rows.Scan(&subtype, &fill, &direction, &row.AgeMonths, &row.LiterDay); err != nil {
			return err
		}
		row.FillType = animal.FillType(fill)
		a := r.breed(subtype)
		switch direction {
		case "in":
			a.fillIn = append(a.fillIn, row)
		case "out":
			a.fillOut = append(a.fillOut, row)
		default:
			return fmt.Errorf("%s: unknown direction %q", subtype, direction)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_fill: %w", err)
	}

	byID := make(map[string]int)
	err = query(ctx, db, `SELECT id, place_type, name, price, upkeep_price, type, unit_max, food_cap, food_default, pallet_fill, pallet_maxno, CAST(water_auto AS INTEGER) FROM animal_point`, func(rows *sql.Rows) error {
		var (
			id                     string
			place, name, typ       sql.NullString
			food, pallet           sql.NullString
			price, upkeep, foodCap sql.NullFloat64
			unitMax, maxNo         sql.NullInt64
			water                  sql.NullInt64
		)
		if err := rows.Scan(&id, &place, &name, &price, &upkeep, &typ, &unitMax, &foodCap, &food, &pallet, &maxNo, &water); err != nil {
			return err
		}
		p := Point{
			ID:           id,
			PlaceType:    place.String,
			Name:         name.String,
			Price:        price.Float64,
			UpkeepPrice:  upkeep.Float64,
			Type:         typ.String,
			UnitMax:      int(unitMax.Int64),
			FoodCapacity: foodCap.Float64,
			PalletMaxNo:  int(maxNo.Int64),
			WaterAuto:    water.Valid && water.Int64 != 0,
		}
		if food.Valid {
			p.DefaultFood = animal.NewFillType(food.String)
		}
		if pallet.Valid && pallet.String != "" {
			p.PalletFill = animal.NewFillType(pallet.String)
		}
		byID[id] = len(r.points)
		r.points = append(r.points, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_point: %w", err)
	}

	err = query(ctx, db, `SELECT point_id, fill_type, capacity FROM animal_capacity ORDER BY rowid`, func(rows *sql.Rows) error {
		var id, fill string
		var liters sql.NullFloat64
		if err := rows.Scan(&id, &fill, &liters); err != nil {
			return err
		}
		i, ok := byID[id]
		if !ok {
			return fmt.Errorf("capacity for unknown facility %q", id)
		}
		r.points[i].Capacity = append(r.points[i].Capacity, Capacity{FillType: animal.NewFillType(fill), Liters: liters.Float64})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("animal_capacity: %w", err)
	}

	return r.build()
}

func query(ctx context.Context, db *sql.DB, q string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
