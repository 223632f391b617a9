package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/blgolden/animalProd/animal"
	"github.com/blgolden/animalProd/facility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sample(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadHjson("testdata/sample.hjson")
	require.NoError(t, err)
	return c
}

// Write the sample tables to a sqlite file in a temp dir
func sampleDB(t *testing.T) string {
	t.Helper()
	inserts, err := os.ReadFile("testdata/sample.sql")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "economy.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	_, err = db.Exec(string(inserts))
	require.NoError(t, err)
	return path
}

func TestLoadHjson(t *testing.T) {
	c := sample(t)

	assert.Len(t, c.Fills, 11)
	assert.Equal(t, 0.12, c.Fills["SILAGE"].PricePerLiter)
	assert.Equal(t, "Total Mixed Ration", c.Fills[animal.Forage].Title)

	cow := c.AnimalTypes["COW"]
	require.NotNil(t, cow)
	assert.Equal(t, animal.Parallel, cow.Consumption)
	require.Len(t, cow.FoodGroups, 2)
	assert.Equal(t, animal.FoodGroup{Title: "tmr", ProductionWeight: 1, EatWeight: 0.8}, cow.FoodGroups[0])
	price, ok := cow.FillPrice("DRYGRASS_WINDROW")
	assert.True(t, ok)
	assert.Equal(t, 0.2, price)
	assert.Equal(t, animal.Serial, c.AnimalTypes["CHICKEN"].Consumption)

	b, ok := c.Breed("HOLSTEIN")
	require.True(t, ok)
	assert.Same(t, cow, b.Type)
	assert.True(t, b.Reproduces)
	assert.Equal(t, 13, b.ReproMinAgeMonths)
	assert.Equal(t, 12, b.ReproDurationMonths)
	assert.Len(t, b.BuyPrices, 2)
	assert.Len(t, b.SellPrices, 61)
	assert.Equal(t, 24, b.MatureSellAge())
	assert.True(t, b.Requires(animal.Straw))

	_, ok = c.Breed("ANGUS")
	assert.False(t, ok)

	ids := make([]string, len(c.Points))
	for i, p := range c.Points {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"chickenBarnBig", "cowBarnBig", "cowBarnBigVector"}, ids)

	p, ok := c.Point("cowBarnBig")
	require.True(t, ok)
	assert.Equal(t, "Cow Barn (Big)", p.Name)
	assert.Equal(t, 160, p.UnitMax)
	assert.True(t, p.WaterAuto)
	assert.Equal(t, animal.Forage, p.DefaultFood)
	assert.Equal(t, []Capacity{{"STRAW", 50000}, {"MILK", 60000}, {"MANURE", 200000}}, p.Capacity)
}

func TestParseHjson_Errors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":        `{ fills: [ `,
		"no types":      `{ fills: [] }`,
		"short row":     "{\n  fills: [ \"FORAGE, 0.1\" ]\n}",
		"bad price":     "{\n  fills: [ \"FORAGE, Forage, cheap\" ]\n}",
		"bad consumer":  "{\n  animalTypes: {\n    COW: {\n      consumption: grazing\n    }\n  }\n  breeds: {}\n  points: {}\n}",
		"unknown type":  "{\n  animalTypes: {}\n  breeds: {\n    HOLSTEIN: {\n      type: COW\n    }\n  }\n  points: {}\n}",
		"no point type": "{\n  animalTypes: {}\n  breeds: {}\n  points: {\n    barn: {\n      unitMax: 10\n    }\n  }\n}",
	} {
		_, err := ParseHjson([]byte(data))
		assert.Error(t, err, name)
	}

	_, err := LoadHjson("testdata/missing.hjson")
	assert.Error(t, err)
}

func TestOpenSqlite_MatchesHjson(t *testing.T) {
	fromDB, err := OpenSqlite(context.Background(), sampleDB(t))
	require.NoError(t, err)

	assert.Equal(t, sample(t), fromDB)
}

func TestLoad_ByExtension(t *testing.T) {
	ctx := context.Background()

	c, err := Load(ctx, "testdata/sample.hjson")
	require.NoError(t, err)
	assert.Len(t, c.Points, 3)

	c, err = Load(ctx, sampleDB(t))
	require.NoError(t, err)
	assert.Len(t, c.Points, 3)

	// an empty database has none of the tables
	_, err = Load(ctx, filepath.Join(t.TempDir(), "empty.sqlite"))
	assert.ErrorContains(t, err, "no such table")

	_, err = Load(ctx, "")
	assert.Error(t, err)
}

func TestFromDB_Errors(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	_, err = FromDB(ctx, db)
	assert.ErrorContains(t, err, "fill")

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	c, err := FromDB(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, c.Points)

	_, err = db.Exec(`INSERT INTO animal_price (subtype, price_type, age_mo, price_unit) VALUES ('HOLSTEIN', 'rent', 0, 1)`)
	require.NoError(t, err)
	_, err = FromDB(ctx, db)
	assert.ErrorContains(t, err, "unknown price type")
}

func TestTemplate_Pallets(t *testing.T) {
	c := sample(t)
	p, _ := c.Point("chickenBarnBig")

	tmpl, err := c.Template(p)
	require.NoError(t, err)
	assert.Equal(t, []facility.StorageSlot{
		{FillType: "EGG", Capacity: 16800, PricePerLiter: 0.3},
		{FillType: "WATER", Capacity: 10000, PricePerLiter: 0},
	}, tmpl.Storage)
	assert.Equal(t, 1.0, tmpl.ForageAdjustment)
	assert.False(t, tmpl.WaterAuto)
	require.Len(t, tmpl.Breeds, 1)
	assert.Equal(t, "HEN", tmpl.Breeds[0].Name)

	p.Type = "PIG"
	_, err = c.Template(p)
	assert.ErrorContains(t, err, "unknown animal type")
}

func TestTemplate_ForageAdjustment(t *testing.T) {
	ts, err := sample(t).Templates()
	require.NoError(t, err)
	require.Len(t, ts, 3)

	// (0.2*0.5 + 0.12*0.2 + 0.05*0.3) / 0.1
	assert.InDelta(t, 1.39, ts["cowBarnBig"].ForageAdjustment, 1e-9)
	// (0.2*0.375 + 0.12*0.375 + 0.05*0.2 + 1.0*0.05) / 0.1
	assert.InDelta(t, 1.8, ts["cowBarnBigVector"].ForageAdjustment, 1e-9)
}

func TestForageAdjustment_Recipe(t *testing.T) {
	c := sample(t)
	assert.Equal(t, []animal.FillType{"DRYGRASS_WINDROW", "SILAGE", "STRAW", "MINERAL_FEED"}, c.Components(animal.Forage))
	assert.Nil(t, c.Components("MILK"))

	// without MINERAL_FEED in the recipe: (0.2*0.375 + 0.12*0.375 + 0.05*0.2) / 0.95 / 0.1
	adj, err := ForageAdjustment(c.Fills, []animal.FillType{"DRYGRASS_WINDROW", "SILAGE", "STRAW"}, HighForageMix)
	require.NoError(t, err)
	assert.InDelta(t, 1.37, adj, 1e-9)

	all, err := ForageAdjustment(c.Fills, c.Components(animal.Forage), HighForageMix)
	require.NoError(t, err)
	assert.InDelta(t, 1.8, all, 1e-9)
}

func TestPalletCapacity(t *testing.T) {
	assert.Equal(t, 16800.0, PalletCapacity("EGG", 12))
	assert.Equal(t, 5000.0, PalletCapacity("WOOL", 5))
	assert.Equal(t, 0.0, PalletCapacity("MILK", 5))
}

func TestForageAdjustment(t *testing.T) {
	fills := map[animal.FillType]Fill{
		animal.Forage: {Name: animal.Forage, PricePerLiter: 0.1},
		"STRAW":       {Name: "STRAW", PricePerLiter: 0.05},
	}

	// components missing from fills are left out
	adj, err := ForageAdjustment(fills, nil, LowForageMix)
	require.NoError(t, err)
	assert.Equal(t, 0.5, adj)

	_, err = ForageAdjustment(fills, nil, ForageMix{"SILAGE": 1})
	assert.Error(t, err)

	// STRAW is priced but not part of the recipe
	_, err = ForageAdjustment(fills, []animal.FillType{"DRYGRASS_WINDROW", "SILAGE"}, LowForageMix)
	assert.Error(t, err)

	delete(fills, animal.Forage)
	_, err = ForageAdjustment(fills, nil, LowForageMix)
	assert.ErrorContains(t, err, "FORAGE")

	_, ok := DefaultForageMix("sheepPasture")
	assert.False(t, ok)
}

func TestFacilities(t *testing.T) {
	fs, err := sample(t).Facilities(zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, fs, 3)

	hens := fs["chickenBarnBig"]
	assert.Equal(t, -60000.0, hens.Profit())
	bought, err := hens.BuyAnimals("HEN", 0, 100, false)
	require.NoError(t, err)
	assert.Equal(t, 100, bought)
	assert.Equal(t, -60210.0, hens.Profit())

	_, err = hens.BuyAnimals("HOLSTEIN", 0, 1, false)
	assert.ErrorIs(t, err, facility.ErrUnknownBreed)
}
