package facility

import (
	"testing"

	"github.com/blgolden/animalProd/animal"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func cowType(mode animal.ConsumptionMode) *animal.AnimalType {
	return &animal.AnimalType{
		Name:        "COW",
		Consumption: mode,
		FoodGroups: []animal.FoodGroup{
			{Title: "tmr", ProductionWeight: 1.0, EatWeight: 1.0},
			{Title: "hay", ProductionWeight: 0.8, EatWeight: 0.6},
			{Title: "grass", ProductionWeight: 0.4, EatWeight: 0.4},
		},
		GroupFills: []animal.GroupFill{
			{Title: "tmr", FillType: animal.Forage, PricePerLiter: 0.1},
			{Title: "hay", FillType: "DRYGRASS_WINDROW", PricePerLiter: 0.2},
			{Title: "grass", FillType: "GRASS_WINDROW", PricePerLiter: 0.05},
			{Title: "grass", FillType: "ALFALFA_WINDROW", PricePerLiter: 0.07},
		},
	}
}

func cowBreed(t *testing.T, at *animal.AnimalType) *animal.Breed {
	t.Helper()
	b, err := animal.NewBreed(animal.BreedSpec{
		Name:                "COW",
		Type:                at,
		Reproduces:          true,
		ReproMinAgeMonths:   12,
		ReproDurationMonths: 10,
		ReproMinHealth:      0.75,
		FeedIn: []animal.FeedRow{
			{FillType: animal.Food, AgeMonths: 0, LiterDay: 10},
			{FillType: animal.Water, AgeMonths: 0, LiterDay: 20},
			{FillType: animal.Straw, AgeMonths: 0, LiterDay: 5},
			{FillType: animal.Food, AgeMonths: 12, LiterDay: 40},
		},
		FeedOut: []animal.FeedRow{
			{FillType: animal.Manure, AgeMonths: 0, LiterDay: 20},
			{FillType: "MILK", AgeMonths: 12, LiterDay: 50},
		},
		BuyPrices:       []animal.PriceBreakpoint{{AgeMonths: 0, Price: 500}, {AgeMonths: 12, Price: 1500}},
		SellPrices:      []animal.PriceBreakpoint{{AgeMonths: 0, Price: 300}, {AgeMonths: 12, Price: 1200}, {AgeMonths: 24, Price: 1500}, {AgeMonths: 60, Price: 600}},
		TransportPrices: []animal.PriceBreakpoint{{AgeMonths: 0, Price: 20}},
	})
	require.NoError(t, err)
	return b
}

// Beef animal whose sell price peaks at 14 months
func steerBreed(t *testing.T, at *animal.AnimalType) *animal.Breed {
	t.Helper()
	b, err := animal.NewBreed(animal.BreedSpec{
		Name:            "STEER",
		Type:            at,
		FeedIn:          []animal.FeedRow{{FillType: animal.Food, AgeMonths: 0, LiterDay: 1}},
		BuyPrices:       []animal.PriceBreakpoint{{AgeMonths: 0, Price: 50}},
		SellPrices:      []animal.PriceBreakpoint{{AgeMonths: 0, Price: 100}, {AgeMonths: 13, Price: 496}, {AgeMonths: 14, Price: 500}, {AgeMonths: 20, Price: 500}, {AgeMonths: 40, Price: 300}},
		TransportPrices: []animal.PriceBreakpoint{{AgeMonths: 0, Price: 0}},
	})
	require.NoError(t, err)
	return b
}

func barnTemplate(t *testing.T, mode animal.ConsumptionMode) Template {
	t.Helper()
	at := cowType(mode)
	return Template{
		ID:          "cowBarnTest",
		Name:        "Test Cow Barn",
		PlaceType:   "animalPen",
		Price:       100000,
		UpkeepPrice: 100,
		AnimalType:  at,
		Breeds:      []*animal.Breed{cowBreed(t, at), steerBreed(t, at)},
		UnitMax:     80,
		DefaultFood: animal.Forage,
		Storage: []StorageSlot{
			{FillType: animal.Straw, Capacity: 10000, PricePerLiter: 0.05},
			{FillType: "MILK", Capacity: 50000, PricePerLiter: 0.5},
			{FillType: animal.Manure, Capacity: 100000, PricePerLiter: 0},
		},
		WaterAuto: true,
	}
}

func newBarn(t *testing.T) *Facility {
	t.Helper()
	return New(barnTemplate(t, animal.Parallel), zap.NewNop())
}

func observedBarn(t *testing.T, tmpl Template) (*Facility, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	return New(tmpl, zap.New(core)), logs
}

// A cohort that is due to give birth
func dueCohort(t *testing.T, f *Facility, units int) *animal.Cohort {
	t.Helper()
	n, err := f.BuyAnimals("COW", 12, units, true)
	require.NoError(t, err)
	require.Equal(t, units, n)
	cs := f.Cohorts()
	c := cs[len(cs)-1]
	c.ReproMonths = c.Breed.ReproDurationMonths
	return c
}
