package recoup

import (
	"testing"

	"github.com/blgolden/animalProd/animal"
	"github.com/blgolden/animalProd/facility"

	"github.com/stretchr/testify/require"
)

func feedlotType() *animal.AnimalType {
	return &animal.AnimalType{
		Name:        "COW",
		Consumption: animal.Parallel,
		FoodGroups: []animal.FoodGroup{
			{Title: "tmr", ProductionWeight: 1.0, EatWeight: 1.0},
			{Title: "grass", ProductionWeight: 0.4, EatWeight: 0.4},
		},
		GroupFills: []animal.GroupFill{
			{Title: "tmr", FillType: animal.Forage, PricePerLiter: 0.1},
			{Title: "grass", FillType: "GRASS_WINDROW", PricePerLiter: 0.05},
		},
	}
}

func breeds(t *testing.T, at *animal.AnimalType) []*animal.Breed {
	t.Helper()
	cow, err := animal.NewBreed(animal.BreedSpec{
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

	steer, err := animal.NewBreed(animal.BreedSpec{
		Name:            "STEER",
		Type:            at,
		FeedIn:          []animal.FeedRow{{FillType: animal.Food, AgeMonths: 0, LiterDay: 1}},
		BuyPrices:       []animal.PriceBreakpoint{{AgeMonths: 0, Price: 50}},
		SellPrices:      []animal.PriceBreakpoint{{AgeMonths: 0, Price: 100}, {AgeMonths: 13, Price: 496}, {AgeMonths: 14, Price: 500}, {AgeMonths: 20, Price: 500}, {AgeMonths: 40, Price: 300}},
		TransportPrices: []animal.PriceBreakpoint{{AgeMonths: 0, Price: 0}},
	})
	require.NoError(t, err)
	return []*animal.Breed{cow, steer}
}

func templates(t *testing.T) map[string]facility.Template {
	t.Helper()
	at := feedlotType()
	bs := breeds(t, at)
	return map[string]facility.Template{
		"cowBarnTest": {
			ID:          "cowBarnTest",
			Name:        "Test Cow Barn",
			Price:       100000,
			UpkeepPrice: 100,
			AnimalType:  at,
			Breeds:      bs[:1],
			UnitMax:     80,
			DefaultFood: animal.Forage,
			Storage: []facility.StorageSlot{
				{FillType: animal.Straw, Capacity: 10000, PricePerLiter: 0.05},
				{FillType: "MILK", Capacity: 50000, PricePerLiter: 0.5},
				{FillType: animal.Manure, Capacity: 100000, PricePerLiter: 0},
			},
			WaterAuto: true,
		},
		"dryBarnTest": {
			ID:          "dryBarnTest",
			Price:       100000,
			UpkeepPrice: 100,
			AnimalType:  at,
			Breeds:      bs[:1],
			UnitMax:     80,
			DefaultFood: animal.Forage,
			Storage:     []facility.StorageSlot{{FillType: "MILK", Capacity: 50000, PricePerLiter: 0}},
			WaterAuto:   true,
		},
		"steerPenTest": {
			ID:          "steerPenTest",
			Price:       1000,
			UpkeepPrice: 10,
			AnimalType:  at,
			Breeds:      bs[1:],
			UnitMax:     10,
			DefaultFood: animal.Forage,
		},
	}
}

func milkRequest() Request {
	r := DefaultRequest()
	r.FacilityID = "cowBarnTest"
	r.Breed = "COW"
	r.StockAmount = 80
	r.Food = []animal.FillType{animal.Forage}
	return r
}

func steerRequest() Request {
	r := DefaultRequest()
	r.FacilityID = "steerPenTest"
	r.Breed = "STEER"
	r.StockAmount = 10
	r.Autosell = "mature"
	r.ExtraMonths = 30
	return r
}
