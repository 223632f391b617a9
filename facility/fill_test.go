package facility

import (
	"testing"

	"github.com/blgolden/animalProd/animal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func milkingBarn(t *testing.T, tmpl Template, units int) *Facility {
	t.Helper()
	f := New(tmpl, zap.NewNop())
	_, err := f.BuyAnimals("COW", 12, units, true)
	require.NoError(t, err)
	f.AutoBuy = true
	f.AutoSell = true
	return f
}

func TestApplyMonthlyFillExchange_BuysSellsAndStores(t *testing.T) {
	f := milkingBarn(t, barnTemplate(t, animal.Parallel), 10)

	require.NoError(t, f.ApplyMonthlyFillExchange())

	assert.Equal(t, Ledger{
		{Month: 0, Label: "cowBarnTest", Amount: -100000},
		{Month: 0, Label: "FORAGE", Amount: -40},
		{Month: 0, Label: "STRAW", Amount: -2.5},
		{Month: 0, Label: "MILK", Amount: 250},
	}, f.Ledger())

	// manure has no sale price so it is stored
	assert.Equal(t, 200.0, f.Inventory(animal.Manure))
	assert.Equal(t, 0.0, f.Inventory(animal.Forage))
	assert.Equal(t, 0.0, f.Inventory(animal.Straw))
	assert.Equal(t, 1.0, f.Cohorts()[0].Health)
}

func TestApplyMonthlyFillExchange_ForageAdjustment(t *testing.T) {
	f := milkingBarn(t, barnTemplate(t, animal.Parallel), 10)
	f.ForageAdjustment = 1.25

	require.NoError(t, f.ApplyMonthlyFillExchange())
	assert.Equal(t, LedgerEntry{Month: 0, Label: "FORAGE", Amount: -50}, f.Ledger()[1])
}

func TestApplyMonthlyFillExchange_ParallelPicksCheapestPerGroup(t *testing.T) {
	f := milkingBarn(t, barnTemplate(t, animal.Parallel), 10)
	f.SetFood([]animal.FillType{"ALFALFA_WINDROW", "GRASS_WINDROW", animal.Forage})

	require.NoError(t, f.ApplyMonthlyFillExchange())

	l := f.Ledger()
	assert.Equal(t, LedgerEntry{Month: 0, Label: "FORAGE", Amount: -40}, l[1])
	assert.Equal(t, LedgerEntry{Month: 0, Label: "GRASS_WINDROW", Amount: -8}, l[2])
	assert.Equal(t, "STRAW", l[3].Label)
	assert.Equal(t, 0.0, f.Inventory("ALFALFA_WINDROW"))
}

func TestApplyMonthlyFillExchange_SerialFeedsWholeList(t *testing.T) {
	f := milkingBarn(t, barnTemplate(t, animal.Serial), 10)
	f.SetFood([]animal.FillType{animal.Forage, "DRYGRASS_WINDROW"})

	require.NoError(t, f.ApplyMonthlyFillExchange())

	l := f.Ledger()
	assert.Equal(t, LedgerEntry{Month: 0, Label: "FORAGE", Amount: -40}, l[1])
	assert.Equal(t, LedgerEntry{Month: 0, Label: "DRYGRASS_WINDROW", Amount: -80}, l[2])
}

func TestApplyMonthlyFillExchange_StoresWithoutAutoSell(t *testing.T) {
	f := milkingBarn(t, barnTemplate(t, animal.Parallel), 10)
	f.AutoSell = false

	require.NoError(t, f.ApplyMonthlyFillExchange())
	assert.Equal(t, 500.0, f.Inventory("MILK"))
	assert.Len(t, f.Ledger(), 3)
}

func TestApplyMonthlyFillExchange_InventoryNeverNegative(t *testing.T) {
	f := milkingBarn(t, barnTemplate(t, animal.Parallel), 10)
	f.AutoBuy = false
	_, err := f.BuyFill(animal.Forage, 100)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.ApplyMonthlyFillExchange())
		for fill, q := range f.inventory {
			assert.GreaterOrEqual(t, q, 0.0, string(fill))
		}
	}
	assert.Equal(t, 0.0, f.Inventory(animal.Forage))
	assert.Equal(t, 0.0, f.Cohorts()[0].Health)
}

func TestApplyMonthlyFillExchange_PalletOutput(t *testing.T) {
	tmpl := barnTemplate(t, animal.Parallel)
	hen, err := animal.NewBreed(animal.BreedSpec{
		Name:            "CHICKEN",
		Type:            tmpl.AnimalType,
		FeedIn:          []animal.FeedRow{{FillType: "food", AgeMonths: 0, LiterDay: 1}},
		FeedOut:         []animal.FeedRow{{FillType: "pallets", AgeMonths: 0, LiterDay: 2}},
		BuyPrices:       []animal.PriceBreakpoint{{AgeMonths: 0, Price: 1}},
		SellPrices:      []animal.PriceBreakpoint{{AgeMonths: 0, Price: 1}},
		TransportPrices: []animal.PriceBreakpoint{{AgeMonths: 0, Price: 0}},
	})
	require.NoError(t, err)
	tmpl.Breeds = []*animal.Breed{hen}
	tmpl.PalletFill = "EGG"
	tmpl.Storage = append(tmpl.Storage, StorageSlot{FillType: "EGG", Capacity: 1400, PricePerLiter: 1})

	f := New(tmpl, nil)
	_, err = f.BuyAnimals("CHICKEN", 0, 10, true)
	require.NoError(t, err)
	f.AutoBuy = true
	f.AutoSell = true

	require.NoError(t, f.ApplyMonthlyFillExchange())
	l := f.Ledger()
	require.Len(t, l, 3)
	assert.Equal(t, LedgerEntry{Month: 0, Label: "FORAGE", Amount: -1}, l[1])
	assert.Equal(t, LedgerEntry{Month: 0, Label: "EGG", Amount: 20}, l[2])
}
