package recoup

import (
	"testing"

	"github.com/blgolden/animalProd/animal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarios(t *testing.T) {
	reqs, err := LoadScenarios("testdata/scenarios.hjson")
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	first := reqs[0]
	assert.Equal(t, "forage age 0", first.Name)
	assert.Equal(t, "cowBarnTest", first.FacilityID)
	assert.Equal(t, "COW", first.Breed)
	assert.Equal(t, 80, first.StockAmount)
	assert.Equal(t, []animal.FillType{animal.Forage}, first.Food)
	assert.True(t, first.PurchaseStorageExtension)
	assert.True(t, first.AutoBuy)
	assert.True(t, first.AutoSell)
	assert.Equal(t, "none", first.Autosell)
	assert.Equal(t, 40, first.TrailingWindowMonths)

	assert.Equal(t, 12, reqs[1].BuyAgeMonths)
	assert.Equal(t, 24, reqs[1].ExtraMonths)
	assert.Equal(t, 0, reqs[0].ExtraMonths)

	third := reqs[2]
	assert.Equal(t, []animal.FillType{"GRASS_WINDROW"}, third.Food)
	assert.Equal(t, "old", third.Autosell)
	assert.False(t, third.PurchaseStorageExtension)
}

func TestLoadScenarios_RunsAgainstTemplates(t *testing.T) {
	reqs, err := LoadScenarios("testdata/scenarios.hjson")
	require.NoError(t, err)

	batch := RunBatch(NewContext(nil), templates(t), reqs[:2], 0)
	for _, b := range batch {
		require.NoError(t, b.Err)
		assert.True(t, b.Result.BrokeEven)
	}
}

func TestParseScenarios_Errors(t *testing.T) {
	_, err := ParseScenarios([]byte(`{ scenarios: [ { stock: "many" } ] }`))
	assert.Error(t, err)

	_, err = ParseScenarios([]byte(`{ scenarios: [ { herd: 3 } ] }`))
	assert.ErrorContains(t, err, "unknown key")

	_, err = ParseScenarios([]byte("{\n  comment: nothing to run\n}"))
	assert.ErrorContains(t, err, "scenarios")

	_, err = LoadScenarios("testdata/missing.hjson")
	assert.Error(t, err)
}

func TestParseScenarios_DefaultsOnly(t *testing.T) {
	reqs, err := ParseScenarios([]byte(`{
  defaults: {
    facility: cowBarnTest
    breed: COW
    stock: 10
  }
}`))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, 10, reqs[0].StockAmount)
}

func TestParseScenarios_UnnamedKeepsEmptyName(t *testing.T) {
	reqs, err := ParseScenarios([]byte(`{
  defaults: {
    facility: cowBarnTest
    breed: COW
    food: [ "FORAGE", "GRASS_WINDROW" ]
  }
  scenarios: [
    {
      stock: 5
    }
    {
      name: "named"
    }
  ]
}`))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[0].Name)
	assert.Equal(t, "named", reqs[1].Name)
	assert.Equal(t, []animal.FillType{"FORAGE", "GRASS_WINDROW"}, reqs[0].Food)
}
