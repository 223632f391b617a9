package recoup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatch_MatchesSequentialRuns(t *testing.T) {
	tmpl := templates(t)
	withHeap := milkRequest()
	withHeap.PurchaseStorageExtension = true
	missing := milkRequest()
	missing.FacilityID = "henHouse"
	reqs := []Request{milkRequest(), steerRequest(), withHeap, missing}

	ctx := NewContext(nil)
	batch := RunBatch(ctx, tmpl, reqs, 2)
	require.Len(t, batch, len(reqs))

	for i, req := range reqs[:3] {
		want, err := Run(nil, tmpl, req)
		require.NoError(t, err)

		got := batch[i]
		require.NoError(t, got.Err)
		assert.Equal(t, want.BreakEvenMonth, got.Result.BreakEvenMonth)
		assert.Equal(t, want.Series, got.Result.Series)
		assert.Equal(t, want.FitMonths, got.Result.FitMonths)
		assert.Equal(t, want.Slope, got.Result.Slope)
		assert.NotEqual(t, ctx.RunID, got.Result.RunID)
	}
	assert.NotEqual(t, batch[0].Result.RunID, batch[1].Result.RunID)
	assert.ErrorIs(t, batch[3].Err, ErrUnknownFacility)
	assert.Nil(t, batch[3].Result)
}

func TestSummarize(t *testing.T) {
	results := []BatchResult{
		{Result: &Result{Slope: 100, BreakEvenMonth: 10, BrokeEven: true}},
		{Result: &Result{Slope: 300, BreakEvenMonth: 30, BrokeEven: true}},
		{Result: &Result{Slope: -40, BreakEvenMonth: MaxSearchMonths}, Err: ErrNoBreakEven},
		{Err: ErrUnknownFacility},
	}

	s := Summarize(results)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 2, s.BrokeEven)
	assert.InDelta(t, 120, s.MeanSlope, 1e-9)
	assert.InDelta(t, 20, s.MeanBreakEven, 1e-9)
	assert.InDelta(t, 14.142135623730951, s.StdDevBreakEven, 1e-9)

	assert.Equal(t, Summary{}, Summarize(nil))
}
