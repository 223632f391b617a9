// recoup project recoup.go
//
// Break-even search and steady state profit rate for a stocked facility
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
	"errors"
	"fmt"

	"github.com/blgolden/animalProd/animal"
	"github.com/blgolden/animalProd/facility"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Months simulated at most while waiting for the profit to turn
const MaxSearchMonths = 400

var (
	ErrNoBreakEven     = errors.New("no break-even within search ceiling")
	ErrFitPoints       = errors.New("fewer than two points for the profit trend")
	ErrUnknownFacility = errors.New("unknown facility")
)

type Request struct {
	Name                     string // Label for tables, optional
	FacilityID               string
	Breed                    string
	StockAmount              int
	BuyAgeMonths             int
	Autosell                 string // none, all, new, old or mature
	Food                     []animal.FillType
	PurchaseStorageExtension bool // buy the manure heap before stocking
	AutoBuy                  bool
	AutoSell                 bool
	TrailingWindowMonths     int // months fitted when nothing is sold, <= 0 for all
	ExtraMonths              int // months simulated after break-even
}

// Request with the settings used for most barns
func DefaultRequest() Request {
	return Request{
		Autosell:             string(facility.SellNone),
		AutoBuy:              true,
		AutoSell:             true,
		TrailingWindowMonths: 40,
	}
}

type Result struct {
	Request Request
	RunID   uuid.UUID
	Policy  facility.AutosellPolicy // policy actually applied

	Slope          float64 // Fitted profit per month
	Intercept      float64
	BreakEvenMonth int
	BrokeEven      bool

	Facility  *facility.Facility // state at the end of the run
	Series    []facility.MonthTotal
	FitMonths []int
}

// Run req against a fresh facility built from its template
func Run(ctx *Context, templates map[string]facility.Template, req Request) (*Result, error) {
	t, ok := templates[req.FacilityID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFacility, req.FacilityID)
	}
	return RunFacility(ctx, facility.New(t, ctx.logger()), req)
}

// Run req against a copy of base. base is left untouched.
func RunFacility(ctx *Context, base *facility.Facility, req Request) (*Result, error) {
	log := ctx.logger()
	f := base.CloneWithLogger(log)

	if req.PurchaseStorageExtension {
		f.BuyManureHeap()
	}
	if len(req.Food) > 0 {
		f.SetFood(req.Food)
	}
	if _, err := f.BuyAnimals(req.Breed, req.BuyAgeMonths, req.StockAmount, false); err != nil {
		return nil, err
	}
	f.AutoBuy = req.AutoBuy
	f.AutoSell = req.AutoSell
	policy := f.SetAutosellPolicy(req.Autosell)

	res := &Result{Request: req, Policy: policy, Facility: f}
	if ctx != nil {
		res.RunID = ctx.RunID
	}

	for i := 0; i < MaxSearchMonths && f.Profit() < 0; i++ {
		if err := advance(f, req); err != nil {
			return nil, err
		}
	}
	res.BreakEvenMonth = f.AgeMonths()
	res.BrokeEven = f.Profit() >= 0

	for i := 0; i < req.ExtraMonths; i++ {
		if err := advance(f, req); err != nil {
			return nil, err
		}
	}

	ledger := f.Ledger()
	res.Series = ledger.Cumulative()

	var fitErr error
	res.FitMonths, fitErr = fitMonths(ledger, res.Series, policy, req)
	if fitErr == nil {
		res.Intercept, res.Slope = trend(res.Series, res.FitMonths)
	}

	log.Info("recoupment",
		zap.String("facility", f.ID()),
		zap.String("breed", req.Breed),
		zap.String("policy", string(policy)),
		zap.Int("breakEvenMonth", res.BreakEvenMonth),
		zap.Bool("brokeEven", res.BrokeEven),
		zap.Float64("slope", res.Slope))

	if fitErr != nil {
		return res, fitErr
	}
	if !res.BrokeEven {
		log.Warn("profit still negative at search ceiling",
			zap.Int("months", MaxSearchMonths),
			zap.Float64("profit", f.Profit()))
		return res, fmt.Errorf("%w: %s with %s after %d months", ErrNoBreakEven, f.ID(), req.Breed, MaxSearchMonths)
	}
	return res, nil
}

// Restock an empty facility and step one month
func advance(f *facility.Facility, req Request) error {
	if !f.HasAnimals() {
		if _, err := f.BuyAnimals(req.Breed, req.BuyAgeMonths, req.StockAmount, false); err != nil {
			return err
		}
	}
	return f.Step(1)
}

// Months used for the trend line. Months with a livestock sale when the
// policy sells stock, otherwise the most recent window.
func fitMonths(l facility.Ledger, series []facility.MonthTotal, policy facility.AutosellPolicy, req Request) ([]int, error) {
	var months []int
	if policy != facility.SellNone {
		months = l.SaleMonths(req.Breed)
	}
	if len(months) < 2 {
		months = trailing(series, req.TrailingWindowMonths)
	}
	if len(months) < 2 {
		return months, fmt.Errorf("%w: %d", ErrFitPoints, len(months))
	}
	return months, nil
}

func trailing(series []facility.MonthTotal, window int) []int {
	start := 0
	if window > 0 && window < len(series) {
		start = len(series) - window
	}
	months := make([]int, 0, len(series)-start)
	for _, s := range series[start:] {
		months = append(months, s.Month)
	}
	return months
}

// Least squares line through the cumulative profit at months
func trend(series []facility.MonthTotal, months []int) (intercept, slope float64) {
	cum := make(map[int]float64, len(series))
	for _, s := range series {
		cum[s.Month] = s.Cumulative
	}
	x := make([]float64, len(months))
	y := make([]float64, len(months))
	for i, m := range months {
		x[i] = float64(m)
		y[i] = cum[m]
	}
	return stat.LinearRegression(x, y, nil, false)
}
