package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesagent/internal/filter"
	"github.com/MrJamesThe3rd/salesagent/internal/importer"
	"github.com/MrJamesThe3rd/salesagent/internal/intent"
	"github.com/MrJamesThe3rd/salesagent/internal/metrics"
	"github.com/MrJamesThe3rd/salesagent/internal/period"
	"github.com/MrJamesThe3rd/salesagent/internal/sale"
	"github.com/MrJamesThe3rd/salesagent/internal/trend"
)

const topAffiliates = 5

// Request is what the user picked for one rendering pass.
type Request struct {
	Selection period.Selection
	Filters   filter.Dimensions
	Question  string // free text
	Intent    string // predefined button text, takes precedence over Question
}

type Service struct {
	clock  Clock
	loc    *time.Location
	limits trend.Limits
}

func NewService(clock Clock, loc *time.Location, limits trend.Limits) *Service {
	if clock == nil {
		clock = SystemClock
	}

	if loc == nil {
		loc = time.Local
	}

	return &Service{clock: clock, loc: loc, limits: limits}
}

// Scope is a dataset narrowed to the selected period and filters.
type Scope struct {
	Range    period.Range
	Dataset  *sale.Dataset
	Filtered *sale.Dataset // dimension filters only, all dates
}

// Scope resolves the period against the wall clock and applies every filter.
// It fails with sale.ErrNoDateData when the upload has no usable timestamp.
func (s *Service) Scope(ds *sale.Dataset, req Request) (*Scope, error) {
	return s.scope(ds, req, s.clock.Now().In(s.loc))
}

func (s *Service) scope(ds *sale.Dataset, req Request, today time.Time) (*Scope, error) {
	bounds, err := ds.DateBounds()
	if err != nil {
		return nil, fmt.Errorf("reading date bounds: %w", err)
	}

	rng, err := period.Resolve(req.Selection, today, bounds)
	if err != nil {
		return nil, fmt.Errorf("resolving period: %w", err)
	}

	filtered := filter.ByDimensions(ds, req.Filters)

	return &Scope{
		Range:    rng,
		Dataset:  filter.ByRange(filtered, rng),
		Filtered: filtered,
	}, nil
}

// Ask answers a button or free-text question over the scoped dataset.
func (s *Service) Ask(ds *sale.Dataset, req Request) (*Answer, error) {
	sc, err := s.Scope(ds, req)
	if err != nil {
		return nil, err
	}

	return answer(sc.Dataset, req), nil
}

// Build runs one full rendering pass over a loaded export.
func (s *Service) Build(loaded *importer.Result, req Request) (*Report, error) {
	now := s.clock.Now().In(s.loc)

	sc, err := s.scope(loaded.Dataset, req, now)
	if err != nil {
		return nil, err
	}

	ds := sc.Dataset
	current := summarize(ds)

	weekly := trend.WeeklyRevenue(ds)
	monthly := trend.MonthlyRevenue(ds)
	weeklyRes, weeklyAlert := trend.Analyze(weekly)
	monthlyRes, monthlyAlert := trend.Analyze(monthly)

	preset := req.Selection.Preset
	if preset == "" {
		preset = period.All
	}

	prevRange := sc.Range.Previous()

	r := &Report{
		ID:          uuid.New(),
		GeneratedAt: now,
		Period:      preset,
		PeriodLabel: preset.Label(),
		Range:       sc.Range,
		Filters:     req.Filters,
		Options:     filter.Options(loaded.Dataset),
		Summary:     current,
		Cards:       cards(current),
		Trends: Trends{
			Weekly:       weeklyRes,
			Monthly:      monthlyRes,
			WeeklyAlert:  weeklyAlert,
			MonthlyAlert: monthlyAlert,
		},
		Warnings:     trend.Thresholds(current.ChargebackRate, current.RefundRate, s.limits),
		Buttons:      intent.Buttons(),
		Weekly:       weekly,
		Monthly:      monthly,
		Products:     metrics.ProductsSold(ds),
		Affiliates:   metrics.TopAffiliates(ds, topAffiliates),
		Cities:       metrics.RevenueByCity(ds),
		Comparison:   compare(prevRange, current, summarize(filter.ByRange(sc.Filtered, prevRange))),
		ImportIssues: loaded.Warnings,
		HasDiscount:  ds.Has(sale.ColDiscount),
		HasFees:      ds.Has(sale.ColFees),
		Dataset:      ds,
	}

	if req.Intent != "" || req.Question != "" {
		r.Answer = answer(ds, req)
	}

	return r, nil
}

// answer runs a button's text through the same phrase table as a typed
// question, so the first matching entry answers either way.
func answer(ds *sale.Dataset, req Request) *Answer {
	q := req.Intent
	if q == "" {
		q = req.Question
	}

	a := &Answer{Question: q, Text: intent.Respond(q, ds)}
	if e, ok := intent.Match(q); ok {
		a.Intent = e.Name
	}

	return a
}

func summarize(ds *sale.Dataset) Summary {
	return Summary{
		Revenue:         metrics.TotalRevenue(ds),
		Commission:      metrics.TotalCommission(ds),
		Discount:        metrics.TotalDiscount(ds),
		Fees:            metrics.TotalFees(ds),
		ChargebackRate:  metrics.ChargebackRate(ds),
		RefundRate:      metrics.RefundRate(ds),
		UniqueCustomers: metrics.UniqueCustomers(ds),
		Sales:           metrics.SalesCount(ds),
	}
}
