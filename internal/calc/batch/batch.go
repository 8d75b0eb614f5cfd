package batch

import (
	"fmt"

	"Pergola/internal/calc/cost"
	"Pergola/internal/calc/params"
	"Pergola/internal/calc/structure"
)

// MaxItems bounds one comparison request.
const MaxItems = 50

type Input struct {
	Items  []params.Set     `json:"items"`
	Prices *cost.PriceTable `json:"prices,omitempty"`
}

// Variant is the priced summary of one item, without the member list.
type Variant struct {
	Params  params.Set       `json:"params"`
	Counts  map[string]int   `json:"counts"`
	Takeoff []TakeoffSummary `json:"takeoff"`
	Cost    cost.Breakdown   `json:"cost"`
	Notes   string           `json:"notes"`
}

type TakeoffSummary struct {
	Class   string  `json:"class"`
	Section string  `json:"section"`
	Length  float64 `json:"length"`
}

type Result struct {
	Results []Variant `json:"results"`
	// Cheapest is the index of the variant with the lowest total cost.
	Cheapest int `json:"cheapest"`
}

// Calculate prices every item against the same table. The first invalid item
// fails the whole batch.
func Calculate(g structure.Generator, in Input, prices cost.PriceTable) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("%w: no items", params.ErrInvalid)
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("%w: %d items, at most %d", params.ErrInvalid, len(in.Items), MaxItems)
	}
	if in.Prices != nil {
		prices = prices.Merge(*in.Prices)
	}
	out := Result{Results: make([]Variant, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := structure.Calculate(g, item, prices)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, summarize(res))
		if res.Cost.TotalCost < out.Results[out.Cheapest].Cost.TotalCost {
			out.Cheapest = i
		}
	}
	return out, nil
}

func summarize(res structure.Result) Variant {
	v := Variant{
		Params: res.Params,
		Counts: make(map[string]int, len(res.Counts)),
		Cost:   res.Cost,
		Notes:  res.Notes,
	}
	for k, n := range res.Counts {
		v.Counts[string(k)] = n
	}
	for _, l := range res.Takeoff {
		v.Takeoff = append(v.Takeoff, TakeoffSummary{Class: string(l.Class), Section: l.Section, Length: l.Length})
	}
	return v
}
