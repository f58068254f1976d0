package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// BudgetKind discriminates the budget union.
type BudgetKind int

const (
	BudgetUnspecified BudgetKind = iota
	BudgetFixed
	BudgetHourly
)

// Budget is the tagged union of the budget shapes the API emits:
// a fixed min/max range, an hourly min/max rate, or nothing at all.
// Older project documents carry a bare number, decoded as a fixed
// budget with min == max.
type Budget struct {
	Kind BudgetKind
	Min  float64
	Max  float64
}

// budgetWire matches the object form on the wire.
type budgetWire struct {
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	HourlyRate *struct {
		Min *float64 `json:"min,omitempty"`
		Max *float64 `json:"max,omitempty"`
	} `json:"hourlyRate,omitempty"`
}

func (b *Budget) UnmarshalJSON(data []byte) error {
	*b = Budget{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// Legacy documents store a bare amount.
	if data[0] != '{' {
		amount, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("budget: unrecognized shape %q", string(data))
		}
		b.Kind = BudgetFixed
		b.Min = amount
		b.Max = amount
		return nil
	}

	var w budgetWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("budget: %w", err)
	}
	switch {
	case w.HourlyRate != nil:
		b.Kind = BudgetHourly
		if w.HourlyRate.Min != nil {
			b.Min = *w.HourlyRate.Min
		}
		if w.HourlyRate.Max != nil {
			b.Max = *w.HourlyRate.Max
		}
		if b.Min == 0 && b.Max == 0 {
			b.Kind = BudgetUnspecified
		}
	case w.Min != nil || w.Max != nil:
		b.Kind = BudgetFixed
		if w.Min != nil {
			b.Min = *w.Min
		}
		if w.Max != nil {
			b.Max = *w.Max
		}
	}
	return nil
}

func (b Budget) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BudgetFixed:
		w := budgetWire{}
		if b.Min != 0 {
			w.Min = &b.Min
		}
		if b.Max != 0 {
			w.Max = &b.Max
		}
		return json.Marshal(w)
	case BudgetHourly:
		var hr struct {
			Min *float64 `json:"min,omitempty"`
			Max *float64 `json:"max,omitempty"`
		}
		if b.Min != 0 {
			hr.Min = &b.Min
		}
		if b.Max != 0 {
			hr.Max = &b.Max
		}
		return json.Marshal(budgetWire{HourlyRate: &hr})
	default:
		return []byte("null"), nil
	}
}

// Format renders the budget for display. All views go through this one
// function so the union is interpreted in exactly one place.
//
//	fixed 1000..5000  -> "$1,000-$5,000"
//	hourly min-only   -> "$20+/hr"
//	unspecified       -> "Not specified"
func (b Budget) Format() string {
	switch b.Kind {
	case BudgetFixed:
		switch {
		case b.Min > 0 && b.Max > 0 && b.Min != b.Max:
			return "$" + formatMoney(b.Min) + "-$" + formatMoney(b.Max)
		case b.Min > 0 && b.Max > 0:
			return "$" + formatMoney(b.Min)
		case b.Min > 0:
			return "$" + formatMoney(b.Min) + "+"
		case b.Max > 0:
			return "Up to $" + formatMoney(b.Max)
		}
		return "Not specified"
	case BudgetHourly:
		switch {
		case b.Min > 0 && b.Max > 0 && b.Min != b.Max:
			return "$" + formatMoney(b.Min) + "-$" + formatMoney(b.Max) + "/hr"
		case b.Min > 0 && b.Max > 0:
			return "$" + formatMoney(b.Min) + "/hr"
		case b.Min > 0:
			return "$" + formatMoney(b.Min) + "+/hr"
		case b.Max > 0:
			return "Up to $" + formatMoney(b.Max) + "/hr"
		}
		return "Not specified"
	default:
		return "Not specified"
	}
}

// formatMoney renders a dollar amount with thousands separators.
// Fractional cents are rounded away; budgets are whole-dollar values.
func formatMoney(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var out []byte
		for i, d := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				out = append(out, ',')
			}
			out = append(out, d)
		}
		s = string(out)
	}
	if neg {
		return "-" + s
	}
	return s
}
