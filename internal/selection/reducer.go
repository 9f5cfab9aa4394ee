package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
)

// ErrInvalidAction is returned for unknown action types and bad payloads.
// The state is left unchanged.
var ErrInvalidAction = errors.New("invalid selection action")

// ActionType names a selection change.
type ActionType string

const (
	ActionSeed            ActionType = "seed"
	ActionToggleCategory  ActionType = "toggle_category"
	ActionToggleWarehouse ActionType = "toggle_warehouse"
	ActionSetDimension    ActionType = "set_dimension"
	ActionSetYear         ActionType = "set_year"
	ActionSetChartType    ActionType = "set_chart_type"
	ActionSetSearch       ActionType = "set_search"
)

// Action is one input to Reduce. Categories and Warehouses are only read by seed.
type Action struct {
	Type       ActionType
	Value      string
	Categories []string
	Warehouses []string
}

// SeedAction picks the default selection: the first nCategories categories
// in sorted order and the top nWarehouses warehouses by sales.
func SeedAction(ix sales.Index, nCategories, nWarehouses int) Action {
	return Action{
		Type:       ActionSeed,
		Categories: head(ix.Categories, nCategories),
		Warehouses: head(ix.Warehouses, nWarehouses),
	}
}

// Reduce applies a to s and returns the next state.
func Reduce(s State, a Action) (State, error) {
	switch a.Type {
	case ActionSeed:
		return seed(s, a), nil

	case ActionToggleCategory:
		if a.Value == "" {
			return s, fmt.Errorf("%w: %s requires a value", ErrInvalidAction, a.Type)
		}
		s.Categories = toggle(s.Categories, a.Value)
		return s, nil

	case ActionToggleWarehouse:
		if a.Value == "" {
			return s, fmt.Errorf("%w: %s requires a value", ErrInvalidAction, a.Type)
		}
		s.Warehouses = toggle(s.Warehouses, a.Value)
		return s, nil

	case ActionSetDimension:
		dim, err := sales.ParseDimension(a.Value)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		s.Dimension = dim
		return s, nil

	case ActionSetYear:
		year := strings.TrimSpace(a.Value)
		if year == "" || strings.EqualFold(year, "all") {
			year = "all"
		}
		s.Year = year
		return s, nil

	case ActionSetChartType:
		ct, ok := ParseChartType(a.Value)
		if !ok {
			return s, fmt.Errorf("%w: unknown chart type %q (must be line or bar)", ErrInvalidAction, a.Value)
		}
		s.ChartType = ct
		return s, nil

	case ActionSetSearch:
		s.WarehouseSearch = a.Value
		return s, nil
	}

	return s, fmt.Errorf("%w: unknown action type %q", ErrInvalidAction, a.Type)
}

// seed fills empty selections once. A list the user already touched is kept.
func seed(s State, a Action) State {
	if s.Seeded {
		return s
	}
	if len(s.Categories) == 0 {
		s.Categories = clone(a.Categories)
	}
	if len(s.Warehouses) == 0 {
		s.Warehouses = clone(a.Warehouses)
	}
	s.Seeded = true
	return s
}

// toggle returns a new slice with value removed if present, appended otherwise.
func toggle(values []string, value string) []string {
	out := make([]string, 0, len(values)+1)
	found := false
	for _, v := range values {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

func head(values []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(values) {
		n = len(values)
	}
	return clone(values[:n])
}

func clone(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
