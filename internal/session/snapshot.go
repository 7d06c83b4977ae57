package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/shared/id"
	"github.com/GriffinCanCode/ucalc/internal/units"
)

const (
	kindNumber      = "number"
	kindMeasurement = "measurement"
)

// Snapshot is the persisted form of a session's variables.
type Snapshot struct {
	ID        id.SessionID `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	SavedAt   time.Time    `json:"saved_at"`
	Variables []Variable   `json:"variables"`
}

// Variable is one binding. Units are stored by name so a snapshot survives
// catalogue reordering.
type Variable struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	Terms []Term  `json:"terms,omitempty"`
}

// Term is one unit factor of a stored measurement.
type Term struct {
	Unit   string `json:"unit"`
	Prefix string `json:"prefix,omitempty"`
	Power  int    `json:"power"`
}

func encodeVariables(vars map[string]calc.Value) []Variable {
	out := make([]Variable, 0, len(vars))
	for name, v := range vars {
		switch x := v.(type) {
		case calc.Number:
			out = append(out, Variable{Name: name, Kind: kindNumber, Value: float64(x)})
		case units.Measurement:
			terms := make([]Term, 0)
			for _, t := range x.Unit.Components() {
				terms = append(terms, Term{
					Unit:   t.Unit.BaseName(),
					Prefix: t.Unit.Prefix().Name(),
					Power:  t.Power,
				})
			}
			out = append(out, Variable{Name: name, Kind: kindMeasurement, Value: x.Value, Terms: terms})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func decodeVariables(reg *catalog.Registry, vars []Variable) (map[string]calc.Value, error) {
	out := make(map[string]calc.Value, len(vars))
	for _, v := range vars {
		switch v.Kind {
		case kindNumber:
			out[v.Name] = calc.Number(v.Value)
		case kindMeasurement:
			unit, err := decodeUnit(reg, v.Terms)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
			out[v.Name] = units.NewMeasurement(v.Value, unit)
		default:
			return nil, fmt.Errorf("variable %q: unknown kind %q", v.Name, v.Kind)
		}
	}
	return out, nil
}

func decodeUnit(reg *catalog.Registry, terms []Term) (units.CompositeUnit, error) {
	list := make([]units.Term, 0, len(terms))
	for _, t := range terms {
		u, ok := reg.Lookup(t.Unit)
		if !ok {
			return units.CompositeUnit{}, fmt.Errorf("%w: %q", catalog.ErrUnresolvedUnit, t.Unit)
		}
		p, ok := units.PrefixByName(t.Prefix)
		if !ok {
			return units.CompositeUnit{}, fmt.Errorf("%w: unknown prefix %q", units.ErrInvalidUnit, t.Prefix)
		}
		list = append(list, units.Term{Unit: u.WithPrefix(p), Power: t.Power})
	}
	return units.NewCompositeUnit(list...)
}
