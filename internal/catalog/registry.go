package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/ucalc/internal/units"
)

var (
	// ErrUnresolvedUnit reports a token that names no known unit.
	ErrUnresolvedUnit = errors.New("unresolved unit")
	// ErrDuplicateUnit reports two definitions sharing a name.
	ErrDuplicateUnit = errors.New("duplicate unit")
)

// Registry is an ordered, immutable set of unprefixed units. It is safe for
// concurrent use.
type Registry struct {
	units  []units.FundamentalUnit
	byName map[string]int
}

// New builds a registry from units in resolution order. Names must be
// unique; prefixes on the given units are dropped.
func New(list ...units.FundamentalUnit) (*Registry, error) {
	r := &Registry{
		units:  make([]units.FundamentalUnit, 0, len(list)),
		byName: make(map[string]int, len(list)),
	}
	for _, u := range list {
		if err := r.add(u); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(u units.FundamentalUnit) error {
	if u.IsZero() {
		return fmt.Errorf("%w: empty unit", units.ErrInvalidUnit)
	}
	u = u.WithPrefix(units.Base)
	if _, exists := r.byName[u.BaseName()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateUnit, u.BaseName())
	}
	r.byName[u.BaseName()] = len(r.units)
	r.units = append(r.units, u)
	return nil
}

// Extend returns a new registry holding r's units followed by list.
func (r *Registry) Extend(list ...units.FundamentalUnit) (*Registry, error) {
	return New(append(r.All(), list...)...)
}

// Len returns the number of units.
func (r *Registry) Len() int { return len(r.units) }

// All returns every unit in resolution order.
func (r *Registry) All() []units.FundamentalUnit {
	out := make([]units.FundamentalUnit, len(r.units))
	copy(out, r.units)
	return out
}

// ByDimension returns the units measuring d.
func (r *Registry) ByDimension(d units.Dimension) []units.FundamentalUnit {
	var out []units.FundamentalUnit
	for _, u := range r.units {
		if u.Dimension() == d {
			out = append(out, u)
		}
	}
	return out
}

// Lookup finds an unprefixed unit by exact name.
func (r *Registry) Lookup(name string) (units.FundamentalUnit, bool) {
	i, ok := r.byName[name]
	if !ok {
		return units.FundamentalUnit{}, false
	}
	return r.units[i], true
}

// Resolve turns a token such as "km", "kilometers" or "°F" into a unit.
// Full names are tried before symbols. Within each pass an exact match
// wins, otherwise the first unit in registry order whose name or symbol
// ends the token and leaves a valid prefix in front of it.
func (r *Registry) Resolve(token string) (units.FundamentalUnit, error) {
	if token == "" {
		return units.FundamentalUnit{}, fmt.Errorf("%w: empty token", ErrUnresolvedUnit)
	}
	if u, ok := r.match(token, units.FundamentalUnit.BaseName, units.PrefixByName); ok {
		return u, nil
	}
	if singular, found := strings.CutSuffix(token, "s"); found && singular != "" {
		if u, ok := r.match(singular, units.FundamentalUnit.BaseName, units.PrefixByName); ok {
			return u, nil
		}
	}
	if u, ok := r.match(token, units.FundamentalUnit.BaseSymbol, units.PrefixBySymbol); ok {
		return u, nil
	}
	return units.FundamentalUnit{}, fmt.Errorf("%w: %q", ErrUnresolvedUnit, token)
}

func (r *Registry) match(
	token string,
	label func(units.FundamentalUnit) string,
	prefix func(string) (units.MetricPrefix, bool),
) (units.FundamentalUnit, bool) {
	for _, u := range r.units {
		if label(u) == token {
			return u, true
		}
	}
	for _, u := range r.units {
		head, found := strings.CutSuffix(token, label(u))
		if !found || head == "" {
			continue
		}
		if p, ok := prefix(head); ok {
			return u.WithPrefix(p), true
		}
	}
	return units.FundamentalUnit{}, false
}
