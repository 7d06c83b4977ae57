// Package dto holds the wire shapes shared by the HTTP and WebSocket APIs.
package dto

import (
	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/units"
)

// Result kinds.
const (
	KindNumber      = "number"
	KindMeasurement = "measurement"
)

// Result is an evaluated value.
type Result struct {
	Kind       string         `json:"kind"`
	Value      float64        `json:"value"`
	Unit       string         `json:"unit,omitempty"`
	UnitName   string         `json:"unit_name,omitempty"`
	Dimensions map[string]int `json:"dimensions,omitempty"`
	Text       string         `json:"text"`
}

// FromValue converts an interpreter value. It returns nil for nil.
func FromValue(v calc.Value) *Result {
	switch x := v.(type) {
	case calc.Number:
		return &Result{Kind: KindNumber, Value: float64(x), Text: x.String()}
	case units.Measurement:
		return FromMeasurement(x)
	}
	return nil
}

// FromMeasurement converts a measurement.
func FromMeasurement(m units.Measurement) *Result {
	r := &Result{
		Kind:  KindMeasurement,
		Value: m.Value,
		Text:  m.String(),
	}
	if !m.Unit.IsDimensionless() {
		r.Unit = m.Unit.Symbol()
		r.UnitName = m.Unit.Name()
		r.Dimensions = make(map[string]int)
		for d, p := range m.Unit.Signature() {
			r.Dimensions[d.String()] = p
		}
	}
	return r
}

// FromValues converts a list of values.
func FromValues(vs []calc.Value) []*Result {
	out := make([]*Result, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromValue(v))
	}
	return out
}

// Unit describes a catalogue entry.
type Unit struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Dimension string `json:"dimension"`
}

// FromUnit converts a fundamental unit.
func FromUnit(u units.FundamentalUnit) Unit {
	return Unit{Name: u.Name(), Symbol: u.Symbol(), Dimension: u.Dimension().String()}
}

// Prefix describes a metric prefix.
type Prefix struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Exponent int    `json:"exponent"`
}

// Prefixes lists every prefix except the empty base prefix.
func Prefixes() []Prefix {
	var out []Prefix
	for _, p := range units.Prefixes() {
		if p == units.Base {
			continue
		}
		out = append(out, Prefix{Name: p.Name(), Symbol: p.Symbol(), Exponent: p.Exponent()})
	}
	return out
}
