package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ucalc/internal/units"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	t.Run("Covers every dimension", func(t *testing.T) {
		for _, d := range units.Dimensions() {
			assert.NotEmpty(t, r.ByDimension(d), d.String())
		}
		assert.Equal(t, len(builtins), r.Len())
		assert.Same(t, r, Default())
	})

	t.Run("Lookup", func(t *testing.T) {
		u, ok := r.Lookup("furlong")
		require.True(t, ok)
		assert.Equal(t, "fur", u.Symbol())
		assert.InDelta(t, 201.168, u.ScaleToBase(), 1e-9)

		_, ok = r.Lookup("fur")
		assert.False(t, ok)
	})

	t.Run("All returns a copy", func(t *testing.T) {
		all := r.All()
		all[0] = units.FundamentalUnit{}
		assert.Equal(t, "meter", r.All()[0].Name())
	})
}

func TestResolve(t *testing.T) {
	r := Default()

	tests := []struct {
		token  string
		name   string
		prefix units.MetricPrefix
	}{
		{"meter", "meter", units.Base},
		{"m", "meter", units.Base},
		{"km", "meter", units.Kilo},
		{"kilometer", "meter", units.Kilo},
		{"kilometers", "meter", units.Kilo},
		{"mm", "meter", units.Milli},
		{"μm", "meter", units.Micro},
		{"um", "meter", units.Micro},
		{"ft", "foot", units.Base},
		{"mi", "mile", units.Base},
		{"nmi", "nautical_mile", units.Base},
		{"min", "minute", units.Base},
		{"h", "hour", units.Base},
		{"hours", "hour", units.Base},
		{"ms", "second", units.Milli},
		{"millisecond", "second", units.Milli},
		{"kg", "gram", units.Kilo},
		{"dag", "gram", units.Deca},
		{"°F", "fahrenheit", units.Base},
		{"K", "kelvin", units.Base},
		{"mK", "kelvin", units.Milli},
		{"cd", "candela", units.Base},
		{"kmol", "mole", units.Kilo},
		{"mA", "ampere", units.Milli},
		{"statA", "statampere", units.Base},
		{"tn", "short_ton", units.Base},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			u, err := r.Resolve(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.name, u.BaseName())
			assert.Equal(t, tt.prefix, u.Prefix())
		})
	}

	t.Run("Unknown tokens", func(t *testing.T) {
		for _, token := range []string{"", "parsec", "xm", "kilos", "kilo"} {
			_, err := r.Resolve(token)
			assert.ErrorIs(t, err, ErrUnresolvedUnit, token)
		}
	})
}

func TestRegistryConstruction(t *testing.T) {
	league := units.MustUnit(units.NewUnit("league", "lea", units.Length, 4828.032))

	t.Run("Extend", func(t *testing.T) {
		r, err := Default().Extend(league)
		require.NoError(t, err)
		assert.Equal(t, Default().Len()+1, r.Len())

		u, err := r.Resolve("klea")
		require.NoError(t, err)
		assert.Equal(t, units.Kilo, u.Prefix())

		_, err = Default().Resolve("lea")
		assert.ErrorIs(t, err, ErrUnresolvedUnit)
	})

	t.Run("Duplicate name", func(t *testing.T) {
		_, err := New(league, league)
		assert.ErrorIs(t, err, ErrDuplicateUnit)
	})

	t.Run("Zero unit", func(t *testing.T) {
		_, err := New(units.FundamentalUnit{})
		assert.ErrorIs(t, err, units.ErrInvalidUnit)
	})

	t.Run("Prefixes are stripped", func(t *testing.T) {
		r, err := New(league.WithPrefix(units.Kilo))
		require.NoError(t, err)
		assert.Equal(t, units.Base, r.All()[0].Prefix())
	})
}
