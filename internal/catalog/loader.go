package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ucalc/internal/units"
)

// ErrUnsupportedFormat reports a definition file in an unknown encoding.
var ErrUnsupportedFormat = errors.New("unsupported definition format")

// Format is the encoding of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// DefinitionPattern matches definition files below a directory.
const DefinitionPattern = "**/*.{yaml,yml,toml,json}"

// Definition is the on-disk form of a unit. Temperature units set Degree
// (kelvin per degree) and Offset (reading at 0 °C) instead of Scale.
type Definition struct {
	Name      string  `json:"name" yaml:"name" toml:"name"`
	Symbol    string  `json:"symbol" yaml:"symbol" toml:"symbol"`
	Dimension string  `json:"dimension" yaml:"dimension" toml:"dimension"`
	Scale     float64 `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	Degree    float64 `json:"degree,omitempty" yaml:"degree,omitempty" toml:"degree,omitempty"`
	Offset    float64 `json:"offset,omitempty" yaml:"offset,omitempty" toml:"offset,omitempty"`
}

// Document is a set of definitions.
type Document struct {
	Units []Definition `json:"units" yaml:"units" toml:"units"`
}

// Unit validates d and builds the unit it describes.
func (d Definition) Unit() (units.FundamentalUnit, error) {
	dim, ok := units.ParseDimension(d.Dimension)
	if !ok {
		return units.FundamentalUnit{}, fmt.Errorf("%w: %q has unknown dimension %q", units.ErrInvalidUnit, d.Name, d.Dimension)
	}
	if d.Degree != 0 {
		if dim != units.Temperature {
			return units.FundamentalUnit{}, fmt.Errorf("%w: %q sets degree but is not a temperature", units.ErrInvalidUnit, d.Name)
		}
		return units.NewTemperatureUnit(d.Name, d.Symbol, d.Degree, d.Offset)
	}
	return units.NewUnit(d.Name, d.Symbol, dim, d.Scale)
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode parses a definition document and builds its units.
func Decode(data []byte, format Format) ([]units.FundamentalUnit, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		err = sonic.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s parse error: %w", format, err)
	}

	out := make([]units.FundamentalUnit, 0, len(doc.Units))
	for i, def := range doc.Units {
		u, err := def.Unit()
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
		out = append(out, u)
	}
	return out, nil
}

// Loader reads definition files from disk.
type Loader struct {
	log     *zap.Logger
	pattern string
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log, pattern: DefinitionPattern}
}

// LoadFile reads one definition file.
func (l *Loader) LoadFile(path string) ([]units.FundamentalUnit, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	list, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Debug("Loaded unit definitions", zap.String("path", path), zap.Int("count", len(list)))
	return list, nil
}

// LoadDir loads every definition file below dir in lexical path order.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]units.FundamentalUnit, error) {
	paths, err := l.find(ctx, dir)
	if err != nil {
		return nil, err
	}

	var out []units.FundamentalUnit
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		list, err := l.LoadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
	}
	l.log.Info("Loaded unit directory",
		zap.String("dir", dir),
		zap.Int("files", len(paths)),
		zap.Int("units", len(out)),
	)
	return out, nil
}

func (l *Loader) find(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var (
		mu    sync.Mutex
		paths []string
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, dir, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			l.log.Warn("Skipping unreadable path", zap.String("path", p), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(l.pattern, filepath.ToSlash(rel)); ok {
			mu.Lock()
			paths = append(paths, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
