// Package model defines the configuration values that drive model selection.
// A Config names a model family and carries its hyperparameters; a Grid
// expands candidate values into the configuration list a search evaluates.
package model

import (
	"sort"
	"strconv"
	"strings"
)

// Params holds named numeric hyperparameters for a model configuration.
// Integer-valued hyperparameters such as mtry or ntree are stored as
// whole-number float64 values.
type Params map[string]float64

// Get returns the named parameter, or dflt when it is absent.
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

// GetInt returns the named parameter truncated to int, or dflt when it is absent.
func (p Params) GetInt(name string, dflt int) int {
	if v, ok := p[name]; ok {
		return int(v)
	}
	return dflt
}

// Clone returns an independent copy of the parameter map.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Config identifies one model configuration: a family name plus its
// hyperparameters. Configurations are compared by value, so two Configs
// with the same family and parameters are interchangeable.
type Config struct {
	Family string
	Params Params
}

// NewConfig creates a configuration for the given family. A nil params map
// is treated as empty.
func NewConfig(family string, params Params) Config {
	if params == nil {
		params = Params{}
	}
	return Config{Family: family, Params: params}
}

// Key returns a canonical string identity for the configuration: the family
// name followed by name=value pairs in sorted parameter order. Equal
// configurations always produce the same key, which makes it usable as a
// map key and as a stable log token.
//
// Examples: "linear", "forest mtry=2", "forest max_depth=8 mtry=3".
func (c Config) Key() string {
	if len(c.Params) == 0 {
		return c.Family
	}

	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(c.Family)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(c.Params[name], 'g', -1, 64))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return c.Key()
}

// Equal reports whether two configurations name the same family with the
// same parameters.
func (c Config) Equal(other Config) bool {
	if c.Family != other.Family || len(c.Params) != len(other.Params) {
		return false
	}
	for name, v := range c.Params {
		ov, ok := other.Params[name]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Grid declares candidate values per hyperparameter name.
type Grid map[string][]float64

// Configs expands the grid into the full cross-product of configurations
// for the given family. Parameter names are processed in sorted order and
// values in declaration order, so a given grid always expands to the same
// configuration sequence. An empty grid yields the single parameterless
// configuration for the family.
func (g Grid) Configs(family string) []Config {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := []Config{{Family: family, Params: Params{}}}
	for _, name := range names {
		values := g[name]
		next := make([]Config, 0, len(configs)*len(values))
		for _, c := range configs {
			for _, v := range values {
				params := c.Params.Clone()
				params[name] = v
				next = append(next, Config{Family: family, Params: params})
			}
		}
		configs = next
	}
	return configs
}
