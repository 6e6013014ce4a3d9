// Package config loads the YAML metric rule files consumed by
// cmd/simtriectl's --rules flag, decoding them into internal/metric.Rule
// values and compiling those into a metric.Metric.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/dawgo/simtrie/internal/metric"
)

// cache memoizes Compile across repeated calls with the same rule file
// content (e.g. a long-lived process reloading the same --rules path on
// every request), avoiding recompiling the 256x256 cost tables each time.
var cache = metric.NewCache()

// RuleFile is the on-disk shape of a metric rule file:
//
//   insert:
//     - { char: "e", cost: 0.5 }
//   delete:
//     - { char: "e", cost: 0.5 }
//   substitute:
//     - { from: "o", to: "0", cost: 0.25 }
//   transpose:
//     - { a: "e", b: "i", cost: 0.1 }
//
// Every char/from/to/a/b field holds exactly one byte; Rules rejects
// anything else (Parse itself accepts any string).
type RuleFile struct {
	Insert     []insertRule     `yaml:"insert"`
	Delete     []deleteRule     `yaml:"delete"`
	Substitute []substituteRule `yaml:"substitute"`
	Transpose  []transposeRule  `yaml:"transpose"`
}

type insertRule struct {
	Char string  `yaml:"char"`
	Cost float64 `yaml:"cost"`
}

type deleteRule struct {
	Char string  `yaml:"char"`
	Cost float64 `yaml:"cost"`
}

type substituteRule struct {
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
	Cost float64 `yaml:"cost"`
}

type transposeRule struct {
	A    string  `yaml:"a"`
	B    string  `yaml:"b"`
	Cost float64 `yaml:"cost"`
}

// Load reads and parses a rule file from path.
func Load(path string) (*RuleFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a rule file from r.
func Parse(r io.Reader) (*RuleFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "config: read rule file")
	}
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, errors.Wrap(err, "config: parse rule file")
	}
	return &rf, nil
}

// Rules flattens a RuleFile into the metric.Rule slice metric.Compile
// expects, validating that every char field is exactly one byte.
func (rf *RuleFile) Rules() ([]metric.Rule, error) {
	var out []metric.Rule

	for _, r := range rf.Insert {
		c, err := singleByte("insert.char", r.Char)
		if err != nil {
			return nil, err
		}
		out = append(out, metric.Insert(c, r.Cost))
	}
	for _, r := range rf.Delete {
		c, err := singleByte("delete.char", r.Char)
		if err != nil {
			return nil, err
		}
		out = append(out, metric.Delete(c, r.Cost))
	}
	for _, r := range rf.Substitute {
		from, err := singleByte("substitute.from", r.From)
		if err != nil {
			return nil, err
		}
		to, err := singleByte("substitute.to", r.To)
		if err != nil {
			return nil, err
		}
		out = append(out, metric.Substitute(from, to, r.Cost))
	}
	for _, r := range rf.Transpose {
		a, err := singleByte("transpose.a", r.A)
		if err != nil {
			return nil, err
		}
		b, err := singleByte("transpose.b", r.B)
		if err != nil {
			return nil, err
		}
		out = append(out, metric.Transpose(a, b, r.Cost))
	}
	return out, nil
}

// Compile parses path and compiles its rules into a *metric.Metric in one
// step.
func Compile(path string) (*metric.Metric, error) {
	rf, err := Load(path)
	if err != nil {
		return nil, err
	}
	rules, err := rf.Rules()
	if err != nil {
		return nil, err
	}
	return cache.Compile(rules)
}

func singleByte(field, s string) (byte, error) {
	if len(s) != 1 {
		return 0, errors.Errorf("config: %s must be exactly one byte, got %q", field, s)
	}
	return s[0], nil
}
