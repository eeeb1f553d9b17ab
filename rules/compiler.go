package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// WeightRule computes one feature weight from the decision context.
type WeightRule struct {
	Feature Feature
	Src     string      // expr source (preserved for logging)
	program *vm.Program // compiled bytecode
}

// Policy is a compiled doctrine: static weights plus context-dependent rules.
type Policy struct {
	doctrine Doctrine
	static   Weights
	rules    []*WeightRule
}

// CompileDoctrine validates d and compiles its weight rules. Generated rules
// are built via fmt.Sprintf from numeric doctrine fields; explicit overrides
// replace generated rules for the same feature.
func CompileDoctrine(d Doctrine) (*Policy, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	sources := make(map[Feature]string)
	if d.Role == Offense && (d.HomePressureRadius > 0 || d.TimePressureTicks > 0) {
		sources[HomeDistance] = homePressureSrc(d)
	}
	for f, src := range d.Overrides {
		sources[f] = src
	}

	rules := make([]*WeightRule, 0, len(sources))
	for f, src := range sources {
		prog, err := expr.Compile(src, expr.Env(WeightEnv{}), expr.AsFloat64())
		if err != nil {
			return nil, fmt.Errorf("doctrine %q: compile %s weight: %w", d.Name, f, err)
		}
		rules = append(rules, &WeightRule{Feature: f, Src: src, program: prog})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Feature < rules[j].Feature })

	return &Policy{
		doctrine: d,
		static:   WeightsOf(d.Weights),
		rules:    rules,
	}, nil
}

// homePressureSrc scales the return-home weight with the load carried and the
// closeness of the nearest threat, and overrides it under time pressure.
func homePressureSrc(d Doctrine) string {
	return fmt.Sprintf(`TimeLeft < %d ? %s : (ThreatDistance < %d ? %s * Carrying / ThreatDistance : 0.0)`,
		d.TimePressureTicks, floatLit(d.TimePressureWeight),
		d.HomePressureRadius, floatLit(-d.HomePressureScale))
}

// floatLit formats x so expr types it as float64.
func floatLit(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return "(" + s + ")"
}

// Doctrine returns the validated doctrine the policy was compiled from.
func (p *Policy) Doctrine() Doctrine { return p.doctrine }

// Rules returns the compiled weight rules ordered by feature.
func (p *Policy) Rules() []*WeightRule { return p.rules }

// Weights evaluates every rule against env on top of the static weights.
// A failing rule is logged and leaves the static weight in place.
func (p *Policy) Weights(env WeightEnv) Weights {
	w := p.static
	for _, r := range p.rules {
		out, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("weight rule error", "doctrine", p.doctrine.Name, "feature", r.Feature, "error", err)
			continue
		}
		switch v := out.(type) {
		case float64:
			w[r.Feature] = v
		case int:
			w[r.Feature] = float64(v)
		default:
			slog.Warn("weight rule returned non-number", "doctrine", p.doctrine.Name, "feature", r.Feature, "value", out)
		}
	}
	return w
}

// Swap recompiles the policy from d. If compilation fails the current
// weights remain active.
func (p *Policy) Swap(d Doctrine) error {
	next, err := CompileDoctrine(d)
	if err != nil {
		return err
	}
	*p = *next
	slog.Info("doctrine swapped", "name", d.Name, "role", d.Role, "rules", len(next.rules))
	return nil
}
