package rules

import "math"

// Weights maps every feature to a coefficient. Missing entries are zero.
type Weights [numFeatures]float64

// WeightsOf builds a total weight mapping from a sparse table.
func WeightsOf(table map[Feature]float64) Weights {
	var w Weights
	for f, x := range table {
		if f >= 0 && f < numFeatures {
			w[f] = x
		}
	}
	return w
}

// Score is the linear combination sum(features[f] * weights[f]).
func Score(v Vector, w Weights) float64 {
	s := 0.0
	for i := range v {
		if v[i] == 0 || w[i] == 0 {
			continue
		}
		s += v[i] * w[i]
	}
	return s
}

// WeightEnv is the per-action context exposed to weight expressions.
type WeightEnv struct {
	Carrying       int     // resource items held by the deciding agent
	ThreatDistance float64 // nearest threat from the successor cell, +Inf if none, never below 1
	TimeLeft       int     // moves left in the episode
	Invaders       int     // observed invaders on home territory
	Threatened     bool    // a threat is within the danger radius
}

// NewWeightEnv clamps a finite threat distance to at least 1 so expressions
// may divide by it.
func NewWeightEnv(carrying int, threat float64, timeLeft, invaders int, threatened bool) WeightEnv {
	if !math.IsInf(threat, 1) && threat < 1 {
		threat = 1
	}
	return WeightEnv{
		Carrying:       carrying,
		ThreatDistance: threat,
		TimeLeft:       timeLeft,
		Invaders:       invaders,
		Threatened:     threatened,
	}
}

// HasThreat reports whether any threat is observed.
func (e WeightEnv) HasThreat() bool { return !math.IsInf(e.ThreatDistance, 1) }

// TimePressure reports whether fewer than cutoff moves remain.
func (e WeightEnv) TimePressure(cutoff int) bool { return e.TimeLeft < cutoff }
