package agent

import (
	"math"

	"github.com/nstehr/vimy/reflex-core/model"
	"github.com/nstehr/vimy/reflex-core/rules"
)

// observation carries the values weight rules need alongside the features.
type observation struct {
	threat     float64 // nearest threat from the successor cell, +Inf if none
	threatened bool
	invaders   int
}

// baseScore is the feature every role shares.
func (a *Agent) baseScore(succ model.World) float64 {
	if a.Policy.Doctrine().Forage {
		return -float64(len(succ.Food(a.side.Opponent())))
	}
	return float64(succ.Score(a.side))
}

func (a *Agent) offenseFeatures(w, succ model.World, action model.Direction) (rules.Vector, observation) {
	d := a.Policy.Doctrine()
	var v rules.Vector
	obs := observation{threat: math.Inf(1)}

	v.Set(rules.SuccessorScore, a.baseScore(succ))
	pos, ok := succ.Agent(a.Index).Position()
	if !ok {
		return v, obs
	}

	if dist, ok := nearest(a.dist, pos, succ.Food(a.side.Opponent())); ok {
		v.Set(rules.DistanceToFood, float64(dist))
	}

	// No visible threat means no danger: the distance feature is omitted
	// rather than taken over an empty set.
	if dist, ok := nearest(a.dist, pos, threatPositions(succ, a.Index)); ok {
		obs.threat = float64(dist)
		v.Set(rules.OpponentDistance, float64(dist))
		obs.threatened = dist <= d.DangerRadius
	}
	if obs.threatened {
		v.Set(rules.Danger, d.DangerOn)
	} else {
		v.Set(rules.Danger, d.DangerOff)
	}

	if dist, ok := nearest(a.dist, pos, a.home); ok {
		v.Set(rules.HomeDistance, float64(dist))
	}

	if dist, ok := nearest(a.dist, pos, succ.Capsules(a.side.Opponent())); ok {
		x := float64(dist)
		if obs.threatened {
			x *= d.CapsuleDetour
		}
		v.Set(rules.CapsuleDistance, x)
	}

	a.setMotion(&v, w, action)

	if a.corridor.Trapped(w, a.Index, action, obs.threat) {
		v.Set(rules.Trapped, 1)
	}
	return v, obs
}

func (a *Agent) defenseFeatures(w, succ model.World, action model.Direction) (rules.Vector, observation) {
	var v rules.Vector
	obs := observation{threat: math.Inf(1)}

	v.Set(rules.SuccessorScore, a.baseScore(succ))
	me := succ.Agent(a.Index)
	if !me.Pacman {
		v.Set(rules.OnDefense, 1)
	}
	a.setMotion(&v, w, action)

	pos, ok := me.Position()
	if !ok {
		return v, obs
	}

	invaders := invaderPositions(succ, a.Index)
	obs.invaders = len(invaders)
	v.Set(rules.NumInvaders, float64(len(invaders)))
	if len(invaders) > 0 {
		v.Set(rules.InvaderPresent, 1)
	}
	if dist, ok := nearest(a.dist, pos, invaders); ok {
		v.Set(rules.InvaderDistance, float64(dist))
		v.Set(rules.EnemyDistance, float64(dist))
	}
	if dist, ok := nearest(a.dist, pos, threatPositions(succ, a.Index)); ok {
		obs.threat = float64(dist)
	}

	if a.guard != nil {
		v.Set(rules.GuardDistance, float64(a.dist.Distance(pos, a.guard.Target)))
	}
	return v, obs
}

// setMotion flags stopping and reversing the current heading.
func (a *Agent) setMotion(v *rules.Vector, w model.World, action model.Direction) {
	if action == model.Stop {
		v.Set(rules.StopAction, 1)
	}
	if action == w.Agent(a.Index).Heading.Reverse() {
		v.Set(rules.ReverseAction, 1)
	}
}

// threatPositions lists observed opponents that can capture agent.
func threatPositions(w model.World, agent int) []model.Position {
	var out []model.Position
	for _, i := range model.Opponents(w, agent) {
		s := w.Agent(i)
		if !s.Threatens() {
			continue
		}
		if p, ok := s.Position(); ok {
			out = append(out, p)
		}
	}
	return out
}

// invaderPositions lists observed opponents on agent's home territory.
func invaderPositions(w model.World, agent int) []model.Position {
	var out []model.Position
	for _, i := range model.Opponents(w, agent) {
		s := w.Agent(i)
		if !s.Invading() {
			continue
		}
		if p, ok := s.Position(); ok {
			out = append(out, p)
		}
	}
	return out
}
