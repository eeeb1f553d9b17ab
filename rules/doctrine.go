package rules

import (
	"fmt"
	"math"
)

// Role selects the feature extractor an agent runs.
type Role string

const (
	Offense Role = "offense"
	Defense Role = "defense"
)

// Doctrine is the named tuning record for one agent. Behavioral variants of
// the reflex agents differ only in these values.
type Doctrine struct {
	Name string `yaml:"name"`
	Role Role   `yaml:"role"`

	// Forage replaces the score differential with -remaining food.
	Forage bool `yaml:"forage"`

	// DangerRadius flags a threat within this maze distance.
	DangerRadius int `yaml:"danger_radius"`
	// DangerOn/DangerOff are the two values of the danger flag.
	DangerOn  float64 `yaml:"danger_on"`
	DangerOff float64 `yaml:"danger_off"`

	// CorridorRadius enables the dead-end scan when a threat is closer than this.
	// Zero disables the scan.
	CorridorRadius int `yaml:"corridor_radius"`
	// LookaheadDepth bounds the corridor walk.
	LookaheadDepth int `yaml:"lookahead_depth"`

	// CapsuleDetour scales the capsule distance while a threat is within
	// DangerRadius.
	CapsuleDetour float64 `yaml:"capsule_detour"`

	// HomePressureRadius activates the return-home weight when a threat is
	// closer than this; the weight is -HomePressureScale * carrying / distance.
	HomePressureRadius int     `yaml:"home_pressure_radius"`
	HomePressureScale  float64 `yaml:"home_pressure_scale"`
	// Below TimePressureTicks moves left the return-home weight is forced
	// to TimePressureWeight.
	TimePressureTicks  int     `yaml:"time_pressure_ticks"`
	TimePressureWeight float64 `yaml:"time_pressure_weight"`

	// EndgameFood triggers the run-home override when this many or fewer
	// target food items remain. Negative disables the override.
	EndgameFood int `yaml:"endgame_food"`

	// Guard enables the interception planner for the defense role.
	Guard bool `yaml:"guard"`
	// PatrolDepth moves the patrol line this many columns into home territory.
	PatrolDepth int `yaml:"patrol_depth"`
	// GuardStart and GuardRecenter are fractional frontier indices.
	GuardStart    float64 `yaml:"guard_start"`
	GuardRecenter float64 `yaml:"guard_recenter"`
	// InterceptRadius: invaders farther than this are ambushed on the frontier
	// instead of chased.
	InterceptRadius int `yaml:"intercept_radius"`

	Weights   map[Feature]float64 `yaml:"weights"`
	Overrides map[Feature]string  `yaml:"overrides"`
}

// Raider is the plain forager: it counts food, flees anything within six
// cells and never scans corridors.
func Raider() Doctrine {
	return Doctrine{
		Name:           "Raider",
		Role:           Offense,
		Forage:         true,
		DangerRadius:   6,
		DangerOn:       10,
		DangerOff:      0,
		LookaheadDepth: 4,
		EndgameFood:    2,
		Weights: map[Feature]float64{
			SuccessorScore:   100,
			DistanceToFood:   -4,
			OpponentDistance: -10,
			Danger:           -300,
		},
	}
}

// Skirmisher forages close to threats, detours to capsules, avoids dead-end
// corridors and runs home under load, threat or time pressure.
func Skirmisher() Doctrine {
	return Doctrine{
		Name:               "Skirmisher",
		Role:               Offense,
		Forage:             true,
		DangerRadius:       2,
		DangerOn:           1,
		DangerOff:          -1,
		CorridorRadius:     6,
		LookaheadDepth:     4,
		CapsuleDetour:      10,
		HomePressureRadius: 9,
		HomePressureScale:  10,
		TimePressureTicks:  100,
		TimePressureWeight: -30000,
		EndgameFood:        2,
		Weights: map[Feature]float64{
			SuccessorScore:   100,
			DistanceToFood:   -4,
			OpponentDistance: 1,
			Danger:           -100,
			StopAction:       -400,
			ReverseAction:    -50,
			CapsuleDistance:  -2,
			Trapped:          -1000,
		},
	}
}

// Sentry stays home and chases visible invaders.
func Sentry() Doctrine {
	return Doctrine{
		Name:        "Sentry",
		Role:        Defense,
		EndgameFood: 2,
		Weights: map[Feature]float64{
			NumInvaders:     -1000,
			OnDefense:       100,
			InvaderDistance: -10,
			StopAction:      -100,
			ReverseAction:   -2,
		},
	}
}

// Interceptor patrols a line behind the frontier and ambushes distant invaders.
func Interceptor() Doctrine {
	return Doctrine{
		Name:            "Interceptor",
		Role:            Defense,
		EndgameFood:     2,
		Guard:           true,
		PatrolDepth:     2,
		GuardStart:      3.0 / 4.0,
		GuardRecenter:   4.0 / 6.0,
		InterceptRadius: 9,
		Weights: map[Feature]float64{
			InvaderPresent: -500,
			OnDefense:      100,
			GuardDistance:  -1,
			ReverseAction:  -2,
			EnemyDistance:  -15,
		},
	}
}

// Presets indexes the built-in doctrines by lower-case name.
func Presets() map[string]Doctrine {
	return map[string]Doctrine{
		"raider":      Raider(),
		"skirmisher":  Skirmisher(),
		"sentry":      Sentry(),
		"interceptor": Interceptor(),
	}
}

// Validate rejects unknown roles and clamps every threshold into range.
func (d *Doctrine) Validate() error {
	switch d.Role {
	case Offense, Defense:
	case "":
		d.Role = Offense
	default:
		return fmt.Errorf("doctrine %q: unknown role %q", d.Name, d.Role)
	}
	for f := range d.Weights {
		if f < 0 || f >= numFeatures {
			return fmt.Errorf("doctrine %q: %w: %d", d.Name, ErrUnknownFeature, int(f))
		}
	}
	for f := range d.Overrides {
		if f < 0 || f >= numFeatures {
			return fmt.Errorf("doctrine %q: %w: %d", d.Name, ErrUnknownFeature, int(f))
		}
	}
	d.DangerRadius = clampInt(d.DangerRadius, 0, 50)
	d.CorridorRadius = clampInt(d.CorridorRadius, 0, 50)
	d.LookaheadDepth = clampInt(d.LookaheadDepth, 1, 16)
	d.HomePressureRadius = clampInt(d.HomePressureRadius, 0, 50)
	d.TimePressureTicks = clampInt(d.TimePressureTicks, 0, math.MaxInt32)
	d.PatrolDepth = clampInt(d.PatrolDepth, 0, 50)
	d.InterceptRadius = clampInt(d.InterceptRadius, 0, 100)
	d.GuardStart = clamp(d.GuardStart, 0, 1)
	d.GuardRecenter = clamp(d.GuardRecenter, 0, 1)
	if d.CapsuleDetour < 1 {
		d.CapsuleDetour = 1
	}
	return nil
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
