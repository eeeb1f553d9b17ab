package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFeature is returned when a doctrine names a feature that does not exist.
var ErrUnknownFeature = errors.New("unknown feature")

// Feature identifies one numeric input of the linear evaluator.
type Feature int

const (
	SuccessorScore   Feature = iota // score differential, or -remaining food when foraging
	DistanceToFood                  // maze distance to the nearest target food
	OpponentDistance                // maze distance to the nearest threat
	Danger                          // danger flag: a threat is within the danger radius
	HomeDistance                    // maze distance to the nearest home frontier cell
	CapsuleDistance                 // maze distance to the nearest capsule, scaled while threatened
	StopAction                      // 1 when the action is Stop
	ReverseAction                   // 1 when the action reverses the current heading
	Trapped                         // 1 when the corridor scan reports a dead end
	OnDefense                       // 1 unless the agent is on enemy territory
	NumInvaders                     // observed invaders
	InvaderPresent                  // 1 when any invader is observed
	InvaderDistance                 // maze distance to the nearest invader
	GuardDistance                   // maze distance to the guard target
	EnemyDistance                   // maze distance to the tracked invader

	numFeatures
)

// featureNames are the wire names used in doctrine files and logs.
var featureNames = [numFeatures]string{
	SuccessorScore:   "successorScore",
	DistanceToFood:   "distanceToFood",
	OpponentDistance: "myOpponent_distance",
	Danger:           "real_danger_distance",
	HomeDistance:     "goinghomedistance",
	CapsuleDistance:  "distanceToCapsule",
	StopAction:       "stop",
	ReverseAction:    "reverse",
	Trapped:          "safety",
	OnDefense:        "onDefense",
	NumInvaders:      "numInvaders",
	InvaderPresent:   "real_opponent_num",
	InvaderDistance:  "invaderDistance",
	GuardDistance:    "Dis",
	EnemyDistance:    "distanceToEnemy",
}

// Features lists every feature in declaration order.
func Features() []Feature {
	out := make([]Feature, numFeatures)
	for i := range out {
		out[i] = Feature(i)
	}
	return out
}

func (f Feature) String() string {
	if f >= 0 && f < numFeatures {
		return featureNames[f]
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}

// ParseFeature resolves a wire name (case-insensitive).
func ParseFeature(name string) (Feature, error) {
	for i, n := range featureNames {
		if strings.EqualFold(n, name) {
			return Feature(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}

func (f Feature) MarshalText() ([]byte, error) {
	if f < 0 || f >= numFeatures {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFeature, int(f))
	}
	return []byte(featureNames[f]), nil
}

func (f *Feature) UnmarshalText(text []byte) error {
	parsed, err := ParseFeature(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Vector holds one value per feature. Unset features are zero.
type Vector [numFeatures]float64

// Set assigns v to f.
func (v *Vector) Set(f Feature, x float64) { v[f] = x }

// Get returns the value of f.
func (v *Vector) Get(f Feature) float64 { return v[f] }

// NonZero returns the set features keyed by name, for logging.
func (v *Vector) NonZero() map[string]float64 {
	out := make(map[string]float64)
	for i, x := range v {
		if x != 0 {
			out[featureNames[i]] = x
		}
	}
	return out
}
