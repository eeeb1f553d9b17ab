package model

import (
	"fmt"
	"math"
)

// Position is a lattice cell on the board. (0,0) is the bottom-left corner.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns p moved one step in direction d. Stop leaves p unchanged.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Vec is a continuous board coordinate. Engines that animate movement in
// fractional steps report agents between lattice points.
type Vec struct {
	X float64
	Y float64
}

// VecOf returns the lattice point p as a continuous coordinate.
func VecOf(p Position) Vec { return Vec{X: float64(p.X), Y: float64(p.Y)} }

// Nearest rounds v to the closest lattice point.
func (v Vec) Nearest() Position {
	return Position{X: int(math.Floor(v.X + 0.5)), Y: int(math.Floor(v.Y + 0.5))}
}

// OnLattice reports whether v sits exactly on a lattice point.
func (v Vec) OnLattice() bool {
	return v == VecOf(v.Nearest())
}

// Direction is both a heading and an action.
type Direction byte

const (
	Stop Direction = iota
	North
	South
	East
	West
)

// Directions lists every action in a fixed order.
var Directions = [...]Direction{North, South, East, West, Stop}

var directionNames = [...]string{
	Stop:  "Stop",
	North: "North",
	South: "South",
	East:  "East",
	West:  "West",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Reverse is total and involutive; Stop maps to itself.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return Stop
	}
}

// Delta returns the unit step of d. North increases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
