package game

import (
	"fmt"
	"strings"

	"geister/utils"
)

// Direction is one of the four orthogonal steps a piece can take.
type Direction int

const (
	North Direction = iota
	East
	West
	South
)

// Directions lists every direction in the order the policy searches them.
var Directions = []Direction{North, East, West, South}

var (
	directionLetters = []string{"n", "e", "w", "s"}
	directionNames   = []string{"north", "east", "west", "south"}
)

func (d Direction) Valid() bool {
	return d >= North && d <= South
}

// Delta returns the coordinate change of a single step. North is towards row 0.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	case South:
		return 0, 1
	}
	return 0, 0
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case West:
		return East
	case South:
		return North
	}
	return d
}

func (d Direction) String() string {
	if !d.Valid() {
		return "?"
	}
	return directionLetters[d]
}

// ParseDirection accepts a letter (n, e, w, s) or a full name.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := utils.FindIndex(directionLetters, s); i >= 0 {
		return Direction(i), nil
	}
	if i := utils.FindIndex(directionNames, s); i >= 0 {
		return Direction(i), nil
	}
	return North, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
