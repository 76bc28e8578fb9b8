package airspace

import (
	"errors"
	"strings"
)

type Direction string

const (
	DirectionN  Direction = "N"
	DirectionNE Direction = "NE"
	DirectionE  Direction = "E"
	DirectionSE Direction = "SE"
	DirectionS  Direction = "S"
	DirectionSW Direction = "SW"
	DirectionW  Direction = "W"
	DirectionNW Direction = "NW"
)

// Directions lists the eight headings in clockwise order starting at north.
var Directions = [...]Direction{
	DirectionN,
	DirectionNE,
	DirectionE,
	DirectionSE,
	DirectionS,
	DirectionSW,
	DirectionW,
	DirectionNW,
}

var ErrInvalidDirection = errors.New("invalid direction")

func ParseDirection(raw string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(raw)))
	if !d.Valid() {
		return "", ErrInvalidDirection
	}
	return d, nil
}

func (d Direction) Valid() bool {
	switch d {
	case DirectionN, DirectionNE, DirectionE, DirectionSE, DirectionS, DirectionSW, DirectionW, DirectionNW:
		return true
	default:
		return false
	}
}

// Delta returns the per-tick offset on each axis. Screen coordinates: y grows southwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirectionN:
		return 0, -1
	case DirectionNE:
		return 1, -1
	case DirectionE:
		return 1, 0
	case DirectionSE:
		return 1, 1
	case DirectionS:
		return 0, 1
	case DirectionSW:
		return -1, 1
	case DirectionW:
		return -1, 0
	case DirectionNW:
		return -1, -1
	default:
		return 0, 0
	}
}

func (d Direction) Glyph() string {
	switch d {
	case DirectionN:
		return "↑"
	case DirectionNE:
		return "↗"
	case DirectionE:
		return "→"
	case DirectionSE:
		return "↘"
	case DirectionS:
		return "↓"
	case DirectionSW:
		return "↙"
	case DirectionW:
		return "←"
	case DirectionNW:
		return "↖"
	default:
		return "?"
	}
}
