package layout

import "fmt"

// Direction is one of the four growth directions. The zero value is Up.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in rotation order.
var Directions = [4]Direction{Up, Right, Down, Left}

// Next returns the direction a quarter turn clockwise from d.
func (d Direction) Next() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	}
	panic(fmt.Sprintf("layout: invalid direction %d", int(d)))
}

// Previous returns the direction a quarter turn counter-clockwise from d.
func (d Direction) Previous() Direction {
	switch d {
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	case Up:
		return Left
	}
	panic(fmt.Sprintf("layout: invalid direction %d", int(d)))
}

// Valid reports whether d is one of the four declared directions.
func (d Direction) Valid() bool { return d >= Up && d <= Left }

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
