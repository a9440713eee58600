package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/akarpov/minefield/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// executeCommand applies one text command to a session:
//
//	o x y // reveal the cell at x:y (chords on a revealed number)
//	f x y // toggle a flag at x:y
//	g     // no-op, fetch state
//
// Out-of-bounds coordinates are valid input and leave the game unchanged,
// matching the engine contract. Caller must hold the session lock.
func executeCommand(s *GameSession, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return nil
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		s.Game.Reveal(mines.Point{X: x, Y: y})
		return nil
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		s.Game.ToggleFlag(mines.Point{X: x, Y: y})
		return nil
	}
	return errors.New("invalid command")
}
