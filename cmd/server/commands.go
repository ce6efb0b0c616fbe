package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/akarpov/minesweeper-ai/internal/ai"
	"github.com/akarpov/minesweeper-ai/internal/game"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get state
	"o": 2, // open row col
	"f": 2, // flag row col
	"s": 0, // one AI step
	"a": 0, // AI autoplay to the end
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func executeCommand(s *game.Session, c string) (err error) {
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
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		cell := ai.Cell{Row: row, Col: col}
		if !s.Field.InBounds(cell) {
			return errors.New("invalid cell coordinates")
		}
		if err := s.Open(cell); err != nil && !errors.Is(err, game.ErrGameOver) {
			return err
		}
		return nil
	case "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		cell := ai.Cell{Row: row, Col: col}
		if !s.Field.InBounds(cell) {
			return errors.New("invalid cell coordinates")
		}
		s.Field.Flag(cell)
		return nil
	case "s":
		if _, err := s.Step(); err != nil &&
			!errors.Is(err, ai.ErrNoMoveAvailable) &&
			!errors.Is(err, game.ErrGameOver) {
			return err
		}
		return nil
	case "a":
		_, err := s.Play(s.Field.Width * s.Field.Height * 2)
		return err
	}
	return errors.New("invalid command")
}
