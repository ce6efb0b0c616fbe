package game

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/akarpov/minesweeper-ai/internal/ai"
)

var Log = logrus.New()

// ErrGameOver is returned by Step once the session has reached a
// terminal status.
var ErrGameOver = errors.New("game is over")

type Status int

const (
	Playing Status = iota
	Won
	Lost
	Stalled
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Stalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// Session is the driver: it couples one minefield with one agent and
// runs the observe/move protocol between them. Exported fields are gob
// encoded for storage; call SetRand after decoding.
type Session struct {
	Field  *Minefield
	Agent  *ai.Agent
	Status Status
	Steps  int

	// LastMove is the most recent cell the agent played; on a lost game
	// it is the mine that ended it.
	LastMove ai.Cell
}

func NewSession(width, height, mineCount int, r *rand.Rand) (*Session, error) {
	field, err := NewMinefield(width, height, mineCount, r)
	if err != nil {
		return nil, err
	}
	return &Session{
		Field: field,
		Agent: ai.NewAgent(width, height, r),
	}, nil
}

// DecodeSession restores a stored session. The random source is not
// part of the encoding; call SetRand before playing on.
func DecodeSession(buf []byte) (*Session, error) {
	var s Session
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s); err != nil {
		return nil, err
	}
	if s.Field.Flags == nil {
		s.Field.Flags = make(ai.CellSet)
	}
	s.Agent.InitSets()
	return &s, nil
}

func (s *Session) SetRand(r *rand.Rand) {
	s.Agent.SetRand(r)
}

func (s *Session) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flagKnownMines mirrors the agent's confirmed mines onto the field.
func (s *Session) flagKnownMines() {
	for c := range s.Agent.Mines {
		s.Field.Flag(c)
	}
}

// Open plays a specific cell, as an external (human) move. The agent
// observes the revealed count so its knowledge keeps up with the board.
func (s *Session) Open(cell ai.Cell) error {
	if s.Status != Playing {
		return ErrGameOver
	}
	if !s.Field.InBounds(cell) {
		return &ai.InvalidObservationError{Cell: cell, Reason: "cell out of bounds"}
	}
	s.Steps++
	s.LastMove = cell
	if s.Field.IsMine(cell) {
		s.Status = Lost
		return nil
	}
	if err := s.Agent.Observe(cell, s.Field.NeighborMineCount(cell)); err != nil {
		return err
	}
	s.flagKnownMines()
	if s.Field.Won() {
		s.Status = Won
	}
	return nil
}

// Step lets the agent play one move: a certain-safe cell when it has
// one, a random guess otherwise. Returns the cell played.
func (s *Session) Step() (ai.Cell, error) {
	if s.Status != Playing {
		return ai.Cell{}, ErrGameOver
	}
	cell, err := s.Agent.SafeMove()
	if errors.Is(err, ai.ErrNoMoveAvailable) {
		cell, err = s.Agent.RandomMove()
	}
	if errors.Is(err, ai.ErrNoMoveAvailable) {
		// Nothing left to open: every cell is either played or a
		// confirmed mine. Flag what we know and settle the game.
		s.flagKnownMines()
		if s.Field.Won() {
			s.Status = Won
		} else {
			s.Status = Stalled
		}
		return ai.Cell{}, err
	} else if err != nil {
		return ai.Cell{}, err
	}
	Log.Debug("agent plays ", cell)
	if err := s.Open(cell); err != nil {
		return cell, err
	}
	return cell, nil
}

// Play runs Step until the session settles or maxSteps is exhausted, in
// which case the game counts as stalled.
func (s *Session) Play(maxSteps int) (Status, error) {
	for range maxSteps {
		if s.Status != Playing {
			return s.Status, nil
		}
		if _, err := s.Step(); err != nil && !errors.Is(err, ai.ErrNoMoveAvailable) {
			return s.Status, err
		}
	}
	if s.Status == Playing {
		s.Status = Stalled
	}
	return s.Status, nil
}
