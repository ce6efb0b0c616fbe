package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/akarpov/minesweeper-ai/internal/game"
)

type GameSession struct {
	SessionId int
	PlayerId  *int
	Session   *game.Session
	StartedAt time.Time
	EndedAt   time.Time
}

type gameSessionJSON struct {
	SessionId string        `json:"session_id"`
	Grid      game.GridView `json:"grid"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	MineCount int           `json:"mine_count"`
	Status    string        `json:"status"`
	Steps     int           `json:"steps"`
	StartedAt int64         `json:"started_at"`
	EndedAt   *int64        `json:"ended_at,omitempty"`
}

func (s GameSession) MarshalJSON() ([]byte, error) {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return json.Marshal(gameSessionJSON{
		SessionId: strconv.Itoa(s.SessionId),
		Grid:      s.Session.View(),
		Width:     s.Session.Field.Width,
		Height:    s.Session.Field.Height,
		MineCount: s.Session.Field.MineCount,
		Status:    s.Session.Status.String(),
		Steps:     s.Session.Steps,
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	})
}

// CreateGameSession stores a fresh session; playerId is nil for an
// anonymous game.
func (pg *Postgres) CreateGameSession(
	ctx context.Context, playerId *int, sess *game.Session,
) (*GameSession, error) {
	state, err := sess.Bytes()
	if err != nil {
		return nil, err
	}
	var (
		sessionId int
		startedAt time.Time
	)
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO game_session (
			player_id, width, height, mine_count, status, steps, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @status, @steps, @state
		)
		RETURNING game_session_id, started_at;`,
		pgx.NamedArgs{
			"player_id":  playerId,
			"width":      sess.Field.Width,
			"height":     sess.Field.Height,
			"mine_count": sess.Field.MineCount,
			"status":     sess.Status.String(),
			"steps":      sess.Steps,
			"state":      state,
		}).Scan(&sessionId, &startedAt); err != nil {
		return nil, err
	}
	return &GameSession{
		SessionId: sessionId,
		PlayerId:  playerId,
		Session:   sess,
		StartedAt: startedAt,
	}, nil
}

func (pg *Postgres) GetGameSession(
	ctx context.Context, sessionId int,
) (*GameSession, error) {
	var (
		s       = GameSession{SessionId: sessionId}
		state   []byte
		endedAt *time.Time
	)
	if err := pg.db.QueryRow(ctx, `
		SELECT player_id, started_at, ended_at, state
		FROM game_session
		WHERE game_session_id = $1;`,
		sessionId).Scan(&s.PlayerId, &s.StartedAt, &endedAt, &state); err != nil {
		return nil, err
	}
	if endedAt != nil {
		s.EndedAt = *endedAt
	}
	sess, err := game.DecodeSession(state)
	if err != nil {
		return nil, err
	}
	s.Session = sess
	return &s, nil
}

func (pg *Postgres) UpdateGameSession(
	ctx context.Context, s *GameSession,
) error {
	state, err := s.Session.Bytes()
	if err != nil {
		return err
	}
	var endedAt *time.Time
	if !s.EndedAt.IsZero() {
		endedAt = &s.EndedAt
	}
	_, err = pg.db.Exec(ctx, `
		UPDATE game_session
		SET status = @status
			, steps = @steps
			, state = @state
			, ended_at = @ended_at
		WHERE game_session_id = @game_session_id;`,
		pgx.NamedArgs{
			"game_session_id": s.SessionId,
			"status":          s.Session.Status.String(),
			"steps":           s.Session.Steps,
			"state":           state,
			"ended_at":        endedAt,
		})
	return err
}
