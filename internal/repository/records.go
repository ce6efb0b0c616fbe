package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type GameRecord struct {
	GameSessionId string  `db:"game_session_id" json:"session_id"`
	Username      *string `db:"username" json:"username"`
	Width         int     `db:"width" json:"width"`
	Height        int     `db:"height" json:"height"`
	MineCount     int     `db:"mine_count" json:"mine_count"`
	Steps         int     `db:"steps" json:"steps"`
	Playtime      float64 `db:"playtime" json:"playtime"`
}

type GameRecordFilters struct {
	username *string
}

func (f GameRecordFilters) WhereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	whereClauses := []string{}
	if f.username != nil {
		args["username"] = f.username
		whereClauses = append(whereClauses, "username = @username")
	}
	if len(whereClauses) == 0 {
		return "", args
	}
	return strings.Join(whereClauses, " and "), args
}

type GameRecordsOption = func(*GameRecordFilters)

func GameRecordsForPlayer(username string) GameRecordsOption {
	return func(f *GameRecordFilters) {
		f.username = &username
	}
}

// GetGameRecords lists completed won games ordered by playtime.
func (pg *Postgres) GetGameRecords(
	ctx context.Context, options ...GameRecordsOption,
) ([]GameRecord, error) {
	filters := &GameRecordFilters{}
	for _, op := range options {
		op(filters)
	}

	sql := `
	select
		game_session_id
		, username
		, width
		, height
		, mine_count
		, steps
		, (
			extract('epoch' from ended_at) - extract('epoch' from started_at)
		) * 1000 playtime
	from game_session
		left outer join player using (player_id)
	where
		status = 'won'
		and ended_at is not null`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		sql += " and " + whereClause
	}

	sql += " order by playtime"

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameRecord])
}
