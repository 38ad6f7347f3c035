package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"geopolitik/internal/app/lobby"
)

var nationColumnNames = []string{
	"id", "server_id", "owner_id", "owner_name", "name", "government_type", "flag_color", "tier",
	"population", "treasury", "food", "oil", "gdp", "soldiers", "tanks", "aircraft", "created_at",
}

const nationColumns = `id, server_id, owner_id, owner_name, name, government_type, flag_color, tier,
	population, treasury, food, oil, gdp, soldiers, tanks, aircraft, created_at`

func nationValues(n *lobby.Nation) []any {
	return []any{
		n.ID, n.ServerID, n.OwnerID, n.OwnerName, n.Name, n.GovernmentType, n.FlagColor,
		pgtype.Text{String: n.Tier, Valid: n.Tier != ""},
		n.Data.Population, n.Data.Treasury, n.Data.Food, n.Data.Oil, n.Data.GDP,
		n.Data.Military.Soldiers, n.Data.Military.Tanks, n.Data.Military.Aircraft,
		n.CreatedAt,
	}
}

func scanNation(row pgx.Row) (*lobby.Nation, error) {
	var (
		n    lobby.Nation
		tier pgtype.Text
	)
	err := row.Scan(
		&n.ID, &n.ServerID, &n.OwnerID, &n.OwnerName, &n.Name, &n.GovernmentType, &n.FlagColor, &tier,
		&n.Data.Population, &n.Data.Treasury, &n.Data.Food, &n.Data.Oil, &n.Data.GDP,
		&n.Data.Military.Soldiers, &n.Data.Military.Tanks, &n.Data.Military.Aircraft,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	n.Tier = tier.String
	return &n, nil
}

func (s *Store) InsertNation(ctx context.Context, n *lobby.Nation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO nations (`+nationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		nationValues(n)...,
	)
	return mapErr(err)
}

// InsertNations writes the batch with a single COPY, which commits all rows or none.
func (s *Store) InsertNations(ctx context.Context, nations []lobby.Nation) error {
	if len(nations) == 0 {
		return nil
	}
	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"nations"},
		nationColumnNames,
		pgx.CopyFromSlice(len(nations), func(i int) ([]any, error) {
			return nationValues(&nations[i]), nil
		}),
	)
	return mapErr(err)
}

func (s *Store) FindHumanNation(ctx context.Context, serverID, ownerID string) (*lobby.Nation, error) {
	return scanNation(s.pool.QueryRow(ctx,
		`SELECT `+nationColumns+` FROM nations WHERE server_id = $1 AND owner_id = $2 AND owner_id <> $3`,
		serverID, ownerID, lobby.BotOwnerID,
	))
}

func (s *Store) ListNations(ctx context.Context, serverID string) ([]lobby.Nation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+nationColumns+` FROM nations WHERE server_id = $1 ORDER BY created_at, id`,
		serverID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]lobby.Nation, 0)
	for rows.Next() {
		n, err := scanNation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *n)
	}
	return list, rows.Err()
}

func (s *Store) CountNations(ctx context.Context, serverID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM nations WHERE server_id = $1`, serverID).Scan(&count)
	return count, mapErr(err)
}

func (s *Store) HumanOwnerIDs(ctx context.Context, serverID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT owner_id FROM nations WHERE server_id = $1 AND owner_id <> $2`,
		serverID, lobby.BotOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *Store) NationNames(ctx context.Context, serverID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT name FROM nations WHERE server_id = $1`, serverID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
