package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"geopolitik/internal/app/lobby"
)

const serverColumns = `id, name, host_user_id, is_public, max_players, game_speed, victory_type, status, players_ready, created_at`

func scanServer(row pgx.Row) (*lobby.Server, error) {
	var (
		srv    lobby.Server
		status string
	)
	err := row.Scan(
		&srv.ID, &srv.Name, &srv.HostUserID, &srv.IsPublic, &srv.MaxPlayers,
		&srv.GameSpeed, &srv.VictoryType, &status, &srv.PlayersReady, &srv.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	srv.Status = lobby.Status(status)
	if srv.PlayersReady == nil {
		srv.PlayersReady = []string{}
	}
	return &srv, nil
}

func (s *Store) InsertServer(ctx context.Context, srv *lobby.Server) error {
	ready := srv.PlayersReady
	if ready == nil {
		ready = []string{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO servers (`+serverColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		srv.ID, srv.Name, srv.HostUserID, srv.IsPublic, srv.MaxPlayers,
		srv.GameSpeed, srv.VictoryType, string(srv.Status), ready, srv.CreatedAt,
	)
	return mapErr(err)
}

func (s *Store) GetServer(ctx context.Context, id string) (*lobby.Server, error) {
	return scanServer(s.pool.QueryRow(ctx, `SELECT `+serverColumns+` FROM servers WHERE id = $1`, id))
}

func (s *Store) ListServersByHost(ctx context.Context, hostUserID string) ([]lobby.Server, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+serverColumns+` FROM servers WHERE host_user_id = $1 ORDER BY created_at DESC, id DESC`,
		hostUserID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]lobby.Server, 0)
	for rows.Next() {
		srv, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *srv)
	}
	return list, rows.Err()
}

func (s *Store) ToggleReady(ctx context.Context, serverID, userID string) ([]string, error) {
	var ready []string
	err := s.pool.QueryRow(ctx, `
		UPDATE servers
		SET players_ready = CASE
			WHEN $2::text = ANY(players_ready) THEN array_remove(players_ready, $2::text)
			ELSE array_append(players_ready, $2::text)
		END
		WHERE id = $1
		RETURNING players_ready`,
		serverID, userID,
	).Scan(&ready)
	if err != nil {
		return nil, mapErr(err)
	}
	if ready == nil {
		ready = []string{}
	}
	return ready, nil
}

func (s *Store) SetReadyStatus(ctx context.Context, serverID string, status lobby.Status) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE servers SET status = $2 WHERE id = $1 AND status IN ('waiting', 'ready')`,
		serverID, string(status),
	)
	return mapErr(err)
}

func (s *Store) StartServer(ctx context.Context, serverID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE servers SET status = 'in-progress' WHERE id = $1 AND status <> 'in-progress'`,
		serverID,
	)
	if err != nil {
		return false, mapErr(err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	if _, err := s.GetServer(ctx, serverID); err != nil {
		return false, err
	}
	return false, nil
}

