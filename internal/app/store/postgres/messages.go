package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"geopolitik/internal/app/chat"
)

const messageColumns = `id, server_id, user_id, username, content, type, created_at`

func collectMessages(rows pgx.Rows) ([]chat.Message, error) {
	defer rows.Close()

	list := make([]chat.Message, 0)
	for rows.Next() {
		var (
			m       chat.Message
			msgType string
		)
		if err := rows.Scan(&m.ID, &m.ServerID, &m.UserID, &m.Username, &m.Content, &msgType, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Type = chat.Type(msgType)
		m.Timestamp = m.Timestamp.UTC()
		list = append(list, m)
	}
	return list, rows.Err()
}

func (s *Store) InsertMessage(ctx context.Context, m *chat.Message) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO chat_messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ServerID, m.UserID, m.Username, m.Content, string(m.Type), m.Timestamp,
	)
	return mapErr(err)
}

func (s *Store) ListMessagesSince(ctx context.Context, serverID string, since time.Time, limit int) ([]chat.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM chat_messages
		WHERE server_id = $1 AND created_at > $2
		ORDER BY created_at, id
		LIMIT $3`,
		serverID, since, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

func (s *Store) ListRecentMessages(ctx context.Context, serverID string, limit int) ([]chat.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM (
			SELECT `+messageColumns+` FROM chat_messages
			WHERE server_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at, id`,
		serverID, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}
