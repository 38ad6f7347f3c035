/*
Package chat implements the per-server lobby chat: an append-only message log
that clients poll with a timestamp cursor.
*/
package chat

import (
	"context"
	"time"
)

// Type is the kind of a chat entry.
type Type string

const (
	TypeMessage Type = "message"
	TypeEmoji   Type = "emoji"
)

// Valid reports whether t is a known message type.
func (t Type) Valid() bool {
	return t == TypeMessage || t == TypeEmoji
}

// Message is one entry of a server's chat log.
type Message struct {
	ID        string    `json:"id" bson:"_id"`
	ServerID  string    `json:"serverId" bson:"serverId"`
	UserID    string    `json:"userId" bson:"userId"`
	Username  string    `json:"username" bson:"username"`
	Content   string    `json:"content" bson:"content"`
	Type      Type      `json:"type" bson:"type"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Repository is the chat log storage contract.
type Repository interface {
	InsertMessage(ctx context.Context, m *Message) error

	// ListMessagesSince returns up to limit messages newer than since, oldest first.
	ListMessagesSince(ctx context.Context, serverID string, since time.Time, limit int) ([]Message, error)

	// ListRecentMessages returns the latest limit messages, oldest first.
	ListRecentMessages(ctx context.Context, serverID string, limit int) ([]Message, error)
}
