/*
Package store selects and opens the persistence backend. Every backend
implements the user, lobby and chat repositories over one connection.
*/
package store

import (
	"context"
	"fmt"

	"geopolitik/internal/app/chat"
	"geopolitik/internal/app/lobby"
	"geopolitik/internal/app/store/memory"
	"geopolitik/internal/app/store/mongo"
	"geopolitik/internal/app/store/postgres"
	"geopolitik/internal/app/user"
	"geopolitik/internal/configs"
	"geopolitik/internal/pkg/logx"
)

// Store is the full persistence contract of the server.
type Store interface {
	user.Repository
	lobby.Repository
	chat.Repository

	Close(ctx context.Context) error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*postgres.Store)(nil)
	_ Store = (*mongo.Store)(nil)
)

// Open connects to the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	switch cfg.StoreDriver {
	case configs.DriverPostgres:
		return postgres.Open(ctx, cfg.DatabaseDSN)
	case configs.DriverMongo:
		return mongo.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	case configs.DriverMemory:
		logx.Warn("Using the in-memory store; all data is lost on restart.")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
