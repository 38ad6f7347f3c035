/*
Package mongo implements the store over MongoDB.

Documents use string ids. Nation uniqueness rests on a partial unique index over
human-owned nations, and the ready toggle is a single pipeline update, so the
lobby races are closed by the server as they are in the SQL backend.
*/
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"geopolitik/internal/app/db"
	"geopolitik/internal/pkg/logx"
)

const (
	colUsers    = "users"
	colServers  = "servers"
	colNations  = "nations"
	colMessages = "chat_messages"
)

// Store is the MongoDB backend.
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	servers  *mongo.Collection
	nations  *mongo.Collection
	messages *mongo.Collection
	logger   zerolog.Logger
}

// Open connects to uri, selects database and ensures indexes.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	mdb := client.Database(database)
	s := &Store{
		client:   client,
		users:    mdb.Collection(colUsers),
		servers:  mdb.Collection(colServers),
		nations:  mdb.Collection(colNations),
		messages: mdb.Collection(colMessages),
		logger:   logx.Component("MongoStore"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	s.logger.Info().Str("database", database).Msg("MongoDB store ready.")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.servers, []mongo.IndexModel{
			{Keys: bson.D{{Key: "hostUserId", Value: 1}, {Key: "createdAt", Value: -1}}},
		}},
		{s.nations, []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "serverId", Value: 1}, {Key: "ownerId", Value: 1}},
				Options: options.Index().
					SetName("one_nation_per_human").
					SetUnique(true).
					SetPartialFilterExpression(bson.D{{Key: "isBot", Value: false}}),
			},
			{Keys: bson.D{{Key: "serverId", Value: 1}, {Key: "createdAt", Value: 1}}},
		}},
		{s.messages, []mongo.IndexModel{
			{Keys: bson.D{{Key: "serverId", Value: 1}, {Key: "timestamp", Value: 1}}},
		}},
	}

	for _, ix := range indexes {
		if _, err := ix.coll.Indexes().CreateMany(ctx, ix.models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", ix.coll.Name(), err)
		}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mapErr normalizes driver errors onto db.ErrNotFound and db.ErrDuplicate.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return db.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return db.ErrDuplicate
	default:
		return err
	}
}

// distinctStrings runs a distinct query and keeps the string values.
func distinctStrings(ctx context.Context, coll *mongo.Collection, field string, filter any) ([]string, error) {
	values, err := coll.Distinct(ctx, field, filter)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out, nil
}
