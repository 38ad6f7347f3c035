package mongo

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"geopolitik/internal/app/chat"
)

func (s *Store) InsertMessage(ctx context.Context, m *chat.Message) error {
	_, err := s.messages.InsertOne(ctx, m)
	return mapErr(err)
}

func (s *Store) findMessages(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]chat.Message, error) {
	cur, err := s.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	list := make([]chat.Message, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) ListMessagesSince(ctx context.Context, serverID string, since time.Time, limit int) ([]chat.Message, error) {
	return s.findMessages(ctx,
		bson.D{
			{Key: "serverId", Value: serverID},
			{Key: "timestamp", Value: bson.D{{Key: "$gt", Value: since}}},
		},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}).
			SetLimit(int64(limit)),
	)
}

func (s *Store) ListRecentMessages(ctx context.Context, serverID string, limit int) ([]chat.Message, error) {
	list, err := s.findMessages(ctx,
		bson.D{{Key: "serverId", Value: serverID}},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	slices.Reverse(list)
	return list, nil
}
