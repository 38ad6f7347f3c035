package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"geopolitik/internal/app/lobby"
)

func (s *Store) InsertServer(ctx context.Context, srv *lobby.Server) error {
	doc := *srv
	if doc.PlayersReady == nil {
		doc.PlayersReady = []string{}
	}
	_, err := s.servers.InsertOne(ctx, doc)
	return mapErr(err)
}

func (s *Store) GetServer(ctx context.Context, id string) (*lobby.Server, error) {
	var srv lobby.Server
	if err := s.servers.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&srv); err != nil {
		return nil, mapErr(err)
	}
	if srv.PlayersReady == nil {
		srv.PlayersReady = []string{}
	}
	return &srv, nil
}

func (s *Store) ListServersByHost(ctx context.Context, hostUserID string) ([]lobby.Server, error) {
	cur, err := s.servers.Find(ctx,
		bson.D{{Key: "hostUserId", Value: hostUserID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	list := make([]lobby.Server, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// togglePipeline removes userID from playersReady when present and appends it otherwise.
func togglePipeline(userID string) mongo.Pipeline {
	ready := bson.D{{Key: "$ifNull", Value: bson.A{"$playersReady", bson.A{}}}}
	id := bson.D{{Key: "$literal", Value: userID}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "playersReady", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{id, ready}}}},
			{Key: "then", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: ready},
				{Key: "as", Value: "id"},
				{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$id", id}}}},
			}}}},
			{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{ready, bson.A{id}}}}},
		}}}}}}},
	}
}

func (s *Store) ToggleReady(ctx context.Context, serverID, userID string) ([]string, error) {
	var out struct {
		PlayersReady []string `bson:"playersReady"`
	}
	err := s.servers.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: serverID}},
		togglePipeline(userID),
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.D{{Key: "playersReady", Value: 1}}),
	).Decode(&out)
	if err != nil {
		return nil, mapErr(err)
	}
	if out.PlayersReady == nil {
		out.PlayersReady = []string{}
	}
	return out.PlayersReady, nil
}

func (s *Store) SetReadyStatus(ctx context.Context, serverID string, status lobby.Status) error {
	_, err := s.servers.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: serverID},
			{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{lobby.StatusWaiting, lobby.StatusReady}}}},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}},
	)
	return mapErr(err)
}

func (s *Store) StartServer(ctx context.Context, serverID string) (bool, error) {
	res, err := s.servers.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: serverID},
			{Key: "status", Value: bson.D{{Key: "$ne", Value: lobby.StatusInProgress}}},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: lobby.StatusInProgress}}}},
	)
	if err != nil {
		return false, mapErr(err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	if _, err := s.GetServer(ctx, serverID); err != nil {
		return false, err
	}
	return false, nil
}
