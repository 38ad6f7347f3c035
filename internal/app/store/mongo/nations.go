package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"geopolitik/internal/app/lobby"
)

// nationDoc adds the isBot flag the partial unique index filters on.
type nationDoc struct {
	lobby.Nation `bson:",inline"`
	IsBot        bool `bson:"isBot"`
}

func toDoc(n lobby.Nation) nationDoc {
	return nationDoc{Nation: n, IsBot: n.IsBot()}
}

func (s *Store) InsertNation(ctx context.Context, n *lobby.Nation) error {
	_, err := s.nations.InsertOne(ctx, toDoc(*n))
	return mapErr(err)
}

// InsertNations inserts the batch and, if any document fails, deletes the ones that
// made it in. Standalone servers have no multi-document transactions.
func (s *Store) InsertNations(ctx context.Context, nations []lobby.Nation) error {
	if len(nations) == 0 {
		return nil
	}

	docs := make([]any, len(nations))
	ids := make(bson.A, len(nations))
	for i, n := range nations {
		docs[i] = toDoc(n)
		ids[i] = n.ID
	}

	_, err := s.nations.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err == nil {
		return nil
	}

	if _, delErr := s.nations.DeleteMany(context.WithoutCancel(ctx), bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}); delErr != nil {
		s.logger.Error().Err(delErr).Int("batch", len(nations)).Msg("Failed to roll back partial nation batch.")
		return errors.Join(mapErr(err), delErr)
	}
	return mapErr(err)
}

func (s *Store) FindHumanNation(ctx context.Context, serverID, ownerID string) (*lobby.Nation, error) {
	var doc nationDoc
	err := s.nations.FindOne(ctx, bson.D{
		{Key: "serverId", Value: serverID},
		{Key: "ownerId", Value: ownerID},
		{Key: "isBot", Value: false},
	}).Decode(&doc)
	if err != nil {
		return nil, mapErr(err)
	}
	return &doc.Nation, nil
}

func (s *Store) ListNations(ctx context.Context, serverID string) ([]lobby.Nation, error) {
	cur, err := s.nations.Find(ctx,
		bson.D{{Key: "serverId", Value: serverID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var docs []nationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	list := make([]lobby.Nation, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.Nation)
	}
	return list, nil
}

func (s *Store) CountNations(ctx context.Context, serverID string) (int, error) {
	n, err := s.nations.CountDocuments(ctx, bson.D{{Key: "serverId", Value: serverID}})
	return int(n), err
}

func (s *Store) HumanOwnerIDs(ctx context.Context, serverID string) ([]string, error) {
	return distinctStrings(ctx, s.nations, "ownerId", bson.D{
		{Key: "serverId", Value: serverID},
		{Key: "isBot", Value: false},
	})
}

func (s *Store) NationNames(ctx context.Context, serverID string) ([]string, error) {
	return distinctStrings(ctx, s.nations, "name", bson.D{{Key: "serverId", Value: serverID}})
}
