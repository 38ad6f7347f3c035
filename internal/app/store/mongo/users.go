package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"geopolitik/internal/app/user"
)

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	_, err := s.users.InsertOne(ctx, u)
	return mapErr(err)
}

func (s *Store) findUser(ctx context.Context, filter bson.D) (*user.User, error) {
	var u user.User
	if err := s.users.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.findUser(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	return s.findUser(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *Store) UpdateUserProfile(ctx context.Context, id, name, avatar string) (*user.User, error) {
	var u user.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: name}, {Key: "avatar", Value: avatar}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
