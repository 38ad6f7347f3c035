/*
Package user defines player accounts and the store operations they need.
*/
package user

import (
	"context"
	"time"
)

// User is a registered account.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Name         string    `json:"name" bson:"name"`
	Avatar       string    `json:"avatar" bson:"avatar"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Profile is the public view of a user. Avatar is a resolved URL.
type Profile struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Profile returns the public view of u with the avatar resolved by resolve.
func (u *User) Profile(resolve func(string) string) Profile {
	avatar := u.Avatar
	if resolve != nil {
		avatar = resolve(avatar)
	}
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name, Avatar: avatar}
}

// Repository is the account storage contract.
// Lookups return db.ErrNotFound when absent; CreateUser returns db.ErrDuplicate for a taken email.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateUserProfile(ctx context.Context, id, name, avatar string) (*User, error)
}
