// Package service contains interface for the social graph business-logic.
package service

import (
	"context"
	"errors"

	"redesocial/internal/entities"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// ErrProfileAlreadyExists returned when a profile with the same id or email is already registered.
var ErrProfileAlreadyExists = errors.New("profile already exists")

// ErrDanglingReference returned when a persisted document references an unknown id.
var ErrDanglingReference = errors.New("document references unknown id")

// Service is the single source of truth for profiles, posts and pending
// friend requests. Every mutation persists the whole graph; persistence
// failures are logged and swallowed, the in-memory mutation stands.
type Service interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error

	AddProfile(ctx context.Context, p *entities.Profile) error
	ProfileByEmail(ctx context.Context, email string) *entities.Profile
	ProfileByNickname(ctx context.Context, nickname string) *entities.Profile
	ProfileByID(ctx context.Context, id string) *entities.Profile
	Profiles(ctx context.Context) []*entities.Profile

	AddPost(ctx context.Context, p *entities.Post) error
	Posts(ctx context.Context) []*entities.Post

	SendFriendRequest(ctx context.Context, sender, recipient *entities.Profile) error
	AcceptFriendRequest(ctx context.Context, sender, recipient *entities.Profile) error
	DeclineFriendRequest(ctx context.Context, sender, recipient *entities.Profile) error
	FriendRequests(ctx context.Context) [][2]*entities.Profile

	AddReaction(ctx context.Context, post *entities.Post, r *entities.Reaction) error

	SetProfileActive(ctx context.Context, caller, target *entities.Profile, active bool) error
}
