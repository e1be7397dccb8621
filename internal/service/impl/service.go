// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"redesocial/internal/entities"
	"redesocial/internal/service"
	"redesocial/internal/storage"
)

var log = logrus.WithField("layer", "service").WithField("package", "impl")

type srv struct {
	storage storage.Storage

	profiles []*entities.Profile
	posts    []*entities.Post
	// requests maps sender to recipient, one outstanding request per sender.
	requests map[*entities.Profile]*entities.Profile
}

// New creates new instance of service. The persisted document, if any, is
// not read until Load is called.
func New(s storage.Storage) service.Service {
	return &srv{
		storage:  s,
		requests: make(map[*entities.Profile]*entities.Profile),
	}
}

func (s *srv) Load(ctx context.Context) error {
	doc, err := s.storage.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("failed to load document: %w", err)
	}

	profiles, posts, requests, err := decode(doc)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	s.profiles, s.posts, s.requests = profiles, posts, requests

	return nil
}

func (s *srv) Save(ctx context.Context) error {
	if err := s.storage.Save(ctx, encode(s.profiles, s.posts, s.requests)); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// persist writes the whole graph after a mutation. Failures are logged and
// swallowed, the in-memory mutation stands.
func (s *srv) persist(ctx context.Context) {
	if err := s.Save(ctx); err != nil {
		log.WithError(err).Error("failed to persist social graph")
	}
}

func (s *srv) AddProfile(ctx context.Context, p *entities.Profile) error {
	for _, v := range s.profiles {
		if v.ID == p.ID || v.Email == p.Email {
			return fmt.Errorf("%w: id=%s email=%s", service.ErrProfileAlreadyExists, p.ID, p.Email)
		}
	}

	s.profiles = append(s.profiles, p)
	s.persist(ctx)

	return nil
}

func (s *srv) ProfileByEmail(_ context.Context, email string) *entities.Profile {
	for _, v := range s.profiles {
		if v.Email == email {
			return v
		}
	}

	return nil
}

func (s *srv) ProfileByNickname(_ context.Context, nickname string) *entities.Profile {
	for _, v := range s.profiles {
		if v.Nickname == nickname {
			return v
		}
	}

	return nil
}

func (s *srv) ProfileByID(_ context.Context, id string) *entities.Profile {
	for _, v := range s.profiles {
		if v.ID == id {
			return v
		}
	}

	return nil
}

func (s *srv) Profiles(_ context.Context) []*entities.Profile {
	return s.profiles
}

func (s *srv) AddPost(ctx context.Context, p *entities.Post) error {
	if err := p.Author.AddPost(p); err != nil {
		return err
	}

	s.posts = append(s.posts, p)
	s.persist(ctx)

	return nil
}

func (s *srv) Posts(_ context.Context) []*entities.Post {
	return s.posts
}

func (s *srv) SendFriendRequest(ctx context.Context, sender, recipient *entities.Profile) error {
	if !sender.Active || !recipient.Active {
		return fmt.Errorf("%w: deactivated profiles can not send or receive friend requests", entities.ErrInactiveProfile)
	}

	if sender.HasFriend(recipient) {
		return entities.ErrDuplicateFriendship
	}

	// a later send from the same sender overwrites the pending recipient
	s.requests[sender] = recipient
	s.persist(ctx)

	return nil
}

func (s *srv) AcceptFriendRequest(ctx context.Context, sender, recipient *entities.Profile) error {
	if !sender.Active || !recipient.Active {
		return fmt.Errorf("%w: deactivated profiles can not accept friend requests", entities.ErrInactiveProfile)
	}

	// no matching pending request is a silent no-op
	if s.requests[sender] != recipient {
		return nil
	}

	if err := sender.AddFriend(recipient); err != nil {
		return err
	}
	if err := recipient.AddFriend(sender); err != nil {
		return err
	}

	delete(s.requests, sender)
	s.persist(ctx)

	return nil
}

func (s *srv) DeclineFriendRequest(ctx context.Context, sender, recipient *entities.Profile) error {
	if !sender.Active || !recipient.Active {
		return fmt.Errorf("%w: deactivated profiles can not decline friend requests", entities.ErrInactiveProfile)
	}

	if s.requests[sender] != recipient {
		return nil
	}

	delete(s.requests, sender)
	s.persist(ctx)

	return nil
}

func (s *srv) FriendRequests(_ context.Context) [][2]*entities.Profile {
	out := make([][2]*entities.Profile, 0, len(s.requests))
	for sender, recipient := range s.requests {
		out = append(out, [2]*entities.Profile{sender, recipient})
	}

	sort.Slice(out, func(i, j int) bool { return out[i][0].ID < out[j][0].ID })

	return out
}

func (s *srv) AddReaction(ctx context.Context, post *entities.Post, r *entities.Reaction) error {
	if !r.Profile.Active {
		return fmt.Errorf("%w: deactivated profiles can not react to posts", entities.ErrInactiveProfile)
	}

	if err := post.AddReaction(r); err != nil {
		return err
	}

	s.persist(ctx)

	return nil
}

func (s *srv) SetProfileActive(ctx context.Context, caller, target *entities.Profile, active bool) error {
	if err := caller.SetActiveOn(target, active); err != nil {
		return err
	}

	s.persist(ctx)

	return nil
}
