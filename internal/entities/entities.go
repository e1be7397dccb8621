// Package entities contains main entities of the social network.
package entities

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateFriendship returned when a friendship already exists.
var ErrDuplicateFriendship = errors.New("friendship already exists")

// ErrInactiveProfile returned when an operation involves a deactivated profile.
var ErrInactiveProfile = errors.New("profile is inactive")

// ErrDuplicateReaction returned when a profile reacts twice to the same post.
var ErrDuplicateReaction = errors.New("profile already reacted to this post")

// ErrNotAuthorized returned when an advanced operation is invoked without the advanced capability.
var ErrNotAuthorized = errors.New("not authorized")

// ErrInvalidReactionKind returned when a value does not map to a reaction kind.
var ErrInvalidReactionKind = errors.New("unknown reaction kind")

// ReactionKind is a reaction type rendered as its symbol.
type ReactionKind string

const (
	// Like ...
	Like ReactionKind = "👍"
	// Dislike ...
	Dislike ReactionKind = "👎"
	// Laugh ...
	Laugh ReactionKind = "😂"
	// Surprise ...
	Surprise ReactionKind = "😮"
)

// ParseReactionKind converts a rendered symbol into a ReactionKind.
func ParseReactionKind(s string) (ReactionKind, error) {
	switch k := ReactionKind(s); k {
	case Like, Dislike, Laugh, Surprise:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReactionKind, s)
	}
}

// Profile ...
type Profile struct {
	ID       string
	Nickname string
	Avatar   string
	Email    string
	Active   bool
	Advanced bool

	Friends []*Profile
	Posts   []*Post
}

// NewProfile creates a new active profile.
func NewProfile(id, nickname, avatar, email string) *Profile {
	return &Profile{
		ID:       id,
		Nickname: nickname,
		Avatar:   avatar,
		Email:    email,
		Active:   true,
	}
}

// NewAdvancedProfile creates a new active profile carrying the advanced capability.
func NewAdvancedProfile(id, nickname, avatar, email string) *Profile {
	p := NewProfile(id, nickname, avatar, email)
	p.Advanced = true
	return p
}

// HasFriend reports whether other is already in the friend list.
func (p *Profile) HasFriend(other *Profile) bool {
	for _, f := range p.Friends {
		if f == other {
			return true
		}
	}

	return false
}

// AddFriend appends other to the friend list. Symmetry is the caller's
// responsibility, both directions have to be added separately.
func (p *Profile) AddFriend(other *Profile) error {
	if p.HasFriend(other) {
		return ErrDuplicateFriendship
	}

	p.Friends = append(p.Friends, other)

	return nil
}

// RemoveFriend removes other from the friend list, no-op when absent.
func (p *Profile) RemoveFriend(other *Profile) {
	for i, f := range p.Friends {
		if f == other {
			p.Friends = append(p.Friends[:i], p.Friends[i+1:]...)
			return
		}
	}
}

// AddPost appends a post to the profile's own list.
func (p *Profile) AddPost(post *Post) error {
	if !p.Active {
		return fmt.Errorf("%w: can not publish", ErrInactiveProfile)
	}

	p.Posts = append(p.Posts, post)

	return nil
}

// FriendNicknames returns friend nicknames in insertion order.
func (p *Profile) FriendNicknames() []string {
	out := make([]string, len(p.Friends))
	for i, f := range p.Friends {
		out[i] = f.Nickname
	}

	return out
}

// PostContents returns the profile's post contents in insertion order.
func (p *Profile) PostContents() []string {
	out := make([]string, len(p.Posts))
	for i, post := range p.Posts {
		out[i] = post.Content
	}

	return out
}

// SetActive flips the activation status unconditionally.
func (p *Profile) SetActive(active bool) {
	p.Active = active
}

// SetActiveOn toggles another profile's activation status. Only profiles
// carrying the advanced capability may do that.
func (p *Profile) SetActiveOn(target *Profile, active bool) error {
	if !p.Advanced {
		return fmt.Errorf("%w: only advanced profiles can toggle other profiles", ErrNotAuthorized)
	}

	target.SetActive(active)

	return nil
}

// Post ...
type Post struct {
	ID        string
	Content   string
	CreatedAt time.Time
	Author    *Profile
	Advanced  bool

	Reactions []*Reaction
}

// NewPost creates a post owned by author, capturing the current time.
func NewPost(id, content string, author *Profile) *Post {
	return &Post{
		ID:        id,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Author:    author,
	}
}

// NewAdvancedPost creates a post which accepts reactions.
func NewAdvancedPost(id, content string, author *Profile) *Post {
	p := NewPost(id, content, author)
	p.Advanced = true
	return p
}

// AddReaction appends a reaction to an advanced post.
func (p *Post) AddReaction(r *Reaction) error {
	if !p.Advanced {
		return fmt.Errorf("%w: post does not accept reactions", ErrNotAuthorized)
	}

	for _, v := range p.Reactions {
		if v.Profile == r.Profile {
			return ErrDuplicateReaction
		}
	}

	p.Reactions = append(p.Reactions, r)

	return nil
}

// ReactionSummaries returns "<nickname> <symbol>" strings in insertion order.
func (p *Post) ReactionSummaries() []string {
	out := make([]string, len(p.Reactions))
	for i, r := range p.Reactions {
		out[i] = fmt.Sprintf("%s %s", r.Profile.Nickname, r.Kind)
	}

	return out
}

// Reaction ...
type Reaction struct {
	ID      string
	Kind    ReactionKind
	Profile *Profile
}

// NewReaction creates a reaction by profile.
func NewReaction(id string, kind ReactionKind, profile *Profile) *Reaction {
	return &Reaction{
		ID:      id,
		Kind:    kind,
		Profile: profile,
	}
}
