package impl

import (
	"fmt"
	"sort"

	"redesocial/internal/entities"
	"redesocial/internal/service"
	"redesocial/internal/storage"
)

// encode flattens the graph into the id-referencing document form.
func encode(profiles []*entities.Profile, posts []*entities.Post, requests map[*entities.Profile]*entities.Profile) *storage.Document {
	doc := storage.Document{
		Profiles:       make([]storage.Profile, len(profiles)),
		Posts:          make([]storage.Post, len(posts)),
		FriendRequests: make(storage.RequestPairs, 0, len(requests)),
	}

	for i, p := range profiles {
		friends := make([]string, len(p.Friends))
		for j, f := range p.Friends {
			friends[j] = f.ID
		}

		own := make([]string, len(p.Posts))
		for j, post := range p.Posts {
			own[j] = post.ID
		}

		var kind string
		if p.Advanced {
			kind = storage.ProfileKindAdvanced
		}

		doc.Profiles[i] = storage.Profile{
			ID:       p.ID,
			Nickname: p.Nickname,
			Avatar:   p.Avatar,
			Email:    p.Email,
			Active:   p.Active,
			Friends:  friends,
			Posts:    own,
			Kind:     kind,
		}
	}

	for i, p := range posts {
		out := storage.Post{
			ID:        p.ID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			AuthorID:  p.Author.ID,
		}

		if p.Advanced {
			out.Kind = storage.PostKindAdvanced
			out.Reactions = make([]storage.Reaction, len(p.Reactions))
			for j, r := range p.Reactions {
				out.Reactions[j] = storage.Reaction{
					ID:        r.ID,
					Kind:      string(r.Kind),
					ProfileID: r.Profile.ID,
				}
			}
		}

		doc.Posts[i] = out
	}

	for sender, recipient := range requests {
		doc.FriendRequests = append(doc.FriendRequests, [2]string{sender.ID, recipient.ID})
	}

	// map order is random, keep saves deterministic
	sort.Slice(doc.FriendRequests, func(i, j int) bool {
		return doc.FriendRequests[i][0] < doc.FriendRequests[j][0]
	})

	return &doc
}

// decode rebuilds the graph: profiles first so identity references resolve,
// then friendships, then posts with their reactions, then pending requests.
// Any unresolved id fails the whole decode.
func decode(doc *storage.Document) ([]*entities.Profile, []*entities.Post, map[*entities.Profile]*entities.Profile, error) {
	profiles := make([]*entities.Profile, len(doc.Profiles))
	index := make(map[string]*entities.Profile, len(doc.Profiles))

	for i, v := range doc.Profiles {
		p := entities.NewProfile(v.ID, v.Nickname, v.Avatar, v.Email)
		p.Active = v.Active
		p.Advanced = v.Kind == storage.ProfileKindAdvanced

		profiles[i] = p
		index[v.ID] = p
	}

	for i, v := range doc.Profiles {
		for _, id := range v.Friends {
			f, ok := index[id]
			if !ok {
				return nil, nil, nil, fmt.Errorf("%w: profile %s lists friend %s", service.ErrDanglingReference, v.ID, id)
			}

			profiles[i].Friends = append(profiles[i].Friends, f)
		}
	}

	// post ownership is rebuilt from perfilId in document order; the
	// redundant postagens id list inside profiles is ignored
	posts := make([]*entities.Post, len(doc.Posts))
	for i, v := range doc.Posts {
		author, ok := index[v.AuthorID]
		if !ok {
			return nil, nil, nil, fmt.Errorf("%w: post %s references author %s", service.ErrDanglingReference, v.ID, v.AuthorID)
		}

		p := &entities.Post{
			ID:        v.ID,
			Content:   v.Content,
			CreatedAt: v.CreatedAt,
			Author:    author,
			Advanced:  v.Kind == storage.PostKindAdvanced,
		}

		for _, r := range v.Reactions {
			reactor, ok := index[r.ProfileID]
			if !ok {
				return nil, nil, nil, fmt.Errorf("%w: reaction %s references profile %s", service.ErrDanglingReference, r.ID, r.ProfileID)
			}

			kind, err := entities.ParseReactionKind(r.Kind)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reaction %s: %w", r.ID, err)
			}

			p.Reactions = append(p.Reactions, entities.NewReaction(r.ID, kind, reactor))
		}

		posts[i] = p
		author.Posts = append(author.Posts, p)
	}

	requests := make(map[*entities.Profile]*entities.Profile, len(doc.FriendRequests))
	for _, pair := range doc.FriendRequests {
		sender, ok := index[pair[0]]
		if !ok {
			return nil, nil, nil, fmt.Errorf("%w: friend request sender %s", service.ErrDanglingReference, pair[0])
		}

		recipient, ok := index[pair[1]]
		if !ok {
			return nil, nil, nil, fmt.Errorf("%w: friend request recipient %s", service.ErrDanglingReference, pair[1])
		}

		requests[sender] = recipient
	}

	return profiles, posts, requests, nil
}
