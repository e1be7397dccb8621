// Package storage contains a storage interface.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// ProfileKindAdvanced marks a persisted profile carrying the advanced capability.
const ProfileKindAdvanced = "avancado"

// PostKindAdvanced marks a persisted post which accepts reactions.
const PostKindAdvanced = "avancada"

// Storage provides methods for persisting the social graph document.
type Storage interface {
	Save(ctx context.Context, doc *Document) error
	Load(ctx context.Context) (*Document, error)
}

// Document is the flat, id-referencing form of the whole social graph.
// Cross-references are stored as ids to break cycles.
type Document struct {
	Profiles       []Profile    `json:"perfis"`
	Posts          []Post       `json:"publicacoes"`
	FriendRequests RequestPairs `json:"solicitacoesAmizade"`
}

// Profile ...
type Profile struct {
	ID       string   `json:"id"`
	Nickname string   `json:"apelido"`
	Avatar   string   `json:"foto"`
	Email    string   `json:"email"`
	Active   bool     `json:"status"`
	Friends  []string `json:"amigos"`
	Posts    []string `json:"postagens"`
	Kind     string   `json:"tipo,omitempty"`
}

// Post ...
type Post struct {
	ID        string     `json:"id"`
	Content   string     `json:"conteudo"`
	CreatedAt time.Time  `json:"dataHora"`
	AuthorID  string     `json:"perfilId"`
	Kind      string     `json:"tipo,omitempty"`
	Reactions []Reaction `json:"interacoes,omitempty"`
}

// Reaction ...
// Kind is the rendered symbol, not an internal code.
type Reaction struct {
	ID        string `json:"id"`
	Kind      string `json:"tipo"`
	ProfileID string `json:"perfilId"`
}

// RequestPairs is the pending friend request set serialized as
// [senderID, recipientID] pairs. Ids are not guaranteed to be valid object
// keys, so an object map is not used.
type RequestPairs [][2]string

// UnmarshalJSON falls back to an empty set when the value is not an array.
func (r *RequestPairs) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*r = nil
		return nil
	}

	out := make(RequestPairs, 0, len(raw))
	for _, v := range raw {
		var pair [2]string
		if err := json.Unmarshal(v, &pair); err != nil {
			return fmt.Errorf("failed to unmarshal friend request pair: %w", err)
		}
		out = append(out, pair)
	}

	*r = out

	return nil
}
