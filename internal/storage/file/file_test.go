package file

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"redesocial/internal/storage"
)

var ctx = context.Background()

func newStorage(t *testing.T) (storage.Storage, string) {
	dir, err := ioutil.TempDir("", "redesocial")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "dados.json")

	return New(path), path
}

func TestFileStorage_Load_notFound(t *testing.T) {
	s, _ := newStorage(t)

	_, err := s.Load(ctx)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestFileStorage_SaveLoad(t *testing.T) {
	s, _ := newStorage(t)

	doc := &storage.Document{
		Profiles: []storage.Profile{
			{
				ID:       "1",
				Nickname: "alice",
				Avatar:   "🦊",
				Email:    "alice@example.com",
				Active:   true,
				Friends:  []string{"2"},
				Posts:    []string{"p1"},
				Kind:     storage.ProfileKindAdvanced,
			},
			{
				ID:       "2",
				Nickname: "bob",
				Avatar:   "🐻",
				Email:    "bob@example.com",
				Active:   false,
				Friends:  []string{"1"},
				Posts:    []string{},
			},
		},
		Posts: []storage.Post{
			{
				ID:        "p1",
				Content:   "hello",
				CreatedAt: time.Date(2021, 2, 3, 4, 5, 6, 0, time.UTC),
				AuthorID:  "1",
				Kind:      storage.PostKindAdvanced,
				Reactions: []storage.Reaction{
					{ID: "r1", Kind: "👍", ProfileID: "2"},
				},
			},
		},
		FriendRequests: storage.RequestPairs{{"2", "1"}},
	}

	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestFileStorage_Save_overwrites(t *testing.T) {
	s, _ := newStorage(t)

	require.NoError(t, s.Save(ctx, &storage.Document{
		Profiles: []storage.Profile{{ID: "1", Nickname: "alice", Email: "alice@example.com", Active: true}},
	}))
	require.NoError(t, s.Save(ctx, &storage.Document{
		Profiles: []storage.Profile{{ID: "2", Nickname: "bob", Email: "bob@example.com", Active: true}},
	}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Profiles, 1)
	require.Equal(t, "2", got.Profiles[0].ID)
}

func TestFileStorage_Load_requestsNotAnArray(t *testing.T) {
	s, path := newStorage(t)

	require.NoError(t, ioutil.WriteFile(path, []byte(`{
		"perfis": [],
		"publicacoes": [],
		"solicitacoesAmizade": {"1": "2"}
	}`), 0644))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got.FriendRequests)
}

func TestFileStorage_Load_malformed(t *testing.T) {
	s, path := newStorage(t)

	require.NoError(t, ioutil.WriteFile(path, []byte(`{`), 0644))

	_, err := s.Load(ctx)
	require.Error(t, err)
}
