package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

func TestCreatePost(t *testing.T) {
	repo := newFakePostRepo(nil)
	pub := &fakePublisher{}
	svc := NewPostService(repo, pub)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, ports.CreatePostCmd{
		AuthorID:   "alice",
		Content:    "Mon chat dort encore",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "alice", post.AuthorID)

	// Le post est persisté ET annoncé sur le broker
	saved, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, saved.ID)
	require.Len(t, pub.posts, 1)
	assert.Equal(t, post.ID, pub.posts[0].ID)
}

func TestCreatePost_Validation(t *testing.T) {
	svc := NewPostService(newFakePostRepo(nil), &fakePublisher{})
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, ports.CreatePostCmd{AuthorID: "", Content: "hello"})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.CreatePost(ctx, ports.CreatePostCmd{AuthorID: "alice", Content: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreatePost(ctx, ports.CreatePostCmd{
		AuthorID: "alice",
		Content:  strings.Repeat("x", 10001),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreatePost(ctx, ports.CreatePostCmd{
		AuthorID:   "alice",
		Content:    "ok",
		Visibility: domain.Visibility("SECRET"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	repo := newFakePostRepo(nil)
	svc := NewPostService(repo, &fakePublisher{})
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, ports.CreatePostCmd{AuthorID: "alice", Content: "à moi"})
	require.NoError(t, err)

	err = svc.DeletePost(ctx, post.ID, "mallory")
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.DeletePost(ctx, post.ID, "alice"))
	_, err = repo.FindByID(ctx, post.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateComment(t *testing.T) {
	repo := newFakePostRepo(nil)
	pub := &fakePublisher{}
	svc := NewPostService(repo, pub)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, ports.CreatePostCmd{AuthorID: "alice", Content: "sujet"})
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, post.ID, "bob", "joli chat", "")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	require.Len(t, pub.comments, 1)

	// Post inexistant -> pas de commentaire orphelin
	_, err = svc.CreateComment(ctx, "ghost", "bob", "hello", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCommunityIDs_KeysetPagination(t *testing.T) {
	repo := newFakePostRepo(nil)
	svc := NewPostService(repo, &fakePublisher{})
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		post, err := domain.NewPost("alice", "contenu", domain.VisibilityPublic, nil)
		require.NoError(t, err)
		post.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Save(ctx, post))
	}

	// Première page pleine : curseur présent
	ids, cursor, err := svc.ListCommunityIDs(ctx, 3, "")
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	require.NotEmpty(t, cursor)

	// Seconde page : le reste, sans chevauchement, curseur épuisé
	rest, cursor2, err := svc.ListCommunityIDs(ctx, 3, cursor)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
	assert.Empty(t, cursor2)
	for _, id := range rest {
		assert.NotContains(t, ids, id)
	}
}

func TestListCommunityIDs_BadCursor(t *testing.T) {
	svc := NewPostService(newFakePostRepo(nil), &fakePublisher{})

	_, _, err := svc.ListCommunityIDs(context.Background(), 10, "not-a-timestamp")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListAuthorIDs(t *testing.T) {
	repo := newFakePostRepo(nil)
	svc := NewPostService(repo, &fakePublisher{})
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, ports.CreatePostCmd{AuthorID: "alice", Content: "un"})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, ports.CreatePostCmd{AuthorID: "bob", Content: "deux"})
	require.NoError(t, err)

	ids, _, err := svc.ListAuthorIDs(ctx, "alice", 10, "")
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	_, _, err = svc.ListAuthorIDs(ctx, "", 10, "")
	require.ErrorIs(t, err, domain.ErrInvalidTarget)
}
