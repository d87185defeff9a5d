package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

func relationEvent(actor, target string, kind domain.RelationKind, active bool) domain.RelationChangedEvent {
	return domain.RelationChangedEvent{
		ActorID:  actor,
		TargetID: target,
		Kind:     kind,
		Active:   active,
		At:       time.Now().UTC(),
	}
}

func TestRecordRelationChange_Follow(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, newFakePostRepo(nil))
	ctx := context.Background()

	require.NoError(t, svc.RecordRelationChange(ctx, relationEvent("alice", "bob", domain.KindFollow, true)))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "bob", repo.saved[0].UserID)
	assert.Equal(t, "alice", repo.saved[0].ActorID)
	assert.Equal(t, domain.NotifNewFollower, repo.saved[0].Type)
}

func TestRecordRelationChange_SilentCases(t *testing.T) {
	posts := newFakePostRepo(nil)
	post, err := domain.NewPost("alice", "mon post", domain.VisibilityPublic, nil)
	require.NoError(t, err)
	require.NoError(t, posts.Save(context.Background(), post))

	tests := []struct {
		name  string
		event domain.RelationChangedEvent
	}{
		{"unfollow", relationEvent("alice", "bob", domain.KindFollow, false)},
		{"save", relationEvent("alice", post.ID, domain.KindSave, true)},
		{"comment like", relationEvent("alice", "comment-1", domain.KindLikeComment, true)},
		{"self like", relationEvent("alice", post.ID, domain.KindLikePost, true)},
		{"like of deleted post", relationEvent("bob", "ghost", domain.KindLikePost, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeNotificationRepo{}
			svc := NewNotificationService(repo, posts)
			require.NoError(t, svc.RecordRelationChange(context.Background(), tt.event))
			assert.Empty(t, repo.saved)
		})
	}
}

func TestRecordRelationChange_PostLikeResolvesAuthor(t *testing.T) {
	posts := newFakePostRepo(nil)
	post, err := domain.NewPost("alice", "mon post", domain.VisibilityPublic, nil)
	require.NoError(t, err)
	require.NoError(t, posts.Save(context.Background(), post))

	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, posts)

	require.NoError(t, svc.RecordRelationChange(context.Background(), relationEvent("bob", post.ID, domain.KindLikePost, true)))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "alice", repo.saved[0].UserID)
	assert.Equal(t, domain.NotifPostLiked, repo.saved[0].Type)
	assert.Equal(t, post.ID, repo.saved[0].RefID)
}

func TestRecordPostComment(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, newFakePostRepo(nil))
	ctx := context.Background()

	comment, err := domain.NewComment("post-1", "bob", "joli", "")
	require.NoError(t, err)

	require.NoError(t, svc.RecordPostComment(ctx, comment, "alice"))
	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.NotifPostCommented, repo.saved[0].Type)

	// Commenter son propre post ne notifie pas
	own, err := domain.NewComment("post-1", "alice", "merci", "")
	require.NoError(t, err)
	require.NoError(t, svc.RecordPostComment(ctx, own, "alice"))
	assert.Len(t, repo.saved, 1)
}

func TestNotificationList_MarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, newFakePostRepo(nil))
	ctx := context.Background()

	require.NoError(t, svc.RecordRelationChange(ctx, relationEvent("alice", "bob", domain.KindFollow, true)))
	require.NoError(t, svc.RecordRelationChange(ctx, relationEvent("carol", "bob", domain.KindFollow, true)))

	notifs, _, err := svc.List(ctx, "bob", 10, "")
	require.NoError(t, err)
	require.Len(t, notifs, 2)

	count, err := svc.UnreadCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkRead(ctx, notifs[0].ID, "bob"))
	count, err = svc.UnreadCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Un autre utilisateur ne peut pas marquer les notifications de bob
	err = svc.MarkRead(ctx, notifs[1].ID, "mallory")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationEndpoints_RequireAuth(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, newFakePostRepo(nil))
	ctx := context.Background()

	_, _, err := svc.List(ctx, "", 10, "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.UnreadCount(ctx, "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	err = svc.MarkRead(ctx, "n-1", "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

var _ ports.NotificationRepository = (*fakeNotificationRepo)(nil)
