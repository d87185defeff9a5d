package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
)

func TestDistributePost_FanOutChunking(t *testing.T) {
	relations := newMemRelationRepo()
	timelines := newFakeTimelineRepo()
	svc := NewFeedService(timelines, relations, 2)
	ctx := context.Background()
	toggles := NewRelationService(relations, &fakePublisher{})

	// 5 followers pour alice
	for i := 0; i < 5; i++ {
		_, err := toggles.Toggle(ctx, fmt.Sprintf("fan-%d", i), "alice", domain.KindFollow)
		require.NoError(t, err)
	}

	item := &domain.FeedItem{PostID: "post-1", AuthorID: "alice", Type: domain.ContentPost, CreatedAt: time.Now()}
	require.NoError(t, svc.DistributePost(ctx, item))

	// 5 followers par paquets de 2 = 3 batches, + 1 pour la timeline de l'auteur
	require.Len(t, timelines.batches, 4)
	total := 0
	for _, batch := range timelines.batches[:3] {
		assert.LessOrEqual(t, len(batch), 2)
		total += len(batch)
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"alice"}, timelines.batches[3])

	// Chaque follower voit le post
	items, err := svc.Timeline(ctx, domain.FeedRequest{UserID: "fan-0", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "post-1", items[0].PostID)
}

func TestDistributePost_RedisFailureDoesNotAbort(t *testing.T) {
	relations := newMemRelationRepo()
	timelines := newFakeTimelineRepo()
	timelines.addErr = errors.New("redis down")
	svc := NewFeedService(timelines, relations, 10)

	item := &domain.FeedItem{PostID: "post-1", AuthorID: "alice", Type: domain.ContentPost, CreatedAt: time.Now()}
	// Un cache indisponible ne fait pas échouer la distribution
	require.NoError(t, svc.DistributePost(context.Background(), item))
}

func TestTimeline_RequiresAuth(t *testing.T) {
	svc := NewFeedService(newFakeTimelineRepo(), newMemRelationRepo(), 10)

	_, err := svc.Timeline(context.Background(), domain.FeedRequest{UserID: ""})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTimeline_LimitClamped(t *testing.T) {
	relations := newMemRelationRepo()
	timelines := newFakeTimelineRepo()
	svc := NewFeedService(timelines, relations, 10)
	ctx := context.Background()

	for i := 0; i < MaxBatch+5; i++ {
		item := &domain.FeedItem{PostID: fmt.Sprintf("post-%d", i), AuthorID: "alice", Type: domain.ContentPost, CreatedAt: time.Now()}
		require.NoError(t, timelines.AddToTimelines(ctx, []string{"bob"}, item))
	}

	items, err := svc.Timeline(ctx, domain.FeedRequest{UserID: "bob", Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, items, MaxBatch)
}
