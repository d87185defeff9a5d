package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// RedisTimelineRepo matérialise les timelines en Sorted Sets.
// Membre : "TYPE:author-id:post-id", score : timestamp de création.
// C'est un cache de liste d'ids, PAS une copie des posts : l'hydratation
// (contenu, compteurs, flags) repasse toujours par Postgres.
type RedisTimelineRepo struct {
	client  *redis.Client
	ttl     time.Duration
	maxSize int64 // Capping : on garde les N entrées les plus récentes
}

func NewRedisTimelineRepo(client *redis.Client) ports.TimelineRepository {
	return &RedisTimelineRepo{
		client:  client,
		ttl:     24 * 30 * time.Hour,
		maxSize: 500,
	}
}

func timelineKey(userID string) string {
	return fmt.Sprintf("timeline:%s", userID)
}

func (r *RedisTimelineRepo) AddToTimelines(ctx context.Context, userIDs []string, item *domain.FeedItem) error {
	pipe := r.client.Pipeline()

	member := fmt.Sprintf("%s:%s:%s", item.Type, item.AuthorID, item.PostID)
	score := float64(item.CreatedAt.Unix())

	for _, uid := range userIDs {
		key := timelineKey(uid)
		pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: member})
		pipe.ZRemRangeByRank(ctx, key, 0, -(r.maxSize + 1))
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *RedisTimelineRepo) GetTimeline(ctx context.Context, req domain.FeedRequest) ([]*domain.FeedItem, error) {
	key := timelineKey(req.UserID)

	start := req.Offset
	stop := req.Offset + req.Limit - 1

	results, err := r.client.ZRevRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	items := make([]*domain.FeedItem, 0, len(results))
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}

		// "TYPE:AUTHOR_ID:POST_ID" — les entrées d'un autre format sont
		// ignorées plutôt que de faire planter la lecture.
		parts := strings.Split(member, ":")
		if len(parts) != 3 {
			continue
		}

		items = append(items, &domain.FeedItem{
			Type:      domain.ContentType(parts[0]),
			AuthorID:  parts[1],
			PostID:    parts[2],
			CreatedAt: time.Unix(int64(z.Score), 0),
		})
	}
	return items, nil
}
