package services

import (
	"context"
	"log/slog"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// feedService pousse les posts dans les timelines matérialisées des followers
// (fan-out-on-write) et les relit à la demande. L'hydratation des posts se
// fait ensuite via le ReaderService, pas ici.
type feedService struct {
	timelines ports.TimelineRepository
	relations ports.RelationRepository
	batchSize int
}

func NewFeedService(timelines ports.TimelineRepository, relations ports.RelationRepository, batchSize int) ports.FeedService {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &feedService{timelines: timelines, relations: relations, batchSize: batchSize}
}

func (s *feedService) DistributePost(ctx context.Context, item *domain.FeedItem) error {
	slog.Info("📢 Fan-out starting", "post_id", item.PostID, "author_id", item.AuthorID)

	count := 0
	// Les followers arrivent par paquets depuis le store, chaque paquet part
	// dans Redis en pipeline. On ne charge jamais la liste entière en RAM.
	err := s.relations.StreamFollowerIDs(ctx, item.AuthorID, s.batchSize, func(batch []string) error {
		if err := s.timelines.AddToTimelines(ctx, batch, item); err != nil {
			// Un paquet perdu n'interrompt pas les suivants
			slog.Error("❌ Failed to push batch to redis", "error", err, "batch_size", len(batch))
			return nil
		}
		count += len(batch)
		return nil
	})
	if err != nil {
		return err
	}

	// L'auteur voit aussi son propre post dans son feed
	if err := s.timelines.AddToTimelines(ctx, []string{item.AuthorID}, item); err != nil {
		slog.Error("❌ Failed to push own timeline", "error", err, "author_id", item.AuthorID)
	}

	slog.Info("✅ Fan-out complete", "post_id", item.PostID, "count", count)
	return nil
}

func (s *feedService) Timeline(ctx context.Context, req domain.FeedRequest) ([]*domain.FeedItem, error) {
	if req.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if req.Limit <= 0 || req.Limit > MaxBatch {
		req.Limit = MaxBatch
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return s.timelines.GetTimeline(ctx, req)
}
