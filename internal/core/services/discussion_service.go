package services

import (
	"context"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type discussionService struct {
	repo ports.DiscussionRepository
}

func NewDiscussionService(repo ports.DiscussionRepository) ports.DiscussionService {
	return &discussionService{repo: repo}
}

func (s *discussionService) CreateDiscussion(ctx context.Context, authorID, title, content string) (*domain.Discussion, error) {
	if authorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	d, err := domain.NewDiscussion(authorID, title, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *discussionService) GetDiscussion(ctx context.Context, id string) (*domain.Discussion, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *discussionService) ListLatestIDs(ctx context.Context, limit int, cursor string) ([]string, string, error) {
	if limit <= 0 || limit > MaxBatch {
		limit = MaxBatch
	}
	before, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	refs, err := s.repo.ListLatest(ctx, limit, before)
	if err != nil {
		return nil, "", err
	}
	ids, next := encodeRefs(refs, limit)
	return ids, next, nil
}

func (s *discussionService) Reply(ctx context.Context, discussionID, actorID, content string) (*domain.DiscussionReply, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}

	d, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	// Une discussion fermée ne prend plus de réponses
	if d.Status == domain.DiscussionClosed {
		return nil, domain.ErrForbidden
	}

	reply, err := domain.NewDiscussionReply(discussionID, actorID, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *discussionService) ListReplies(ctx context.Context, discussionID string, limit int) ([]*domain.DiscussionReply, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListReplies(ctx, discussionID, limit)
}
