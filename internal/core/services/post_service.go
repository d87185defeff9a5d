package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type postService struct {
	repo      ports.PostRepository
	publisher ports.EventPublisher
}

func NewPostService(repo ports.PostRepository, pub ports.EventPublisher) ports.PostService {
	return &postService{repo: repo, publisher: pub}
}

func (s *postService) CreatePost(ctx context.Context, cmd ports.CreatePostCmd) (*domain.Post, error) {
	if cmd.AuthorID == "" {
		return nil, domain.ErrUnauthenticated
	}

	post, err := domain.NewPost(cmd.AuthorID, cmd.Content, cmd.Visibility, cmd.MediaURLs)
	if err != nil {
		return nil, err
	}

	// 1. Sauvegarde DB (Source of Truth)
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}

	// 2. Publication événement (déclenche le fan-out feed). Best effort :
	// la donnée est sauvée, on ne fait pas échouer la requête utilisateur.
	if err := s.publisher.PublishPostCreated(ctx, post); err != nil {
		slog.Warn("⚠️ Failed to publish post.created", "post_id", post.ID, "error", err)
	}

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, postID, actorID string) error {
	if actorID == "" {
		return domain.ErrUnauthenticated
	}
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	// Seul l'auteur peut supprimer
	if post.AuthorID != actorID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, postID)
}

func (s *postService) CreateComment(ctx context.Context, postID, actorID, content, parentID string) (*domain.Comment, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}

	// Le post doit exister (et on a besoin de l'auteur pour la notification)
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := domain.NewComment(postID, actorID, content, parentID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishPostCommented(ctx, comment, post.AuthorID); err != nil {
		slog.Warn("⚠️ Failed to publish post.commented", "post_id", postID, "error", err)
	}

	return comment, nil
}

func (s *postService) ListComments(ctx context.Context, postID string, limit int) ([]*domain.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListComments(ctx, postID, limit)
}

// --- LISTINGS KEYSET ---
// Le curseur est la date de création du dernier élément, RFC3339Nano pour la
// précision nanoseconde. Vide = première page. Curseur corrompu = rejeté.

func decodeCursor(cursor string) (time.Time, error) {
	if cursor == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		return time.Time{}, errors.Join(domain.ErrInvalidInput, err)
	}
	return t, nil
}

// encodeRefs extrait les ids et calcule le curseur de la page suivante.
// Page incomplète = dernière page, pas de curseur.
func encodeRefs(refs []ports.EntityRef, limit int) ([]string, string) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	if len(refs) < limit || len(refs) == 0 {
		return ids, ""
	}
	return ids, refs[len(refs)-1].CreatedAt.Format(time.RFC3339Nano)
}

func (s *postService) ListCommunityIDs(ctx context.Context, limit int, cursor string) ([]string, string, error) {
	if limit <= 0 || limit > MaxBatch {
		limit = MaxBatch
	}
	before, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	refs, err := s.repo.ListPublic(ctx, limit, before)
	if err != nil {
		return nil, "", err
	}
	ids, next := encodeRefs(refs, limit)
	return ids, next, nil
}

func (s *postService) ListAuthorIDs(ctx context.Context, authorID string, limit int, cursor string) ([]string, string, error) {
	if authorID == "" {
		return nil, "", domain.ErrInvalidTarget
	}
	if limit <= 0 || limit > MaxBatch {
		limit = MaxBatch
	}
	before, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	refs, err := s.repo.ListByAuthor(ctx, authorID, limit, before)
	if err != nil {
		return nil, "", err
	}
	ids, next := encodeRefs(refs, limit)
	return ids, next, nil
}
