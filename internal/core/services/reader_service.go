package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// MaxBatch borne la taille d'une lecture agrégée (une page de feed).
const MaxBatch = 20

// readerService assemble les vues "entité + compteurs + flags viewer" en un
// nombre borné de requêtes : UNE pour les entités+compteurs, puis UNE par
// variante de flag si un viewer est présent. Jamais de N+1.
// Aucune écriture, aucun effet de bord : appeler deux fois est sans risque.
type readerService struct {
	users       ports.UserRepository
	posts       ports.PostRepository
	pets        ports.PetRepository
	discussions ports.DiscussionRepository
	relations   ports.RelationRepository
}

func NewReaderService(
	users ports.UserRepository,
	posts ports.PostRepository,
	pets ports.PetRepository,
	discussions ports.DiscussionRepository,
	relations ports.RelationRepository,
) ports.ReaderService {
	return &readerService{
		users:       users,
		posts:       posts,
		pets:        pets,
		discussions: discussions,
		relations:   relations,
	}
}

func checkBatch(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) > MaxBatch {
		return domain.ErrBatchTooLarge
	}
	for _, id := range ids {
		if id == "" {
			return domain.ErrInvalidTarget
		}
	}
	return nil
}

func (s *readerService) Posts(ctx context.Context, ids []string, viewerID string) ([]domain.PostView, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.PostView{}, nil
	}

	// 1. Entités + compteurs, une seule requête batched
	rows, err := s.posts.FindManyWithCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 2. Flags viewer : une requête par variante d'edge, en parallèle.
	//    Lecteur anonyme -> on ne touche pas aux tables d'edges du tout.
	var liked, saved map[string]struct{}
	if viewerID != "" {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			liked, err = s.relations.TargetsWithEdge(gctx, viewerID, ids, domain.KindLikePost)
			return err
		})
		g.Go(func() error {
			var err error
			saved, err = s.relations.TargetsWithEdge(gctx, viewerID, ids, domain.KindSave)
			return err
		})
		if err := g.Wait(); err != nil {
			// Échec global : pas de vue partiellement hydratée.
			return nil, err
		}
	}

	// 3. Assemblage : test d'appartenance O(1), réordonné selon l'entrée.
	//    Les ids disparus du store sont OMIS, pas remplacés par un placeholder.
	byID := make(map[string]ports.PostWithCounts, len(rows))
	for _, row := range rows {
		byID[row.Post.ID] = row
	}

	views := make([]domain.PostView, 0, len(ids))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			continue
		}
		view := domain.PostView{Post: row.Post, Counts: row.Counts}
		if viewerID != "" {
			_, isLiked := liked[id]
			_, isSaved := saved[id]
			view.Viewer = &domain.PostViewerFlags{Liked: isLiked, Saved: isSaved}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *readerService) Users(ctx context.Context, ids []string, viewerID string) ([]domain.UserView, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.UserView{}, nil
	}

	rows, err := s.users.FindManyWithCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	var following map[string]struct{}
	if viewerID != "" {
		following, err = s.relations.TargetsWithEdge(ctx, viewerID, ids, domain.KindFollow)
		if err != nil {
			return nil, err
		}
	}

	byID := make(map[string]ports.UserWithCounts, len(rows))
	for _, row := range rows {
		byID[row.User.ID] = row
	}

	views := make([]domain.UserView, 0, len(ids))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			continue
		}
		view := domain.UserView{User: row.User, Counts: row.Counts}
		if viewerID != "" {
			_, isFollowing := following[id]
			view.Viewer = &domain.UserViewerFlags{IsFollowing: isFollowing}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *readerService) Pets(ctx context.Context, ids []string) ([]domain.PetView, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.PetView{}, nil
	}

	rows, err := s.pets.FindManyWithCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]ports.PetWithCounts, len(rows))
	for _, row := range rows {
		byID[row.Pet.ID] = row
	}

	views := make([]domain.PetView, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			views = append(views, domain.PetView{Pet: row.Pet, Counts: row.Counts})
		}
	}
	return views, nil
}

func (s *readerService) Discussions(ctx context.Context, ids []string) ([]domain.DiscussionView, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.DiscussionView{}, nil
	}

	rows, err := s.discussions.FindManyWithCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]ports.DiscussionWithCounts, len(rows))
	for _, row := range rows {
		byID[row.Discussion.ID] = row
	}

	views := make([]domain.DiscussionView, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			views = append(views, domain.DiscussionView{Discussion: row.Discussion, Counts: row.Counts})
		}
	}
	return views, nil
}
