package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// relationService implémente le toggle follow/like/save.
// Check-then-act assumé : la fenêtre de course entre le Find et le Create est
// couverte par la contrainte UNIQUE de la base, et la violation est réconciliée
// ici au lieu de remonter une erreur brute.
type relationService struct {
	repo      ports.RelationRepository
	publisher ports.EventPublisher
}

func NewRelationService(repo ports.RelationRepository, pub ports.EventPublisher) ports.RelationService {
	return &relationService{repo: repo, publisher: pub}
}

func (s *relationService) Toggle(ctx context.Context, actorID, targetID string, kind domain.RelationKind) (*domain.ToggleResult, error) {
	// 1. Préconditions, AVANT tout accès au store
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if targetID == "" || !kind.Valid() {
		return nil, domain.ErrInvalidTarget
	}
	if kind == domain.KindFollow && actorID == targetID {
		return nil, domain.ErrSelfTarget
	}

	// 2. Check : l'edge existe-t-il déjà ?
	existing, err := s.repo.Find(ctx, actorID, targetID, kind)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// 3. Act : flip
	var active bool
	if existing != nil {
		// Présent -> on détruit. Supprimer un row déjà absent est un no-op
		// côté store, l'état résultant reste "inactif" dans les deux cas.
		if err := s.repo.Delete(ctx, existing.ID, kind); err != nil {
			return nil, err
		}
		active = false
	} else {
		edge := domain.NewRelationEdge(actorID, targetID, kind)
		err := s.repo.Create(ctx, edge)
		switch {
		case err == nil:
			active = true
		case errors.Is(err, domain.ErrEdgeAlreadyExists):
			// Course perdue contre un autre toggle du même acteur : quelqu'un
			// vient d'activer le même edge. Convergence idempotente, on
			// rapporte le même état que le gagnant.
			active = true
		default:
			return nil, err
		}
	}

	// 4. Signal d'invalidation sortant (best effort, jamais bloquant)
	event := domain.RelationChangedEvent{
		ActorID:  actorID,
		TargetID: targetID,
		Kind:     kind,
		Active:   active,
		At:       time.Now().UTC(),
	}
	if err := s.publisher.PublishRelationChanged(ctx, event); err != nil {
		slog.Warn("⚠️ Failed to publish relation.changed", "kind", kind, "error", err)
	}

	return &domain.ToggleResult{Active: active}, nil
}
