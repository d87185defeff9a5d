package services

import (
	"context"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type profileService struct {
	repo ports.UserRepository
}

func NewProfileService(repo ports.UserRepository) ports.ProfileService {
	return &profileService{repo: repo}
}

// UpdateProfile ne touche que les champs présents dans la commande.
// On ne modifie jamais le profil d'un autre : l'id vient du token, point.
func (s *profileService) UpdateProfile(ctx context.Context, actorID string, update domain.ProfileUpdate) (*domain.User, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	user.Apply(update)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
