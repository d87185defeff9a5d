package services

import (
	"context"
	"time"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type petService struct {
	repo ports.PetRepository
}

func NewPetService(repo ports.PetRepository) ports.PetService {
	return &petService{repo: repo}
}

func (s *petService) CreatePet(ctx context.Context, cmd ports.CreatePetCmd) (*domain.Pet, error) {
	if cmd.OwnerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	pet, err := domain.NewPet(cmd.OwnerID, cmd.Name, cmd.Species, cmd.Breed, cmd.Gender, cmd.BirthDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *petService) GetPet(ctx context.Context, petID string) (*domain.Pet, error) {
	return s.repo.FindByID(ctx, petID)
}

func (s *petService) ListOwnerPetIDs(ctx context.Context, ownerID string, limit int) ([]string, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidTarget
	}
	// Borné à MaxBatch : la liste repart telle quelle dans le reader agrégé.
	if limit <= 0 || limit > MaxBatch {
		limit = MaxBatch
	}
	return s.repo.ListByOwnerIDs(ctx, ownerID, limit)
}

func (s *petService) AddHealthRecord(ctx context.Context, petID, actorID string, recType domain.HealthRecordType, title, notes string, recordedAt time.Time) (*domain.PetHealthRecord, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}

	// Seul le propriétaire écrit dans le carnet de santé
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}

	rec, err := domain.NewPetHealthRecord(petID, recType, title, notes, recordedAt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveHealthRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *petService) ListHealthRecords(ctx context.Context, petID string, limit int) ([]*domain.PetHealthRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListHealthRecords(ctx, petID, limit)
}
