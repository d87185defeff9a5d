package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PetGender string

const (
	PetGenderMale    PetGender = "MALE"
	PetGenderFemale  PetGender = "FEMALE"
	PetGenderUnknown PetGender = "UNKNOWN"
)

type Pet struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"ownerId"`
	Name            string     `json:"name"`
	Species         string     `json:"species"` // "cat", "dog", ...
	Breed           string     `json:"breed,omitempty"`
	Gender          PetGender  `json:"gender"`
	BirthDate       *time.Time `json:"birthDate,omitempty"`
	PrimaryImageURL string     `json:"primaryImageUrl,omitempty"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewPet valide et construit un animal rattaché à son propriétaire.
func NewPet(ownerID, name, species, breed string, gender PetGender, birthDate *time.Time) (*Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 50 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(species) == "" {
		return nil, ErrInvalidInput
	}
	if gender == "" {
		gender = PetGenderUnknown
	}

	now := time.Now().UTC()
	return &Pet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Species:   strings.ToLower(strings.TrimSpace(species)),
		Breed:     strings.TrimSpace(breed),
		Gender:    gender,
		BirthDate: birthDate,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HealthRecordType classe les entrées du carnet de santé.
type HealthRecordType string

const (
	HealthVaccination HealthRecordType = "VACCINATION"
	HealthCheckup     HealthRecordType = "CHECKUP"
	HealthTreatment   HealthRecordType = "TREATMENT"
	HealthWeight      HealthRecordType = "WEIGHT"
	HealthOther       HealthRecordType = "OTHER"
)

type PetHealthRecord struct {
	ID         string           `json:"id"`
	PetID      string           `json:"petId"`
	Type       HealthRecordType `json:"type"`
	Title      string           `json:"title"`
	Notes      string           `json:"notes,omitempty"`
	RecordedAt time.Time        `json:"recordedAt"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func NewPetHealthRecord(petID string, recType HealthRecordType, title, notes string, recordedAt time.Time) (*PetHealthRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 150 {
		return nil, ErrInvalidInput
	}
	if recType == "" {
		recType = HealthOther
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	return &PetHealthRecord{
		ID:         uuid.NewString(),
		PetID:      petID,
		Type:       recType,
		Title:      title,
		Notes:      notes,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
