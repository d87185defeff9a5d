package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type PetPostgresRepo struct {
	db *pgxpool.Pool
}

func NewPetPostgresRepo(db *pgxpool.Pool) ports.PetRepository {
	return &PetPostgresRepo{db: db}
}

func (r *PetPostgresRepo) Save(ctx context.Context, pet *domain.Pet) error {
	q := `
		INSERT INTO pets (id, owner_id, name, species, breed, gender, birth_date, primary_image_url, is_active, created_at, updated_at)
		VALUES (@id, @owner_id, @name, @species, @breed, @gender, @birth_date, @primary_image_url, @is_active, @created_at, @updated_at)
	`
	args := pgx.NamedArgs{
		"id":                pet.ID,
		"owner_id":          pet.OwnerID,
		"name":              pet.Name,
		"species":           pet.Species,
		"breed":             pet.Breed,
		"gender":            string(pet.Gender),
		"birth_date":        pet.BirthDate,
		"primary_image_url": pet.PrimaryImageURL,
		"is_active":         pet.IsActive,
		"created_at":        pet.CreatedAt,
		"updated_at":        pet.UpdatedAt,
	}

	_, err := r.db.Exec(ctx, q, args)
	return translateError(err)
}

func (r *PetPostgresRepo) FindByID(ctx context.Context, id string) (*domain.Pet, error) {
	q := `
		SELECT id, owner_id, name, species, breed, gender, birth_date, primary_image_url, is_active, created_at, updated_at
		FROM pets WHERE id = $1 AND is_active
	`

	pet, err := scanPet(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateError(err)
	}
	return pet, nil
}

func (r *PetPostgresRepo) ListByOwnerIDs(ctx context.Context, ownerID string, limit int) ([]string, error) {
	q := `SELECT id FROM pets WHERE owner_id = $1 AND is_active ORDER BY created_at ASC LIMIT $2`

	rows, err := r.db.Query(ctx, q, ownerID, limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translateError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

func (r *PetPostgresRepo) FindManyWithCounts(ctx context.Context, ids []string) ([]ports.PetWithCounts, error) {
	q := `
		SELECT p.id, p.owner_id, p.name, p.species, p.breed, p.gender, p.birth_date,
		       p.primary_image_url, p.is_active, p.created_at, p.updated_at,
		       (SELECT count(*) FROM pet_health_records h WHERE h.pet_id = p.id) AS record_count
		FROM pets p
		WHERE p.id = ANY($1) AND p.is_active
	`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []ports.PetWithCounts
	for rows.Next() {
		var p domain.Pet
		var breed, imageURL *string
		var gender string
		var counts domain.PetCounts

		err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Species, &breed, &gender, &p.BirthDate,
			&imageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&counts.HealthRecords,
		)
		if err != nil {
			return nil, translateError(err)
		}
		if breed != nil {
			p.Breed = *breed
		}
		if imageURL != nil {
			p.PrimaryImageURL = *imageURL
		}
		p.Gender = domain.PetGender(gender)
		out = append(out, ports.PetWithCounts{Pet: p, Counts: counts})
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *PetPostgresRepo) SaveHealthRecord(ctx context.Context, rec *domain.PetHealthRecord) error {
	q := `
		INSERT INTO pet_health_records (id, pet_id, type, title, notes, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, q, rec.ID, rec.PetID, string(rec.Type), rec.Title, rec.Notes, rec.RecordedAt, rec.CreatedAt)
	return translateError(err)
}

func (r *PetPostgresRepo) ListHealthRecords(ctx context.Context, petID string, limit int) ([]*domain.PetHealthRecord, error) {
	q := `
		SELECT id, pet_id, type, title, notes, recorded_at, created_at
		FROM pet_health_records
		WHERE pet_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, q, petID, limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []*domain.PetHealthRecord
	for rows.Next() {
		var rec domain.PetHealthRecord
		var recType string
		if err := rows.Scan(&rec.ID, &rec.PetID, &recType, &rec.Title, &rec.Notes, &rec.RecordedAt, &rec.CreatedAt); err != nil {
			return nil, translateError(err)
		}
		rec.Type = domain.HealthRecordType(recType)
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var p domain.Pet
	var breed, imageURL *string
	var gender string

	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Species, &breed, &gender, &p.BirthDate,
		&imageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if breed != nil {
		p.Breed = *breed
	}
	if imageURL != nil {
		p.PrimaryImageURL = *imageURL
	}
	p.Gender = domain.PetGender(gender)
	return &p, nil
}
