package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// DTO interne pour gérer les NULLs SQL sans polluer le domaine
type sqlUser struct {
	ID              string
	Email           string
	Username        string
	FullName        *string
	Bio             *string
	AvatarURL       *string
	CoverImageURL   *string
	IsVerified      bool
	MembershipLevel string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *sqlUser) toDomain() domain.User {
	out := domain.User{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		IsVerified:      u.IsVerified,
		MembershipLevel: domain.MembershipLevel(u.MembershipLevel),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.FullName != nil {
		out.FullName = *u.FullName
	}
	if u.Bio != nil {
		out.Bio = *u.Bio
	}
	if u.AvatarURL != nil {
		out.AvatarURL = *u.AvatarURL
	}
	if u.CoverImageURL != nil {
		out.CoverImageURL = *u.CoverImageURL
	}
	return out
}

type UserPostgresRepo struct {
	db *pgxpool.Pool
}

func NewUserPostgresRepo(db *pgxpool.Pool) ports.UserRepository {
	return &UserPostgresRepo{db: db}
}

const userColumns = `id, email, username, full_name, bio, avatar_url, cover_image_url, is_verified, membership_level, created_at, updated_at`

func (r *UserPostgresRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u sqlUser
	err := r.db.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.Username, &u.FullName, &u.Bio, &u.AvatarURL,
		&u.CoverImageURL, &u.IsVerified, &u.MembershipLevel, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateError(err)
	}

	user := u.toDomain()
	return &user, nil
}

func (r *UserPostgresRepo) Update(ctx context.Context, user *domain.User) error {
	q := `
		UPDATE users
		SET full_name = @full_name, bio = @bio, avatar_url = @avatar_url, updated_at = @updated_at
		WHERE id = @id
	`
	args := pgx.NamedArgs{
		"id":         user.ID,
		"full_name":  user.FullName,
		"bio":        user.Bio,
		"avatar_url": user.AvatarURL,
		"updated_at": user.UpdatedAt,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindManyWithCounts : UNE requête pour la page entière, compteurs inclus.
// Les counts sont recalculés par la base, jamais dénormalisés ici.
func (r *UserPostgresRepo) FindManyWithCounts(ctx context.Context, ids []string) ([]ports.UserWithCounts, error) {
	q := `
		SELECT u.id, u.email, u.username, u.full_name, u.bio, u.avatar_url,
		       u.cover_image_url, u.is_verified, u.membership_level, u.created_at, u.updated_at,
		       (SELECT count(*) FROM posts p WHERE p.author_id = u.id AND NOT p.is_archived) AS post_count,
		       (SELECT count(*) FROM follows f WHERE f.following_id = u.id) AS follower_count,
		       (SELECT count(*) FROM follows f WHERE f.follower_id = u.id)  AS following_count
		FROM users u
		WHERE u.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []ports.UserWithCounts
	for rows.Next() {
		var u sqlUser
		var counts domain.UserCounts
		err := rows.Scan(
			&u.ID, &u.Email, &u.Username, &u.FullName, &u.Bio, &u.AvatarURL,
			&u.CoverImageURL, &u.IsVerified, &u.MembershipLevel, &u.CreatedAt, &u.UpdatedAt,
			&counts.Posts, &counts.Followers, &counts.Following,
		)
		if err != nil {
			return nil, translateError(err)
		}
		out = append(out, ports.UserWithCounts{User: u.toDomain(), Counts: counts})
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
