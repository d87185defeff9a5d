package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type PostPostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostPostgresRepo(db *pgxpool.Pool) ports.PostRepository {
	return &PostPostgresRepo{db: db}
}

func (r *PostPostgresRepo) Save(ctx context.Context, post *domain.Post) error {
	q := `
		INSERT INTO posts (id, author_id, content, mood, location, visibility, media_urls, media_type, is_pinned, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	// media_urls part en JSONB, on encode avant pour être sûr
	mediaJSON, err := json.Marshal(post.MediaURLs)
	if err != nil {
		return fmt.Errorf("failed to marshal media urls: %w", err)
	}

	_, err = r.db.Exec(ctx, q,
		post.ID, post.AuthorID, post.Content, post.Mood, post.Location,
		string(post.Visibility), mediaJSON, string(post.MediaType),
		post.IsPinned, post.IsArchived, post.CreatedAt, post.UpdatedAt,
	)
	return translateError(err)
}

const postColumns = `id, author_id, content, mood, location, visibility, media_urls, media_type, is_pinned, is_archived, created_at, updated_at`

func (r *PostPostgresRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND NOT is_archived`

	post, err := scanPost(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateError(err)
	}
	return post, nil
}

func (r *PostPostgresRepo) Delete(ctx context.Context, id string) error {
	// Soft delete : les edges (likes, saves) restent cohérents via FK
	_, err := r.db.Exec(ctx, `UPDATE posts SET is_archived = TRUE, updated_at = now() WHERE id = $1`, id)
	return translateError(err)
}

// FindManyWithCounts : hydratation batch (feed, communauté).
// id = ANY($1) + sous-selects count, jamais une requête par post.
func (r *PostPostgresRepo) FindManyWithCounts(ctx context.Context, ids []string) ([]ports.PostWithCounts, error) {
	q := `
		SELECT p.id, p.author_id, p.content, p.mood, p.location, p.visibility,
		       p.media_urls, p.media_type, p.is_pinned, p.is_archived, p.created_at, p.updated_at,
		       (SELECT count(*) FROM likes l WHERE l.post_id = p.id)    AS like_count,
		       (SELECT count(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		WHERE p.id = ANY($1) AND NOT p.is_archived
	`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []ports.PostWithCounts
	for rows.Next() {
		var p domain.Post
		var mood, location *string
		var visibility, mediaType string
		var mediaJSON []byte
		var counts domain.PostCounts

		err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Content, &mood, &location, &visibility,
			&mediaJSON, &mediaType, &p.IsPinned, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
			&counts.Likes, &counts.Comments,
		)
		if err != nil {
			return nil, translateError(err)
		}
		fillPost(&p, mood, location, visibility, mediaType, mediaJSON)
		out = append(out, ports.PostWithCounts{Post: p, Counts: counts})
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// ListPublic : pagination keyset, "OFFSET 50000" est interdit ici.
func (r *PostPostgresRepo) ListPublic(ctx context.Context, limit int, before time.Time) ([]ports.EntityRef, error) {
	if before.IsZero() {
		q := `
			SELECT id, created_at FROM posts
			WHERE visibility = 'PUBLIC' AND NOT is_archived
			ORDER BY created_at DESC
			LIMIT $1
		`
		return r.collectRefs(ctx, q, limit)
	}

	q := `
		SELECT id, created_at FROM posts
		WHERE visibility = 'PUBLIC' AND NOT is_archived AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.collectRefs(ctx, q, limit, before)
}

func (r *PostPostgresRepo) ListByAuthor(ctx context.Context, authorID string, limit int, before time.Time) ([]ports.EntityRef, error) {
	if before.IsZero() {
		q := `
			SELECT id, created_at FROM posts
			WHERE author_id = $2 AND NOT is_archived
			ORDER BY created_at DESC
			LIMIT $1
		`
		return r.collectRefs(ctx, q, limit, authorID)
	}

	q := `
		SELECT id, created_at FROM posts
		WHERE author_id = $2 AND NOT is_archived AND created_at < $3
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.collectRefs(ctx, q, limit, authorID, before)
}

func (r *PostPostgresRepo) SaveComment(ctx context.Context, comment *domain.Comment) error {
	q := `
		INSERT INTO comments (id, post_id, author_id, content, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
	`
	_, err := r.db.Exec(ctx, q,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content,
		comment.ParentID, comment.CreatedAt, comment.UpdatedAt,
	)
	return translateError(err)
}

func (r *PostPostgresRepo) ListComments(ctx context.Context, postID string, limit int) ([]*domain.Comment, error) {
	q := `
		SELECT id, post_id, author_id, content, COALESCE(parent_id, ''), created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, q, postID, limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, translateError(err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// --- Helpers ---

func (r *PostPostgresRepo) collectRefs(ctx context.Context, q string, limit int, args ...any) ([]ports.EntityRef, error) {
	queryArgs := append([]any{limit}, args...)
	rows, err := r.db.Query(ctx, q, queryArgs...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var refs []ports.EntityRef
	for rows.Next() {
		var ref ports.EntityRef
		if err := rows.Scan(&ref.ID, &ref.CreatedAt); err != nil {
			return nil, translateError(err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return refs, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	var mood, location *string
	var visibility, mediaType string
	var mediaJSON []byte

	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Content, &mood, &location, &visibility,
		&mediaJSON, &mediaType, &p.IsPinned, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	fillPost(&p, mood, location, visibility, mediaType, mediaJSON)
	return &p, nil
}

func fillPost(p *domain.Post, mood, location *string, visibility, mediaType string, mediaJSON []byte) {
	if mood != nil {
		p.Mood = *mood
	}
	if location != nil {
		p.Location = *location
	}
	p.Visibility = domain.Visibility(visibility)
	p.MediaType = domain.MediaType(mediaType)

	var urls []string
	if err := json.Unmarshal(mediaJSON, &urls); err != nil {
		urls = []string{} // Fallback safe
	}
	p.MediaURLs = urls
}
