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

type DiscussionPostgresRepo struct {
	db *pgxpool.Pool
}

func NewDiscussionPostgresRepo(db *pgxpool.Pool) ports.DiscussionRepository {
	return &DiscussionPostgresRepo{db: db}
}

func (r *DiscussionPostgresRepo) Save(ctx context.Context, d *domain.Discussion) error {
	q := `
		INSERT INTO discussions (id, author_id, title, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, q, d.ID, d.AuthorID, d.Title, d.Content, string(d.Status), d.CreatedAt, d.UpdatedAt)
	return translateError(err)
}

func (r *DiscussionPostgresRepo) FindByID(ctx context.Context, id string) (*domain.Discussion, error) {
	q := `
		SELECT id, author_id, title, COALESCE(content, ''), status, created_at, updated_at
		FROM discussions WHERE id = $1
	`

	var d domain.Discussion
	var status string
	err := r.db.QueryRow(ctx, q, id).Scan(&d.ID, &d.AuthorID, &d.Title, &d.Content, &status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateError(err)
	}
	d.Status = domain.DiscussionStatus(status)
	return &d, nil
}

func (r *DiscussionPostgresRepo) ListLatest(ctx context.Context, limit int, before time.Time) ([]ports.EntityRef, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if before.IsZero() {
		rows, err = r.db.Query(ctx, `SELECT id, created_at FROM discussions ORDER BY created_at DESC LIMIT $1`, limit)
	} else {
		rows, err = r.db.Query(ctx, `SELECT id, created_at FROM discussions WHERE created_at < $2 ORDER BY created_at DESC LIMIT $1`, limit, before)
	}
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

func (r *DiscussionPostgresRepo) FindManyWithCounts(ctx context.Context, ids []string) ([]ports.DiscussionWithCounts, error) {
	q := `
		SELECT d.id, d.author_id, d.title, COALESCE(d.content, ''), d.status, d.created_at, d.updated_at,
		       (SELECT count(*) FROM discussion_replies dr WHERE dr.discussion_id = d.id) AS reply_count
		FROM discussions d
		WHERE d.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []ports.DiscussionWithCounts
	for rows.Next() {
		var d domain.Discussion
		var status string
		var counts domain.DiscussionCounts
		err := rows.Scan(&d.ID, &d.AuthorID, &d.Title, &d.Content, &status, &d.CreatedAt, &d.UpdatedAt, &counts.Comments)
		if err != nil {
			return nil, translateError(err)
		}
		d.Status = domain.DiscussionStatus(status)
		out = append(out, ports.DiscussionWithCounts{Discussion: d, Counts: counts})
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

func (r *DiscussionPostgresRepo) SaveReply(ctx context.Context, reply *domain.DiscussionReply) error {
	q := `
		INSERT INTO discussion_replies (id, discussion_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, q, reply.ID, reply.DiscussionID, reply.AuthorID, reply.Content, reply.CreatedAt)
	return translateError(err)
}

func (r *DiscussionPostgresRepo) ListReplies(ctx context.Context, discussionID string, limit int) ([]*domain.DiscussionReply, error) {
	q := `
		SELECT id, discussion_id, author_id, content, created_at
		FROM discussion_replies
		WHERE discussion_id = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, q, discussionID, limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []*domain.DiscussionReply
	for rows.Next() {
		var reply domain.DiscussionReply
		if err := rows.Scan(&reply.ID, &reply.DiscussionID, &reply.AuthorID, &reply.Content, &reply.CreatedAt); err != nil {
			return nil, translateError(err)
		}
		out = append(out, &reply)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
