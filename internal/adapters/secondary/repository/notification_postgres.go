package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type NotificationPostgresRepo struct {
	db *pgxpool.Pool
}

func NewNotificationPostgresRepo(db *pgxpool.Pool) ports.NotificationRepository {
	return &NotificationPostgresRepo{db: db}
}

func (r *NotificationPostgresRepo) Save(ctx context.Context, n *domain.Notification) error {
	q := `
		INSERT INTO notifications (id, user_id, actor_id, type, ref_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
	`
	_, err := r.db.Exec(ctx, q, n.ID, n.UserID, n.ActorID, string(n.Type), n.RefID, n.IsRead, n.CreatedAt)
	return translateError(err)
}

func (r *NotificationPostgresRepo) ListByUser(ctx context.Context, userID string, limit int, before time.Time) ([]*domain.Notification, error) {
	var (
		rows pgx.Rows
		err  error
	)
	const cols = `id, user_id, actor_id, type, COALESCE(ref_id, ''), is_read, created_at`
	if before.IsZero() {
		rows, err = r.db.Query(ctx,
			`SELECT `+cols+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
			userID, limit)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+cols+` FROM notifications WHERE user_id = $1 AND created_at < $3 ORDER BY created_at DESC LIMIT $2`,
			userID, limit, before)
	}
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var notifType string
		if err := rows.Scan(&n.ID, &n.UserID, &n.ActorID, &notifType, &n.RefID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, translateError(err)
		}
		n.Type = domain.NotificationType(notifType)
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// MarkRead : le filtre user_id empêche de lire les notifications des autres.
func (r *NotificationPostgresRepo) MarkRead(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationPostgresRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
