package services

import (
	"context"
	"errors"
	"time"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// notificationService matérialise les signaux du broker en notifications.
// Le destinataire d'un follow est la cible de l'edge ; pour un like, c'est
// l'auteur du post, qu'il faut résoudre via le repo posts.
type notificationService struct {
	repo  ports.NotificationRepository
	posts ports.PostRepository
}

func NewNotificationService(repo ports.NotificationRepository, posts ports.PostRepository) ports.NotificationService {
	return &notificationService{repo: repo, posts: posts}
}

func (s *notificationService) RecordRelationChange(ctx context.Context, event domain.RelationChangedEvent) error {
	// Une désactivation (unfollow, unlike) ne notifie personne.
	if !event.Active {
		return nil
	}

	var notif *domain.Notification
	switch event.Kind {
	case domain.KindFollow:
		notif = domain.NewNotification(event.TargetID, event.ActorID, domain.NotifNewFollower, "")
	case domain.KindLikePost:
		post, err := s.posts.FindByID(ctx, event.TargetID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil // Post supprimé entre temps, rien à notifier
			}
			return err
		}
		notif = domain.NewNotification(post.AuthorID, event.ActorID, domain.NotifPostLiked, post.ID)
	default:
		// Saves et likes de commentaires restent silencieux
		return nil
	}

	// Pas d'auto-notification
	if notif.UserID == notif.ActorID {
		return nil
	}

	return s.repo.Save(ctx, notif)
}

func (s *notificationService) RecordPostComment(ctx context.Context, comment *domain.Comment, postAuthorID string) error {
	if comment.AuthorID == postAuthorID {
		return nil
	}
	notif := domain.NewNotification(postAuthorID, comment.AuthorID, domain.NotifPostCommented, comment.PostID)
	return s.repo.Save(ctx, notif)
}

func (s *notificationService) List(ctx context.Context, userID string, limit int, cursor string) ([]*domain.Notification, string, error) {
	if userID == "" {
		return nil, "", domain.ErrUnauthenticated
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	before, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	notifs, err := s.repo.ListByUser(ctx, userID, limit, before)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(notifs) == limit {
		next = notifs[len(notifs)-1].CreatedAt.Format(time.RFC3339Nano)
	}
	return notifs, next, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.ErrUnauthenticated
	}
	return s.repo.CountUnread(ctx, userID)
}
