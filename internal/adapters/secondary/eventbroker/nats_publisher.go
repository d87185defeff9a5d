package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
)

// Sujets NATS (contrat implicite avec les consumers feed/notifications)
const (
	SubjectRelationChanged = "relation.changed"
	SubjectPostCreated     = "post.created"
	SubjectPostCommented   = "post.commented"
)

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

// PublishRelationChanged émet le signal d'invalidation après un toggle réussi.
// Le publisher ne sait pas (et ne veut pas savoir) comment les vues se
// rafraîchissent derrière.
func (p *NatsPublisher) PublishRelationChanged(ctx context.Context, event domain.RelationChangedEvent) error {
	return p.publish(ctx, SubjectRelationChanged, event)
}

// PostCreatedEvent déclenche le fan-out du feed
type PostCreatedEvent struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *NatsPublisher) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	contentType := string(domain.ContentPost)
	if post.MediaType == domain.MediaImage {
		contentType = string(domain.ContentImage)
	} else if post.MediaType == domain.MediaVideo {
		contentType = string(domain.ContentVideo)
	}

	return p.publish(ctx, SubjectPostCreated, PostCreatedEvent{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Type:      contentType,
		CreatedAt: post.CreatedAt,
	})
}

type PostCommentedEvent struct {
	CommentID    string    `json:"comment_id"`
	PostID       string    `json:"post_id"`
	AuthorID     string    `json:"author_id"`      // Auteur du commentaire
	PostAuthorID string    `json:"post_author_id"` // Destinataire de la notification
	CreatedAt    time.Time `json:"created_at"`
}

func (p *NatsPublisher) PublishPostCommented(ctx context.Context, comment *domain.Comment, postAuthorID string) error {
	return p.publish(ctx, SubjectPostCommented, PostCommentedEvent{
		CommentID:    comment.ID,
		PostID:       comment.PostID,
		AuthorID:     comment.AuthorID,
		PostAuthorID: postAuthorID,
		CreatedAt:    comment.CreatedAt,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling error: %w", err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	// Injection du TraceID dans les headers NATS : le consumer continue la
	// trace commencée par la requête HTTP.
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	slog.Debug("📢 Publishing event", "subject", subject)
	return p.nc.PublishMsg(msg)
}
