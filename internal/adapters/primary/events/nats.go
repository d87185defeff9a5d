package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Neobase1412/meow-circle/internal/adapters/secondary/eventbroker"
	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

const handlerTimeout = 30 * time.Second

// EventHandler est l'adaptateur Driving asynchrone : il traduit les messages
// NATS en appels de services. Chaque handler extrait le contexte de trace des
// headers pour continuer la trace commencée côté HTTP.
type EventHandler struct {
	feed          ports.FeedService
	notifications ports.NotificationService
}

func NewEventHandler(feed ports.FeedService, notifications ports.NotificationService) *EventHandler {
	return &EventHandler{feed: feed, notifications: notifications}
}

// Subscribe branche tous les handlers sur la connexion.
func (h *EventHandler) Subscribe(nc *nats.Conn) error {
	if _, err := nc.Subscribe(eventbroker.SubjectPostCreated, h.HandlePostCreated); err != nil {
		return err
	}
	if _, err := nc.Subscribe(eventbroker.SubjectRelationChanged, h.HandleRelationChanged); err != nil {
		return err
	}
	if _, err := nc.Subscribe(eventbroker.SubjectPostCommented, h.HandlePostCommented); err != nil {
		return err
	}
	return nil
}

// extractTrace reconstruit le contexte de trace depuis les headers NATS.
func extractTrace(msg *nats.Msg, spanName string) (context.Context, trace.Span) {
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(msg.Header))
	tracer := otel.Tracer("meow-circle/events")
	return tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindConsumer))
}

func (h *EventHandler) HandlePostCreated(msg *nats.Msg) {
	ctx, span := extractTrace(msg, "process_post_created")
	defer span.End()

	var event eventbroker.PostCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		span.RecordError(err)
		slog.Error("❌ Invalid post.created payload", "error", err)
		return
	}

	slog.Info("📨 Received post.created", "post_id", event.ID)

	item := &domain.FeedItem{
		PostID:    event.ID,
		AuthorID:  event.AuthorID,
		Type:      domain.ContentType(event.Type),
		CreatedAt: event.CreatedAt,
	}

	// Fan-out en background : le publisher n'attend pas la distribution
	go func() {
		childCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
		defer cancel()

		if err := h.feed.DistributePost(childCtx, item); err != nil {
			slog.Error("❌ Fan-out failed", "post_id", event.ID, "error", err)
		}
	}()
}

func (h *EventHandler) HandleRelationChanged(msg *nats.Msg) {
	ctx, span := extractTrace(msg, "process_relation_changed")
	defer span.End()

	var event domain.RelationChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		span.RecordError(err)
		slog.Error("❌ Invalid relation.changed payload", "error", err)
		return
	}

	childCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	if err := h.notifications.RecordRelationChange(childCtx, event); err != nil {
		span.RecordError(err)
		slog.Error("❌ Failed to record relation change", "kind", event.Kind, "error", err)
	}
}

func (h *EventHandler) HandlePostCommented(msg *nats.Msg) {
	ctx, span := extractTrace(msg, "process_post_commented")
	defer span.End()

	var event eventbroker.PostCommentedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		span.RecordError(err)
		slog.Error("❌ Invalid post.commented payload", "error", err)
		return
	}

	comment := &domain.Comment{
		ID:        event.CommentID,
		PostID:    event.PostID,
		AuthorID:  event.AuthorID,
		CreatedAt: event.CreatedAt,
	}

	childCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	if err := h.notifications.RecordPostComment(childCtx, comment, event.PostAuthorID); err != nil {
		span.RecordError(err)
		slog.Error("❌ Failed to record comment notification", "post_id", event.PostID, "error", err)
	}
}
