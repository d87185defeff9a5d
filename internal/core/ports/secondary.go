package ports

import (
	"context"
	"time"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
)

// --- PERSISTANCE (Postgres) ---

// RelationRepository est le port Driven du toggle. Trois variantes d'edges
// (follows, likes, collections), même contrat : au plus UN edge par tuple
// (actor, target, kind), garanti par les contraintes UNIQUE de la base.
type RelationRepository interface {
	// Find renvoie domain.ErrNotFound si l'edge est absent.
	Find(ctx context.Context, actorID, targetID string, kind domain.RelationKind) (*domain.RelationEdge, error)

	// Create renvoie domain.ErrEdgeAlreadyExists si le tuple existe déjà
	// (course entre deux toggles simultanés) et domain.ErrInvalidTarget si la
	// cible référencée n'existe pas (violation FK).
	Create(ctx context.Context, edge *domain.RelationEdge) error

	// Delete est un no-op si le row a déjà disparu.
	Delete(ctx context.Context, edgeID string, kind domain.RelationKind) error

	// TargetsWithEdge renvoie le sous-ensemble de targetIDs pour lesquels un
	// edge (actorID -> target, kind) existe. Une seule requête, jamais du N+1.
	TargetsWithEdge(ctx context.Context, actorID string, targetIDs []string, kind domain.RelationKind) (map[string]struct{}, error)

	// StreamFollowerIDs livre les followers par paquets via yield (fan-out).
	StreamFollowerIDs(ctx context.Context, userID string, batchSize int, yield func([]string) error) error
}

// EntityRef : (id, created_at) d'un élément listé. Suffisant pour hydrater via
// le reader et calculer le curseur keyset de la page suivante.
type EntityRef struct {
	ID        string
	CreatedAt time.Time
}

// UserWithCounts / PostWithCounts / ... : l'entité + ses compteurs dérivés,
// calculés en UNE requête batched (id = ANY($1) + sous-selects count).
type UserWithCounts struct {
	User   domain.User
	Counts domain.UserCounts
}

type PostWithCounts struct {
	Post   domain.Post
	Counts domain.PostCounts
}

type PetWithCounts struct {
	Pet    domain.Pet
	Counts domain.PetCounts
}

type DiscussionWithCounts struct {
	Discussion domain.Discussion
	Counts     domain.DiscussionCounts
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// FindManyWithCounts : ordre de sortie NON garanti, ids absents ignorés.
	// C'est le reader qui réordonne.
	FindManyWithCounts(ctx context.Context, ids []string) ([]UserWithCounts, error)
}

type PostRepository interface {
	Save(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	FindManyWithCounts(ctx context.Context, ids []string) ([]PostWithCounts, error)

	// Listings keyset (cursor = created_at du dernier élément vu).
	ListPublic(ctx context.Context, limit int, before time.Time) ([]EntityRef, error)
	ListByAuthor(ctx context.Context, authorID string, limit int, before time.Time) ([]EntityRef, error)

	SaveComment(ctx context.Context, comment *domain.Comment) error
	ListComments(ctx context.Context, postID string, limit int) ([]*domain.Comment, error)
}

type PetRepository interface {
	Save(ctx context.Context, pet *domain.Pet) error
	FindByID(ctx context.Context, id string) (*domain.Pet, error)
	ListByOwnerIDs(ctx context.Context, ownerID string, limit int) ([]string, error)
	FindManyWithCounts(ctx context.Context, ids []string) ([]PetWithCounts, error)

	SaveHealthRecord(ctx context.Context, rec *domain.PetHealthRecord) error
	ListHealthRecords(ctx context.Context, petID string, limit int) ([]*domain.PetHealthRecord, error)
}

type DiscussionRepository interface {
	Save(ctx context.Context, d *domain.Discussion) error
	FindByID(ctx context.Context, id string) (*domain.Discussion, error)
	ListLatest(ctx context.Context, limit int, before time.Time) ([]EntityRef, error)
	FindManyWithCounts(ctx context.Context, ids []string) ([]DiscussionWithCounts, error)

	SaveReply(ctx context.Context, reply *domain.DiscussionReply) error
	ListReplies(ctx context.Context, discussionID string, limit int) ([]*domain.DiscussionReply, error)
}

type NotificationRepository interface {
	Save(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int, before time.Time) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
}

// --- CACHE (Redis) ---

// TimelineRepository stocke les timelines matérialisées (Sorted Sets).
type TimelineRepository interface {
	AddToTimelines(ctx context.Context, userIDs []string, item *domain.FeedItem) error
	GetTimeline(ctx context.Context, req domain.FeedRequest) ([]*domain.FeedItem, error)
}

// --- MESSAGERIE (Broker) ---

// EventPublisher émet les signaux d'invalidation sortants. Best effort :
// un échec de publication ne fait jamais échouer la mutation d'origine.
type EventPublisher interface {
	PublishRelationChanged(ctx context.Context, event domain.RelationChangedEvent) error
	PublishPostCreated(ctx context.Context, post *domain.Post) error
	PublishPostCommented(ctx context.Context, comment *domain.Comment, postAuthorID string) error
}

// --- SÉCURITÉ ---

// TokenVerifier est l'adaptateur vers le fournisseur d'identité externe.
// Ici on ne fait que valider : l'émission des tokens se fait ailleurs.
type TokenVerifier interface {
	// Validate renvoie l'ID utilisateur (Subject) ou domain.ErrUnauthenticated.
	Validate(token string) (string, error)
}
