package ports

import (
	"context"
	"time"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
)

// --- ÉCRITURE : le pattern toggle ---

// RelationService est le port Driving du toggle follow/like/save.
// Toujours le même contrat : flip de l'edge + état autoritatif en retour.
type RelationService interface {
	Toggle(ctx context.Context, actorID, targetID string, kind domain.RelationKind) (*domain.ToggleResult, error)
}

// --- LECTURE : le pattern agrégation ---

// ReaderService assemble entité + compteurs + flags viewer en un nombre borné
// de requêtes. viewerID == "" signifie lecteur anonyme : les flags sont alors
// absents (nil), pas silencieusement à false.
type ReaderService interface {
	Posts(ctx context.Context, ids []string, viewerID string) ([]domain.PostView, error)
	Users(ctx context.Context, ids []string, viewerID string) ([]domain.UserView, error)
	Pets(ctx context.Context, ids []string) ([]domain.PetView, error)
	Discussions(ctx context.Context, ids []string) ([]domain.DiscussionView, error)
}

// --- MODULES MÉTIER ---

type CreatePostCmd struct {
	AuthorID   string
	Content    string
	Visibility domain.Visibility
	MediaURLs  []string
}

type PostService interface {
	CreatePost(ctx context.Context, cmd CreatePostCmd) (*domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	DeletePost(ctx context.Context, postID, actorID string) error

	CreateComment(ctx context.Context, postID, actorID, content, parentID string) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string, limit int) ([]*domain.Comment, error)

	// ListCommunityIDs / ListAuthorIDs : pagination keyset, le curseur est la
	// date de création formatée RFC3339Nano (vide = première page).
	ListCommunityIDs(ctx context.Context, limit int, cursor string) ([]string, string, error)
	ListAuthorIDs(ctx context.Context, authorID string, limit int, cursor string) ([]string, string, error)
}

type CreatePetCmd struct {
	OwnerID   string
	Name      string
	Species   string
	Breed     string
	Gender    domain.PetGender
	BirthDate *time.Time
}

type PetService interface {
	CreatePet(ctx context.Context, cmd CreatePetCmd) (*domain.Pet, error)
	GetPet(ctx context.Context, petID string) (*domain.Pet, error)
	ListOwnerPetIDs(ctx context.Context, ownerID string, limit int) ([]string, error)

	AddHealthRecord(ctx context.Context, petID, actorID string, recType domain.HealthRecordType, title, notes string, recordedAt time.Time) (*domain.PetHealthRecord, error)
	ListHealthRecords(ctx context.Context, petID string, limit int) ([]*domain.PetHealthRecord, error)
}

type DiscussionService interface {
	CreateDiscussion(ctx context.Context, authorID, title, content string) (*domain.Discussion, error)
	GetDiscussion(ctx context.Context, id string) (*domain.Discussion, error)
	ListLatestIDs(ctx context.Context, limit int, cursor string) ([]string, string, error)

	Reply(ctx context.Context, discussionID, actorID, content string) (*domain.DiscussionReply, error)
	ListReplies(ctx context.Context, discussionID string, limit int) ([]*domain.DiscussionReply, error)
}

type NotificationService interface {
	// RecordRelationChange consomme un signal d'invalidation entrant.
	RecordRelationChange(ctx context.Context, event domain.RelationChangedEvent) error
	RecordPostComment(ctx context.Context, comment *domain.Comment, postAuthorID string) error

	List(ctx context.Context, userID string, limit int, cursor string) ([]*domain.Notification, string, error)
	MarkRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type FeedService interface {
	// DistributePost : fan-out du post vers les timelines des followers.
	DistributePost(ctx context.Context, item *domain.FeedItem) error

	// Timeline renvoie les entrées brutes ; l'hydratation passe par ReaderService.
	Timeline(ctx context.Context, req domain.FeedRequest) ([]*domain.FeedItem, error)
}

type ShopService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, actorID string, update domain.ProfileUpdate) (*domain.User, error)
}
