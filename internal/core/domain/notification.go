package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifNewFollower   NotificationType = "NEW_FOLLOWER"
	NotifPostLiked     NotificationType = "POST_LIKED"
	NotifPostCommented NotificationType = "POST_COMMENTED"
)

// Notification est un fait déjà arrivé, dérivé des événements du broker.
// RefID pointe vers l'objet concerné (post, commentaire) selon le type.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"` // Destinataire
	ActorID   string           `json:"actorId"`
	Type      NotificationType `json:"type"`
	RefID     string           `json:"refId,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

func NewNotification(userID, actorID string, notifType NotificationType, refID string) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		ActorID:   actorID,
		Type:      notifType,
		RefID:     refID,
		CreatedAt: time.Now().UTC(),
	}
}
