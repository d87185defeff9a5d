package domain

import (
	"time"

	"github.com/google/uuid"
)

// RelationKind identifie la table d'edges visée par un toggle.
type RelationKind string

const (
	KindFollow      RelationKind = "FOLLOW"       // user -> user
	KindLikePost    RelationKind = "LIKE_POST"    // user -> post
	KindLikeComment RelationKind = "LIKE_COMMENT" // user -> comment
	KindSave        RelationKind = "SAVE"         // user -> post (collection)
)

// Valid rejette les kinds inconnus avant tout accès au store.
func (k RelationKind) Valid() bool {
	switch k {
	case KindFollow, KindLikePost, KindLikeComment, KindSave:
		return true
	}
	return false
}

// RelationEdge représente un lien dirigé unique (Actor -> Target).
// La présence du row = relation active. Jamais de mise à jour en place :
// un edge est créé ou détruit, c'est tout.
type RelationEdge struct {
	ID        string       `json:"id"`
	ActorID   string       `json:"actorId"`
	TargetID  string       `json:"targetId"`
	Kind      RelationKind `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NewRelationEdge crée un edge valide. L'identité est générée ICI, pas en DB.
func NewRelationEdge(actorID, targetID string, kind RelationKind) *RelationEdge {
	return &RelationEdge{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

// ToggleResult est l'état autoritatif renvoyé après un toggle.
// L'appelant (UI optimiste) s'en sert pour réconcilier son affichage.
type ToggleResult struct {
	Active bool `json:"newState"`
}

// RelationChangedEvent est le signal d'invalidation émis après un toggle réussi.
// La couche consommatrice (feed, notifications) décide comment rafraîchir.
type RelationChangedEvent struct {
	ActorID  string       `json:"actor_id"`
	TargetID string       `json:"target_id"`
	Kind     RelationKind `json:"kind"`
	Active   bool         `json:"active"`
	At       time.Time    `json:"at"`
}
