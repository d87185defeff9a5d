package domain

import "time"

type ContentType string

const (
	ContentPost  ContentType = "POST"
	ContentImage ContentType = "IMAGE"
	ContentVideo ContentType = "VIDEO"
)

// FeedItem est l'entrée brute d'une timeline (Redis Sorted Set).
// L'hydratation (contenu, compteurs, flags viewer) se fait au moment de la lecture.
type FeedItem struct {
	PostID    string      `json:"postId"`
	AuthorID  string      `json:"authorId"`
	Type      ContentType `json:"type"`
	CreatedAt time.Time   `json:"createdAt"`
}

type FeedRequest struct {
	UserID string
	Limit  int64
	Offset int64
}
