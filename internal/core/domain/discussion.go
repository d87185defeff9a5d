package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type DiscussionStatus string

const (
	DiscussionOpen     DiscussionStatus = "OPEN"
	DiscussionResolved DiscussionStatus = "RESOLVED"
	DiscussionClosed   DiscussionStatus = "CLOSED"
)

type Discussion struct {
	ID        string           `json:"id"`
	AuthorID  string           `json:"authorId"`
	Title     string           `json:"title"`
	Content   string           `json:"content,omitempty"`
	Status    DiscussionStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

const (
	minDiscussionTitleLength = 5
	maxDiscussionTitleLength = 150
)

// NewDiscussion : le titre est obligatoire (5..150), le contenu optionnel.
func NewDiscussion(authorID, title, content string) (*Discussion, error) {
	title = strings.TrimSpace(title)
	if len(title) < minDiscussionTitleLength || len(title) > maxDiscussionTitleLength {
		return nil, ErrInvalidInput
	}
	if len(content) > maxPostContentLength {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	return &Discussion{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Title:     title,
		Content:   strings.TrimSpace(content),
		Status:    DiscussionOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DiscussionReply : réponse plate (pas de thread) à une discussion.
type DiscussionReply struct {
	ID           string    `json:"id"`
	DiscussionID string    `json:"discussionId"`
	AuthorID     string    `json:"authorId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewDiscussionReply(discussionID, authorID, content string) (*DiscussionReply, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxCommentContentLength {
		return nil, ErrInvalidInput
	}
	return &DiscussionReply{
		ID:           uuid.NewString(),
		DiscussionID: discussionID,
		AuthorID:     authorID,
		Content:      content,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
