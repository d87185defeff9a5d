package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "PUBLIC"
	VisibilityFollowers Visibility = "FOLLOWERS"
	VisibilityPrivate   Visibility = "PRIVATE"
)

type MediaType string

const (
	MediaNone  MediaType = "NONE"
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

const maxPostContentLength = 10000

var validVisibilities = map[Visibility]bool{
	VisibilityPublic:    true,
	VisibilityFollowers: true,
	VisibilityPrivate:   true,
}

type Post struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"authorId"`
	Content    string     `json:"content"`
	Mood       string     `json:"mood,omitempty"`
	Location   string     `json:"location,omitempty"`
	Visibility Visibility `json:"visibility"`
	MediaURLs  []string   `json:"mediaUrls"`
	MediaType  MediaType  `json:"mediaType"`
	IsPinned   bool       `json:"isPinned"`
	IsArchived bool       `json:"isArchived"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewPost valide les invariants et construit le post.
// Les URLs de médias arrivent déjà uploadées (service de stockage externe),
// on ne fait que les référencer.
func NewPost(authorID, content string, visibility Visibility, mediaURLs []string) (*Post, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxPostContentLength {
		return nil, ErrInvalidInput
	}
	if visibility == "" {
		visibility = VisibilityPublic
	}
	if !validVisibilities[visibility] {
		return nil, ErrInvalidInput
	}

	mediaType := MediaNone
	if len(mediaURLs) > 0 {
		mediaType = MediaImage
	}

	now := time.Now().UTC()
	return &Post{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		Content:    content,
		Visibility: visibility,
		MediaURLs:  mediaURLs,
		MediaType:  mediaType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	ParentID  string    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const maxCommentContentLength = 2000

func NewComment(postID, authorID, content, parentID string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxCommentContentLength {
		return nil, ErrInvalidInput
	}
	now := time.Now().UTC()
	return &Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
