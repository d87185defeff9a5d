package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
)

type stubDiscussionService struct {
	lastAuthor  string
	lastTitle   string
	lastContent string
}

func (s *stubDiscussionService) CreateDiscussion(ctx context.Context, authorID, title, content string) (*domain.Discussion, error) {
	s.lastAuthor, s.lastTitle, s.lastContent = authorID, title, content
	return domain.NewDiscussion(authorID, title, content)
}

func (s *stubDiscussionService) GetDiscussion(ctx context.Context, id string) (*domain.Discussion, error) {
	return nil, domain.ErrNotFound
}

func (s *stubDiscussionService) ListLatestIDs(ctx context.Context, limit int, cursor string) ([]string, string, error) {
	return nil, "", nil
}

func (s *stubDiscussionService) Reply(ctx context.Context, discussionID, actorID, content string) (*domain.DiscussionReply, error) {
	return domain.NewDiscussionReply(discussionID, actorID, content)
}

func (s *stubDiscussionService) ListReplies(ctx context.Context, discussionID string, limit int) ([]*domain.DiscussionReply, error) {
	return nil, nil
}

type stubReaderService struct{}

func (stubReaderService) Posts(ctx context.Context, ids []string, viewerID string) ([]domain.PostView, error) {
	return nil, nil
}
func (stubReaderService) Users(ctx context.Context, ids []string, viewerID string) ([]domain.UserView, error) {
	return nil, nil
}
func (stubReaderService) Pets(ctx context.Context, ids []string) ([]domain.PetView, error) {
	return nil, nil
}
func (stubReaderService) Discussions(ctx context.Context, ids []string) ([]domain.DiscussionView, error) {
	return nil, nil
}

func postJSON(router *gin.Engine, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Un titre seul suffit : le contenu est facultatif à la création.
func TestCreateDiscussion_TitleOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubDiscussionService{}
	router := NewRouter("local", stubVerifier{}, NewDiscussionHandler(svc, stubReaderService{}))

	rec := postJSON(router, "/api/v1/discussions", "user:alice", `{"title":"mon chat dort beaucoup"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "alice", svc.lastAuthor)
	assert.Equal(t, "mon chat dort beaucoup", svc.lastTitle)
	assert.Empty(t, svc.lastContent)
}

func TestCreateDiscussion_TitleStillRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter("local", stubVerifier{}, NewDiscussionHandler(&stubDiscussionService{}, stubReaderService{}))

	rec := postJSON(router, "/api/v1/discussions", "user:alice", `{"content":"sans titre"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Une réponse vide, elle, reste refusée au binding.
func TestReplyRequiresContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter("local", stubVerifier{}, NewDiscussionHandler(&stubDiscussionService{}, stubReaderService{}))

	rec := postJSON(router, "/api/v1/discussions/d1/replies", "user:alice", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
