package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

const defaultPageSize = 20

// PostHandler couvre la création/lecture des publications, les commentaires
// et le fil communautaire. Les lectures de listes suivent toutes le même
// schéma en deux temps : ids paginés d'abord, hydratation via le reader ensuite.
type PostHandler struct {
	posts  ports.PostService
	reader ports.ReaderService
}

func NewPostHandler(posts ports.PostService, reader ports.ReaderService) *PostHandler {
	return &PostHandler{posts: posts, reader: reader}
}

func (h *PostHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/community", h.Community)

	posts := api.Group("/posts")
	{
		posts.POST("", RequireAuth(), h.Create)
		posts.GET("/:id", h.Get)
		posts.DELETE("/:id", RequireAuth(), h.Delete)
		posts.POST("/:id/comments", RequireAuth(), h.CreateComment)
		posts.GET("/:id/comments", h.ListComments)
	}
}

type createPostRequest struct {
	Content    string   `json:"content" binding:"required"`
	Visibility string   `json:"visibility"`
	MediaURLs  []string `json:"mediaUrls"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visibility := domain.Visibility(req.Visibility)
	if req.Visibility == "" {
		visibility = domain.VisibilityPublic
	}

	post, err := h.posts.CreatePost(c.Request.Context(), ports.CreatePostCmd{
		AuthorID:   CurrentUserID(c),
		Content:    req.Content,
		Visibility: visibility,
		MediaURLs:  req.MediaURLs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	// On passe par le reader plutôt que par le service : la fiche d'un post
	// embarque ses compteurs et, pour un lecteur connecté, ses flags viewer.
	views, err := h.reader.Posts(c.Request.Context(), []string{c.Param("id")}, CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(views) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, views[0])
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), c.Param("id"), CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parentId"`
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.posts.CreateComment(c.Request.Context(), c.Param("id"), CurrentUserID(c), req.Content, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	comments, err := h.posts.ListComments(c.Request.Context(), c.Param("id"), pageSize(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Community : les derniers posts publics, pagination keyset. Le curseur est
// opaque pour le client, il le renvoie tel quel pour obtenir la page suivante.
func (h *PostHandler) Community(c *gin.Context) {
	ids, nextCursor, err := h.posts.ListCommunityIDs(c.Request.Context(), pageSize(c), c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.reader.Posts(c.Request.Context(), ids, CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": views, "nextCursor": nextCursor})
}

// pageSize borne la taille de page demandée au maximum que le reader accepte.
func pageSize(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 || limit > 20 {
		return defaultPageSize
	}
	return limit
}
