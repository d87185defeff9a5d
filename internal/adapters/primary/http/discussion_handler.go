package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type DiscussionHandler struct {
	discussions ports.DiscussionService
	reader      ports.ReaderService
}

func NewDiscussionHandler(discussions ports.DiscussionService, reader ports.ReaderService) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions, reader: reader}
}

func (h *DiscussionHandler) RegisterRoutes(api *gin.RouterGroup) {
	discussions := api.Group("/discussions")
	{
		discussions.POST("", RequireAuth(), h.Create)
		discussions.GET("", h.List)
		discussions.GET("/:id", h.Get)
		discussions.POST("/:id/replies", RequireAuth(), h.Reply)
		discussions.GET("/:id/replies", h.ListReplies)
	}
}

// Le contenu est facultatif : un titre seul suffit à ouvrir une discussion.
type createDiscussionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

func (h *DiscussionHandler) Create(c *gin.Context) {
	var req createDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	discussion, err := h.discussions.CreateDiscussion(c.Request.Context(), CurrentUserID(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, discussion)
}

func (h *DiscussionHandler) List(c *gin.Context) {
	ids, nextCursor, err := h.discussions.ListLatestIDs(c.Request.Context(), pageSize(c), c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.reader.Discussions(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"discussions": views, "nextCursor": nextCursor})
}

func (h *DiscussionHandler) Get(c *gin.Context) {
	views, err := h.reader.Discussions(c.Request.Context(), []string{c.Param("id")})
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

type replyRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *DiscussionHandler) Reply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.discussions.Reply(c.Request.Context(), c.Param("id"), CurrentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}

func (h *DiscussionHandler) ListReplies(c *gin.Context) {
	replies, err := h.discussions.ListReplies(c.Request.Context(), c.Param("id"), pageSize(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}
