package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// FeedHandler lit la timeline pré-calculée puis l'hydrate : les entrées Redis
// ne portent que des ids, les compteurs et flags viennent du reader.
type FeedHandler struct {
	feed   ports.FeedService
	reader ports.ReaderService
}

func NewFeedHandler(feed ports.FeedService, reader ports.ReaderService) *FeedHandler {
	return &FeedHandler{feed: feed, reader: reader}
}

func (h *FeedHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/feed", RequireAuth(), h.Timeline)
}

func (h *FeedHandler) Timeline(c *gin.Context) {
	ctx := c.Request.Context()

	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if offset < 0 {
		offset = 0
	}

	items, err := h.feed.Timeline(ctx, domain.FeedRequest{
		UserID: CurrentUserID(c),
		Limit:  int64(pageSize(c)),
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.PostID)
	}

	views, err := h.reader.Posts(ctx, ids, CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": views, "offset": offset + int64(len(items))})
}
