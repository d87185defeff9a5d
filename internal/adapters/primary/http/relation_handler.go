package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// RelationHandler expose les trois mutations toggle. Tous les endpoints
// partagent le même contrat de sortie : {"success":true,"newState":bool}.
type RelationHandler struct {
	relations ports.RelationService
}

func NewRelationHandler(relations ports.RelationService) *RelationHandler {
	return &RelationHandler{relations: relations}
}

func (h *RelationHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/users/:id/follow", RequireAuth(), h.toggle(domain.KindFollow))
	api.POST("/posts/:id/like", RequireAuth(), h.toggle(domain.KindLikePost))
	api.POST("/posts/:id/save", RequireAuth(), h.toggle(domain.KindSave))
	api.POST("/comments/:id/like", RequireAuth(), h.toggle(domain.KindLikeComment))
}

func (h *RelationHandler) toggle(kind domain.RelationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.relations.Toggle(c.Request.Context(), CurrentUserID(c), c.Param("id"), kind)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "newState": result.Active})
	}
}
