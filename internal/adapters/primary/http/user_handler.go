package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// UserHandler assemble les pages profil. Le profil complet est une composition
// côté adaptateur : fiche utilisateur (reader), posts récents et animaux,
// chacun via son propre port.
type UserHandler struct {
	reader  ports.ReaderService
	posts   ports.PostService
	pets    ports.PetService
	profile ports.ProfileService
}

func NewUserHandler(reader ports.ReaderService, posts ports.PostService, pets ports.PetService, profile ports.ProfileService) *UserHandler {
	return &UserHandler{reader: reader, posts: posts, pets: pets, profile: profile}
}

func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("/:id", h.Profile)
		users.GET("/:id/posts", h.ListPosts)
		users.GET("/:id/pets", h.ListPets)
	}

	api.PUT("/profile", RequireAuth(), h.UpdateProfile)
}

// Profile : l'agrégat complet de la page profil.
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")
	viewerID := CurrentUserID(c)

	users, err := h.reader.Users(ctx, []string{userID}, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	postIDs, _, err := h.posts.ListAuthorIDs(ctx, userID, defaultPageSize, "")
	if err != nil {
		respondError(c, err)
		return
	}
	recentPosts, err := h.reader.Posts(ctx, postIDs, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	petIDs, err := h.pets.ListOwnerPetIDs(ctx, userID, defaultPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	petViews, err := h.reader.Pets(ctx, petIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        users[0],
		"recentPosts": recentPosts,
		"pets":        petViews,
	})
}

func (h *UserHandler) ListPosts(c *gin.Context) {
	ids, nextCursor, err := h.posts.ListAuthorIDs(c.Request.Context(), c.Param("id"), pageSize(c), c.Query("cursor"))
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

func (h *UserHandler) ListPets(c *gin.Context) {
	ids, err := h.pets.ListOwnerPetIDs(c.Request.Context(), c.Param("id"), pageSize(c))
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.reader.Pets(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pets": views})
}

type updateProfileRequest struct {
	FullName  *string `json:"fullName"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profile.UpdateProfile(c.Request.Context(), CurrentUserID(c), domain.ProfileUpdate{
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
