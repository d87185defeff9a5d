package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type PetHandler struct {
	pets   ports.PetService
	reader ports.ReaderService
}

func NewPetHandler(pets ports.PetService, reader ports.ReaderService) *PetHandler {
	return &PetHandler{pets: pets, reader: reader}
}

func (h *PetHandler) RegisterRoutes(api *gin.RouterGroup) {
	pets := api.Group("/pets")
	{
		pets.POST("", RequireAuth(), h.Create)
		pets.GET("/:id", h.Get)
		pets.POST("/:id/health-records", RequireAuth(), h.AddHealthRecord)
		pets.GET("/:id/health-records", h.ListHealthRecords)
	}
}

type createPetRequest struct {
	Name      string     `json:"name" binding:"required"`
	Species   string     `json:"species" binding:"required"`
	Breed     string     `json:"breed"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birthDate"`
}

func (h *PetHandler) Create(c *gin.Context) {
	var req createPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pet, err := h.pets.CreatePet(c.Request.Context(), ports.CreatePetCmd{
		OwnerID:   CurrentUserID(c),
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		Gender:    domain.PetGender(req.Gender),
		BirthDate: req.BirthDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func (h *PetHandler) Get(c *gin.Context) {
	views, err := h.reader.Pets(c.Request.Context(), []string{c.Param("id")})
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

type healthRecordRequest struct {
	Type       string    `json:"type" binding:"required"`
	Title      string    `json:"title" binding:"required"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recordedAt" binding:"required"`
}

func (h *PetHandler) AddHealthRecord(c *gin.Context) {
	var req healthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.pets.AddHealthRecord(c.Request.Context(), c.Param("id"), CurrentUserID(c),
		domain.HealthRecordType(req.Type), req.Title, req.Notes, req.RecordedAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *PetHandler) ListHealthRecords(c *gin.Context) {
	records, err := h.pets.ListHealthRecords(c.Request.Context(), c.Param("id"), pageSize(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
