package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type ShopHandler struct {
	shop ports.ShopService
}

func NewShopHandler(shop ports.ShopService) *ShopHandler {
	return &ShopHandler{shop: shop}
}

func (h *ShopHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/shop/products", h.ListProducts)
}

func (h *ShopHandler) ListProducts(c *gin.Context) {
	products, err := h.shop.ListProducts(c.Request.Context(), domain.ProductFilter{
		Category:        c.Query("category"),
		OnlyPopular:     c.Query("popular") == "true",
		OnlyRecommended: c.Query("recommended") == "true",
		Limit:           pageSize(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
