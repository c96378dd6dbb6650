package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"adeybloom-backend/internal/cache"
	"adeybloom-backend/internal/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type ProductHandler struct {
	repo  *repository.ProductRepository
	cache *cache.Cache
}

func NewProductHandler(repo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{
		repo:  repo,
		cache: cache.Get(),
	}
}

// Root responde el probe de vida del servicio.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to AdeyBloom AI Services API"})
}

// ListProducts lista productos activos con paginación y filtros (con caché).
func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	if limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be >= 1"})
		return
	}
	limit = clampLimit(limit)

	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if skip < 0 {
		skip = 0
	}

	q := c.Query("q")
	category := c.Query("category")

	cacheKey := listCacheKey(limit, skip, q, category)
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	items, err := h.repo.List(c.Request.Context(), limit, skip, buildListFilter(q, category))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	h.cache.Set(cacheKey, items, 2*time.Minute)
	c.JSON(http.StatusOK, items)
}

// GetProduct devuelve el detalle de un producto por ID (con caché).
// Un id malformado o inexistente responde 404.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	cacheKey := fmt.Sprintf("product:%s", productID)

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	detail, err := h.repo.FindByID(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching product"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	h.cache.Set(cacheKey, detail, 5*time.Minute)
	c.JSON(http.StatusOK, detail)
}

// DBStatusResponse es la respuesta del probe de base de datos.
type DBStatusResponse struct {
	Connected    bool   `json:"connected"`
	ProductCount *int64 `json:"product_count"`
}

// DBStatus reporta la conectividad del store y el conteo de productos.
// Un fallo en el conteo degrada a null, no a error.
func (h *ProductHandler) DBStatus(c *gin.Context) {
	connected := h.repo.Connected()

	var count *int64
	if connected {
		if n, err := h.repo.Count(c.Request.Context()); err == nil {
			count = &n
		}
	}

	c.JSON(http.StatusOK, DBStatusResponse{
		Connected:    connected,
		ProductCount: count,
	})
}

// listCacheKey arma la clave de caché del listado. Los filtros van
// entre comillas escapadas para que sus valores no se confundan con
// los delimitadores de la clave.
func listCacheKey(limit, skip int64, q, category string) string {
	return fmt.Sprintf("products:list:l%d_s%d_q:%q_cat:%q", limit, skip, q, category)
}

// clampLimit limita el tamaño de página al máximo permitido.
func clampLimit(limit int64) int64 {
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// buildListFilter construye el filtro de MongoDB para el listado.
// Solo se listan productos activos; `q` busca por substring en `name`
// sin distinguir mayúsculas.
func buildListFilter(q, category string) bson.M {
	filter := bson.M{"active": true}

	if q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}
	if category != "" {
		filter["category"] = category
	}

	return filter
}
