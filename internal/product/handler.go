package product

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// --------------------------------------------------
// GET /supermarket-products (filtered, paginated)
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		SupermarketID: c.Query("supermarket"),
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		OnSale:        c.Query("onSale") == "true",
		SortBy:        c.Query("sortBy"),
		SortOrder:     c.Query("sortOrder"),
	}
	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.Limit, _ = strconv.Atoi(c.Query("limit"))

	if raw := c.Query("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		f.MinPrice = &min
	}
	if raw := c.Query("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		f.MaxPrice = &max
	}

	products, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"page":       f.Page,
		"limit":      f.Limit,
		"totalPages": int(math.Ceil(float64(total) / float64(f.Limit))),
		"totalCount": total,
	})
}

// --------------------------------------------------
// GET /supermarket-products/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// --------------------------------------------------
// GET /supermarket-products/search/:query
// --------------------------------------------------
func (h *Handler) Search(c *gin.Context) {
	products, err := h.service.Search(c.Request.Context(), c.Param("query"), c.Query("supermarket"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// --------------------------------------------------
// GET /supermarket-products/compare/:productName
// --------------------------------------------------
func (h *Handler) Compare(c *gin.Context) {
	name := c.Param("productName")

	products, err := h.service.Compare(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compare products"})
		return
	}

	// group by supermarket, cheapest store first within each group
	type group struct {
		SupermarketID string     `json:"supermarket"`
		Products      []*Product `json:"products"`
	}
	indexOf := make(map[string]int)
	var groups []*group
	for _, p := range products {
		i, ok := indexOf[p.SupermarketID]
		if !ok {
			i = len(groups)
			indexOf[p.SupermarketID] = i
			groups = append(groups, &group{SupermarketID: p.SupermarketID})
		}
		groups[i].Products = append(groups[i].Products, p)
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   name,
		"results": groups,
	})
}

// --------------------------------------------------
// POST /supermarket-products
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var p Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// PUT /supermarket-products/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var p Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), &p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --------------------------------------------------
// DELETE /supermarket-products/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product removed"})
}
