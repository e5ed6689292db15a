package ingredient

import (
	"errors"
	"net/http"
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/middleware"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/ocr"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
	ocr     *ocr.Client
}

func NewHandler(service *Service, ocrClient *ocr.Client) *Handler {
	return &Handler{service: service, ocr: ocrClient}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authorized"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// GET /ingredients
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ingredients, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// --------------------------------------------------
// GET /ingredients/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ing, err := h.service.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// POST /ingredients
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var ing Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &ing)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// PUT /ingredients/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var ing Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, &ing)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --------------------------------------------------
// DELETE /ingredients/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ingredient removed"})
}

// --------------------------------------------------
// POST /ingredients/:id/prices (manual price entry)
// --------------------------------------------------
func (h *Handler) RecordPrice(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Supermarket string          `json:"supermarket"`
		Price       decimal.Decimal `json:"price"`
		PriceDate   time.Time       `json:"priceDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.RecordPrice(
		c.Request.Context(),
		c.Param("id"),
		userID,
		req.Supermarket,
		req.Price,
		req.PriceDate,
		true,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// GET /supermarkets/:id/price-history/:ingredientId
// --------------------------------------------------
func (h *Handler) SupermarketHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	history, err := h.service.SupermarketHistory(
		c.Request.Context(),
		c.Param("ingredientId"),
		c.Param("id"),
		userID,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// --------------------------------------------------
// GET /ingredients/util/categories
// --------------------------------------------------
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, Categories)
}

// --------------------------------------------------
// GET /ingredients/util/low-stock?threshold=N
// --------------------------------------------------
func (h *Handler) LowStock(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	threshold := decimal.Zero
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		threshold = parsed
	}

	ingredients, err := h.service.LowStock(c.Request.Context(), userID, threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch low stock ingredients"})
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

// --------------------------------------------------
// POST /ingredients/barcode
// --------------------------------------------------
func (h *Handler) Barcode(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Barcode string `json:"barcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, existing, err := h.service.BarcodeLookup(c.Request.Context(), userID, req.Barcode)
	if err != nil {
		respondError(c, err)
		return
	}

	if existing {
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"isExisting": true,
			"ingredient": ing,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"isExisting":  false,
		"productData": ing,
	})
}

// --------------------------------------------------
// POST /ingredients/ocr (price tag image via external OCR service)
// --------------------------------------------------
func (h *Handler) OCR(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}
	defer file.Close()

	result, err := h.ocr.ExtractPriceTag(c.Request.Context(), file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "OCR processing error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"extractedText": result.ExtractedText,
		"parsedData":    result.ParsedData,
	})
}
