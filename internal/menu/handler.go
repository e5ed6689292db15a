package menu

import (
	"errors"
	"net/http"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/middleware"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/ocr"

	"github.com/gin-gonic/gin"
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
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
	case errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authorized"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// GET /menus
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	menus, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menus"})
		return
	}

	c.JSON(http.StatusOK, menus)
}

// --------------------------------------------------
// GET /menus/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// POST /menus
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var m Menu
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &m)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// PUT /menus/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var m Menu
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, &m)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --------------------------------------------------
// DELETE /menus/:id
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

	c.JSON(http.StatusOK, gin.H{"message": "menu removed"})
}

// --------------------------------------------------
// POST /menus/:id/items
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var item Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.AddItem(c.Request.Context(), c.Param("id"), userID, item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// PUT /menus/:id/items/:itemId
// --------------------------------------------------
func (h *Handler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var patch ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// DELETE /menus/:id/items/:itemId
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// GET /menus/:id/analysis
// --------------------------------------------------
func (h *Handler) Analyze(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// --------------------------------------------------
// GET /menus/analysis/profitability
// --------------------------------------------------
func (h *Handler) Profitability(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := h.service.Profitability(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build profitability report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// --------------------------------------------------
// POST /menus/ocr (menu image via external OCR service)
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

	result, err := h.ocr.ExtractMenu(c.Request.Context(), file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "OCR processing error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"extractedText": result.ExtractedText,
		"parsedItems":   result.ParsedItems,
	})
}
