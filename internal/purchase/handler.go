package purchase

import (
	"errors"
	"net/http"
	"strconv"

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
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase not found"})
	case errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase item not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authorized"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// GET /purchases
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	purchases, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch purchases"})
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// --------------------------------------------------
// GET /purchases/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.service.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// --------------------------------------------------
// POST /purchases
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var p Purchase
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// PUT /purchases/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var p Purchase
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, &p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --------------------------------------------------
// DELETE /purchases/:id (reverses stock adjustments)
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

	c.JSON(http.StatusOK, gin.H{"message": "purchase removed"})
}

// --------------------------------------------------
// POST /purchases/:id/items
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

	p, err := h.service.AddItem(c.Request.Context(), c.Param("id"), userID, item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// --------------------------------------------------
// PUT /purchases/:id/items/:itemId
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

	p, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// --------------------------------------------------
// DELETE /purchases/:id/items/:itemId
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.service.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// --------------------------------------------------
// GET /purchases/report/monthly?year=&month=
// --------------------------------------------------
func (h *Handler) MonthlyReport(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	report, err := h.service.Monthly(c.Request.Context(), userID, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build monthly report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// --------------------------------------------------
// GET /purchases/:id/receipt
// --------------------------------------------------
func (h *Handler) Receipt(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	receipt, err := h.service.ItemizedReceipt(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// --------------------------------------------------
// POST /purchases/receipt (receipt image via external OCR service)
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

	result, err := h.ocr.ExtractReceipt(c.Request.Context(), file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "OCR processing error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"extractedText": result.ExtractedText,
		"receiptData":   result.ParsedData,
	})
}
