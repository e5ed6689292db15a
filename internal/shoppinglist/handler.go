package shoppinglist

import (
	"errors"
	"net/http"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/core"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/middleware"

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
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
	case errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping list item not found"})
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "referenced product or ingredient not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authorized"})
	case errors.Is(err, ErrCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "shopping list is completed"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// GET /shopping-lists
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	lists, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shopping lists"})
		return
	}

	c.JSON(http.StatusOK, lists)
}

// --------------------------------------------------
// GET /shopping-lists/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	l, err := h.service.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// --------------------------------------------------
// GET /shopping-lists/status/active (null body when nothing is active)
// --------------------------------------------------
func (h *Handler) Active(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	l, err := h.service.Active(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch active shopping list"})
		return
	}

	c.JSON(http.StatusOK, l)
}

// --------------------------------------------------
// POST /shopping-lists
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var l ShoppingList
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &l)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// PUT /shopping-lists/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var patch ListPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --------------------------------------------------
// DELETE /shopping-lists/:id
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

	c.JSON(http.StatusOK, gin.H{"message": "shopping list removed"})
}

// --------------------------------------------------
// POST /shopping-lists/:id/items
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

	l, err := h.service.AddItem(c.Request.Context(), c.Param("id"), userID, item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// --------------------------------------------------
// PUT /shopping-lists/:id/items/:itemId
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

	l, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// --------------------------------------------------
// DELETE /shopping-lists/:id/items/:itemId
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	l, err := h.service.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

type addRefRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes"`
}

// --------------------------------------------------
// POST /shopping-lists/:id/add-product/:productId
// --------------------------------------------------
func (h *Handler) AddProduct(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	l, err := h.service.AddProduct(c.Request.Context(), c.Param("id"), c.Param("productId"), userID, req.Quantity, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// --------------------------------------------------
// POST /shopping-lists/:id/add-ingredient/:ingredientId
// --------------------------------------------------
func (h *Handler) AddIngredient(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	l, err := h.service.AddIngredient(c.Request.Context(), c.Param("id"), c.Param("ingredientId"), userID, req.Quantity, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// --------------------------------------------------
// POST /shopping-lists/:id/complete
// --------------------------------------------------
func (h *Handler) Complete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	l, err := h.service.Complete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}
