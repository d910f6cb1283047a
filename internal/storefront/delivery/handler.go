package delivery

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/storefront"
	"github.com/dwikikusuma/storefront/internal/view"
)

type Handler struct {
	ctrl *storefront.Controller
	log  *slog.Logger
}

func NewHandler(ctrl *storefront.Controller, log *slog.Logger) *Handler {
	return &Handler{ctrl: ctrl, log: log}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/catalog", h.Catalog)
		api.PUT("/catalog/query", h.SetQuery)
		api.PUT("/catalog/category", h.SetCategory)
		api.DELETE("/catalog/criteria", h.ResetCriteria)
		api.GET("/categories", h.Categories)
		api.GET("/products/:id/preview", h.Preview)

		api.GET("/cart", h.Cart)
		api.DELETE("/cart", h.ClearCart)
		api.POST("/cart/items", h.AddItem)
		api.PUT("/cart/items/:id", h.SetQuantity)
		api.POST("/cart/items/:id/increase", h.Increase)
		api.POST("/cart/items/:id/decrease", h.Decrease)
		api.DELETE("/cart/items/:id", h.RemoveItem)

		api.POST("/checkout", h.Checkout)
	}
}

type addItemRequest struct {
	ProductID int  `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// Catalog returns the page for the stored criteria. ?q= and ?category=
// apply to this request only.
func (h *Handler) Catalog(c *gin.Context) {
	var s storefront.Snapshot
	_, hasQ := c.GetQuery("q")
	_, hasCat := c.GetQuery("category")
	if hasQ || hasCat {
		s = h.ctrl.SnapshotWith(catalogapp.Criteria{Query: c.Query("q"), Category: c.Query("category")})
	} else {
		s = h.ctrl.Snapshot()
	}
	h.catalogResponse(c, s)
}

func (h *Handler) SetQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	h.catalogResponse(c, h.ctrl.Search(req.Query))
}

func (h *Handler) SetCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	h.catalogResponse(c, h.ctrl.SelectCategory(req.Category))
}

func (h *Handler) ResetCriteria(c *gin.Context) {
	h.catalogResponse(c, h.ctrl.Filter(catalogapp.Criteria{}))
}

func (h *Handler) catalogResponse(c *gin.Context, s storefront.Snapshot) {
	msg := "Products retrieved successfully"
	if s.Catalog.State == view.CatalogEmpty {
		msg = view.EmptyCatalogNotice
	}
	SuccessResponse(c, http.StatusOK, msg, s)
}

func (h *Handler) Categories(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", h.ctrl.Categories())
}

func (h *Handler) Preview(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	pv, err := h.ctrl.Preview(id)
	if err != nil {
		h.log.Warn("preview failed", slog.Int("product_id", id), slog.Any("err", err))
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", gin.H{
		"product":     view.Card(pv.Product),
		"contact_url": pv.ContactURL,
	})
}

func (h *Handler) Cart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", h.ctrl.Snapshot().Cart)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	s, err := h.ctrl.Add(c.Request.Context(), req.ProductID, qty)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Item added to cart", s.Cart)
}

func (h *Handler) SetQuantity(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	s, err := h.ctrl.SetQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Quantity updated", s.Cart)
}

func (h *Handler) Increase(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	s, err := h.ctrl.Increase(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Quantity updated", s.Cart)
}

func (h *Handler) Decrease(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	SuccessResponse(c, http.StatusOK, "Quantity updated", h.ctrl.Decrease(c.Request.Context(), id).Cart)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	SuccessResponse(c, http.StatusOK, "Item removed", h.ctrl.Remove(c.Request.Context(), id).Cart)
}

func (h *Handler) ClearCart(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Cart cleared", h.ctrl.Clear(c.Request.Context()).Cart)
}

func (h *Handler) Checkout(c *gin.Context) {
	receipt, err := h.ctrl.Checkout(c.Request.Context())
	if err != nil {
		h.log.Info("checkout rejected", slog.Any("err", err))
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Order ready", gin.H{
		"reference": receipt.Order.Reference,
		"summary":   receipt.Order.Summary(),
		"total":     receipt.Order.Quote.Total.String(),
		"handoff":   receipt.Handoff,
	})
}

func (h *Handler) productID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warn("invalid product id", slog.String("id", idStr))
		ErrorResponse(c, fmt.Errorf("%w: invalid product id %q", errBadRequest, idStr))
		return 0, false
	}
	return id, true
}
