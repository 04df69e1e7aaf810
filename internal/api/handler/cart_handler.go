package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renova/storefront/internal/api/metrics"
	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// CartHandler handles HTTP requests for the optimistic cart.
// Mutations answer from local state; backend mirroring happens in the background.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get handles GET /cart.
//
// @Summary      Current cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot(nil))
}

// AddItem handles POST /cart/items.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	notice := h.cart.Add(c.Request().Context(), domain.Product{
		ID:          req.ProductID,
		Name:        req.Name,
		Price:       req.Price,
		MaxQuantity: req.MaxQuantity,
		Image:       req.Image,
	}, qty)
	metrics.CartMutationsTotal.WithLabelValues("add").Inc()

	return c.JSON(http.StatusOK, h.snapshot(notice))
}

// UpdateItem handles PATCH /cart/items/:id.
//
// @Summary      Set the quantity of a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Product id"
// @Param        body  body      updateItemRequest  true  "New quantity; zero or less removes the line"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Router       /cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notice := h.cart.UpdateQuantity(c.Request().Context(), c.Param("id"), *req.Quantity)
	metrics.CartMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, h.snapshot(notice))
}

// RemoveItem handles DELETE /cart/items/:id.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  cartResponse
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	h.cart.Remove(c.Request().Context(), c.Param("id"))
	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, h.snapshot(nil))
}

// Refresh handles POST /cart/refresh.
//
// @Summary      Reload the cart from the backend
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /cart/refresh [post]
func (h *CartHandler) Refresh(c echo.Context) error {
	h.cart.Refresh(c.Request().Context())
	metrics.CartMutationsTotal.WithLabelValues("refresh").Inc()
	return c.JSON(http.StatusOK, h.snapshot(nil))
}

// Clear handles DELETE /cart. Local only; the backend cart is untouched.
//
// @Summary      Empty the local cart
// @Tags         cart
// @Success      204
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	h.cart.Clear()
	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) snapshot(notice *domain.StockNotice) cartResponse {
	items := h.cart.Items()
	resp := cartResponse{
		Items: items,
		Total: domain.Total(items),
	}
	if resp.Items == nil {
		resp.Items = []domain.LineItem{}
	}
	if notice != nil {
		resp.Notices = []domain.StockNotice{*notice}
	}
	return resp
}
