package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renova/storefront/internal/api/metrics"
	"github.com/renova/storefront/internal/core/ports"
)

// CheckoutHandler places orders and serves their documents.
type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout handles POST /checkout.
//
// @Summary      Place an order from the current cart
// @Tags         orders
// @Produce      json
// @Success      201  {object}  domain.Receipt
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	receipt, err := h.checkout.Checkout(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.OrdersPlacedTotal.Inc()
	return c.JSON(http.StatusCreated, receipt)
}

// Ticket handles GET /orders/:id/ticket.
//
// @Summary      Download the order ticket
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "Order id"
// @Success      200  {file}    binary
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id}/ticket [get]
func (h *CheckoutHandler) Ticket(c echo.Context) error {
	t, err := h.checkout.Ticket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", t.TicketFileName()))
	return c.Blob(http.StatusOK, t.ContentType, t.Body)
}

// AdminOrders handles GET /admin/orders. The backend payload is relayed as is.
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/orders [get]
func (h *CheckoutHandler) AdminOrders(c echo.Context) error {
	raw, err := h.checkout.AdminOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}
