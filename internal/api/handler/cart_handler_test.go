package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/renova/storefront/internal/core/domain"
)

func decodeCart(t *testing.T, body []byte) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	return resp
}

func TestCartHandler_GetEmpty(t *testing.T) {
	h := NewCartHandler(&stubCart{})
	c, rec := newContext(http.MethodGet, "/cart", "")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"items\":[],\"total\":0}\n" {
		t.Errorf("unexpected body %q", got)
	}
}

func TestCartHandler_TotalMatchesReturnedItems(t *testing.T) {
	cart := &stubCart{items: []domain.LineItem{{ProductID: "p1", Price: 100, Quantity: 1, MaxQuantity: 2}}}
	cart.afterItems = func() {
		cart.items = append(cart.items, domain.LineItem{ProductID: "p2", Price: 50, Quantity: 1, MaxQuantity: 1})
	}
	h := NewCartHandler(cart)
	c, rec := newContext(http.MethodGet, "/cart", "")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 || resp.Total != 100 {
		t.Errorf("total must be computed from the returned items, got %+v", resp)
	}
}

func TestCartHandler_AddItemDefaultsToOne(t *testing.T) {
	cart := &stubCart{}
	h := NewCartHandler(cart)
	c, rec := newContext(http.MethodPost, "/cart/items", `{"id":"p1","name":"Phone","price":100,"maxQuantity":2}`)

	if err := h.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(cart.addedQty) != 1 || cart.addedQty[0] != 1 {
		t.Errorf("expected quantity 1, got %v", cart.addedQty)
	}
	if cart.added[0].MaxQuantity != 2 || cart.added[0].Price != 100 {
		t.Errorf("product not forwarded: %+v", cart.added[0])
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if resp.Total != 100 || len(resp.Items) != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestCartHandler_AddItemReturnsNotice(t *testing.T) {
	cart := &stubCart{notice: &domain.StockNotice{ProductID: "p1", Requested: 3, Available: 2, Message: "only 2"}}
	h := NewCartHandler(cart)
	c, rec := newContext(http.MethodPost, "/cart/items", `{"id":"p1","price":10,"maxQuantity":2,"quantity":3}`)

	if err := h.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Notices) != 1 || resp.Notices[0].Available != 2 {
		t.Errorf("expected notice in response, got %+v", resp.Notices)
	}
	if cart.addedQty[0] != 3 {
		t.Errorf("expected quantity 3 forwarded, got %d", cart.addedQty[0])
	}
}

func TestCartHandler_AddItemRequiresID(t *testing.T) {
	h := NewCartHandler(&stubCart{})
	c, _ := newContext(http.MethodPost, "/cart/items", `{"price":10}`)

	var he *echo.HTTPError
	if err := h.AddItem(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	cart := &stubCart{}
	h := NewCartHandler(cart)
	c, _ := newContext(http.MethodPatch, "/cart/items/p1", `{"quantity":0}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpdateItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if qty, ok := cart.updated["p1"]; !ok || qty != 0 {
		t.Errorf("expected p1 set to 0, got %v", cart.updated)
	}
}

func TestCartHandler_UpdateItemRequiresQuantity(t *testing.T) {
	h := NewCartHandler(&stubCart{})
	c, _ := newContext(http.MethodPatch, "/cart/items/p1", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	var he *echo.HTTPError
	if err := h.UpdateItem(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestCartHandler_RemoveRefreshClear(t *testing.T) {
	cart := &stubCart{items: []domain.LineItem{{ProductID: "p1", Price: 1, Quantity: 1}}}
	h := NewCartHandler(cart)

	c, _ := newContext(http.MethodDelete, "/cart/items/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.RemoveItem(c); err != nil {
		t.Fatalf("remove: %v", err)
	}

	c, _ = newContext(http.MethodPost, "/cart/refresh", "")
	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	c, rec := newContext(http.MethodDelete, "/cart", "")
	if err := h.Clear(c); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if len(cart.removed) != 1 || cart.removed[0] != "p1" {
		t.Errorf("expected p1 removed, got %v", cart.removed)
	}
	if cart.refresh != 1 || !cart.cleared || rec.Code != http.StatusNoContent {
		t.Errorf("refresh=%d cleared=%v code=%d", cart.refresh, cart.cleared, rec.Code)
	}
}
