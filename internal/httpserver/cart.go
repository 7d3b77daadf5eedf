package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	authmw "github.com/Skotchmaster/nk_store/internal/middleware/auth"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/transport"
)

// CartHTTP serves a cart keyed by the signed-in user. The same handler type
// backs the storefront cart and the staff POS bill.
type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	view, err := h.Svc.GetCart(ctx, authmw.UserID(c))
	if err != nil {
		return fail(l, "get_cart_error", "cannot load cart", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_line")

	var req transport.AddCartLineRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart_error", "invalid body", err)
	}

	view, err := h.Svc.AddLine(ctx, authmw.UserID(c), req.ProductID, req.Unit)
	if err != nil {
		return fail(l, "add_to_cart_error", "cannot add to cart", err)
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID, "unit", req.Unit)
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_quantity_error", "invalid body", err)
	}

	view, err := h.Svc.SetQuantity(ctx, authmw.UserID(c), c.Param("key"), req.Quantity)
	if err != nil {
		return fail(l, "set_quantity_error", "cannot update cart", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) RemoveLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_line")

	view, err := h.Svc.RemoveLine(ctx, authmw.UserID(c), c.Param("key"))
	if err != nil {
		return fail(l, "remove_from_cart_error", "cannot update cart", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Svc.Clear(ctx, authmw.UserID(c)); err != nil {
		return fail(l, "clear_cart_error", "cannot clear cart", err)
	}
	return c.NoContent(http.StatusNoContent)
}
