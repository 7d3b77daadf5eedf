package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	authmw "github.com/Skotchmaster/nk_store/internal/middleware/auth"
	"github.com/Skotchmaster/nk_store/internal/service"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.list")

	items, err := h.Svc.List(ctx, authmw.UserID(c))
	if err != nil {
		return fail(l, "list_wishlist_error", "cannot load wishlist", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.toggle")

	productID := c.Param("product_id")
	saved, err := h.Svc.Toggle(ctx, authmw.UserID(c), productID)
	if err != nil {
		return fail(l, "toggle_wishlist_error", "cannot update wishlist", err)
	}

	l.Info("toggle_wishlist_success", "product_id", productID, "saved", saved)
	return c.JSON(http.StatusOK, map[string]any{"product_id": productID, "saved": saved})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	if err := h.Svc.Remove(ctx, authmw.UserID(c), c.Param("product_id")); err != nil {
		return fail(l, "remove_wishlist_error", "cannot update wishlist", err)
	}
	return c.NoContent(http.StatusNoContent)
}
