package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	authmw "github.com/Skotchmaster/nk_store/internal/middleware/auth"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/transport"
	"github.com/Skotchmaster/nk_store/internal/util"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.List(ctx, c.Param("id"), offset, limit)
	if err != nil {
		return fail(l, "list_reviews_error", "cannot list reviews", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *ReviewHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list_all")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListAll(ctx, offset, limit)
	if err != nil {
		return fail(l, "list_reviews_error", "cannot list reviews", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *ReviewHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.add")

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_review_error", "invalid body", err)
	}

	rv, err := h.Svc.Add(ctx, authmw.User(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return fail(l, "add_review_error", "cannot add review", err)
	}

	l.Info("add_review_success", "review_id", rv.ID, "product_id", rv.ProductID)
	return c.JSON(http.StatusCreated, rv)
}

func (h *ReviewHTTP) Edit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.edit")

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "edit_review_error", "invalid body", err)
	}

	rv, err := h.Svc.Edit(ctx, c.Param("id"), authmw.UserID(c), req.Rating, req.Comment)
	if err != nil {
		return fail(l, "edit_review_error", "cannot edit review", err)
	}
	return c.JSON(http.StatusOK, rv)
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete")

	if err := h.Svc.Delete(ctx, c.Param("id"), authmw.UserID(c), authmw.Role(c)); err != nil {
		return fail(l, "delete_review_error", "cannot delete review", err)
	}
	return c.NoContent(http.StatusNoContent)
}
