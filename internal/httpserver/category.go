package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/transport"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

// List serves active categories to the storefront.
func (h *CategoryHTTP) List(c echo.Context) error {
	return h.list(c, true)
}

// ListAll includes hidden categories for the back office.
func (h *CategoryHTTP) ListAll(c echo.Context) error {
	return h.list(c, false)
}

func (h *CategoryHTTP) list(c echo.Context, activeOnly bool) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.List(ctx, activeOnly)
	if err != nil {
		return fail(l, "list_categories_error", "cannot list categories", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_category_error", "invalid body", err)
	}

	cat, err := h.Svc.Create(ctx, req.Name)
	if err != nil {
		return fail(l, "create_category_error", "cannot create category", err)
	}

	l.Info("create_category_success", "slug", cat.Slug)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) SetActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.set_active")

	var req transport.SetCategoryActiveRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_category_error", "invalid body", err)
	}
	if err := h.Svc.SetActive(ctx, c.Param("slug"), req.IsActive); err != nil {
		return fail(l, "update_category_error", "cannot update category", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	if err := h.Svc.Delete(ctx, c.Param("slug")); err != nil {
		return fail(l, "delete_category_error", "cannot delete category", err)
	}
	return c.NoContent(http.StatusNoContent)
}
