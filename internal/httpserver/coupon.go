package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/transport"
)

type CouponHTTP struct {
	Svc *service.CouponService
}

func (h *CouponHTTP) Validate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.validate")

	cp, err := h.Svc.Validate(ctx, c.Param("code"))
	if err != nil {
		return fail(l, "validate_coupon_error", "cannot validate coupon", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"code": cp.Code, "discount": cp.Discount})
}

func (h *CouponHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_coupons_error", "cannot list coupons", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CouponHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.create")

	var req transport.CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_coupon_error", "invalid body", err)
	}

	cp, err := h.Svc.Create(ctx, req.Code, req.Discount, req.Description)
	if err != nil {
		return fail(l, "create_coupon_error", "cannot create coupon", err)
	}

	l.Info("create_coupon_success", "code", cp.Code)
	return c.JSON(http.StatusCreated, cp)
}

func (h *CouponHTTP) SetActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.set_active")

	var req transport.SetCouponActiveRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_coupon_error", "invalid body", err)
	}
	if err := h.Svc.SetActive(ctx, c.Param("code"), req.IsActive); err != nil {
		return fail(l, "update_coupon_error", "cannot update coupon", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CouponHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupon.delete")

	if err := h.Svc.Delete(ctx, c.Param("code")); err != nil {
		return fail(l, "delete_coupon_error", "cannot delete coupon", err)
	}
	return c.NoContent(http.StatusNoContent)
}
