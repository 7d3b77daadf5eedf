package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	authmw "github.com/Skotchmaster/nk_store/internal/middleware/auth"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/transport"
	"github.com/Skotchmaster/nk_store/internal/util"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func submitStatus(o *models.Order) int {
	if o.Reconciliation == models.ReconcileDone {
		return http.StatusCreated
	}
	// Accepted: the order exists but some lines could not take stock.
	return http.StatusAccepted
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "submit_order_error", "invalid body", err)
	}

	res, err := h.Svc.Checkout(ctx, authmw.User(c), service.CheckoutRequest{
		Shipping:    req.Shipping,
		AddressID:   req.AddressID,
		PaymentMode: req.PaymentMode,
		CouponCode:  req.CouponCode,
	})
	if err != nil {
		return fail(l, "submit_order_error", "cannot place order", err)
	}

	l.Info("submit_order_success", "order_id", res.Order.ID, "reconciliation", res.Order.Reconciliation)
	return c.JSON(submitStatus(res.Order), res)
}

func (h *OrderHTTP) Quote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.quote")

	totals, err := h.Svc.Quote(ctx, authmw.UserID(c), c.QueryParam("coupon"))
	if err != nil {
		return fail(l, "quote_error", "cannot price cart", err)
	}
	return c.JSON(http.StatusOK, totals)
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.my_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListForUser(ctx, authmw.UserID(c), offset, limit)
	if err != nil {
		return fail(l, "list_orders_error", "cannot list orders", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	o, err := h.Svc.Get(ctx, c.Param("id"), authmw.UserID(c), authmw.Role(c))
	if err != nil {
		return fail(l, "get_order_error", "cannot get order", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) TrackOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.track")

	tr, err := h.Svc.Track(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "track_order_error", "cannot track order", err)
	}
	return c.JSON(http.StatusOK, tr)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	res, err := h.Svc.Cancel(ctx, c.Param("id"), authmw.UserID(c), authmw.Role(c))
	if err != nil {
		return fail(l, "cancel_order_error", "cannot cancel order", err)
	}

	l.Info("cancel_order_success", "order_id", res.Order.ID)
	return c.JSON(http.StatusOK, res)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListAll(ctx, c.QueryParam("status"), offset, limit)
	if err != nil {
		return fail(l, "list_orders_error", "cannot list orders", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *OrderHTTP) ShipOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.ship")

	o, err := h.Svc.Ship(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "update_order_error", "cannot update order", err)
	}

	l.Info("ship_order_success", "order_id", o.ID)
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) DeliverOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.deliver")

	o, err := h.Svc.Deliver(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "update_order_error", "cannot update order", err)
	}

	l.Info("deliver_order_success", "order_id", o.ID)
	return c.JSON(http.StatusOK, o)
}
