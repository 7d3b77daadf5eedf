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

type POSHTTP struct {
	Svc *service.BillingService
}

// Checkout settles either the lines in the body or, when none are sent, the
// staff member's saved bill.
func (h *POSHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pos.checkout")

	var req transport.POSCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "pos_checkout_error", "invalid body", err)
	}

	in := service.BillInput{
		Lines:           req.Lines,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DiscountPercent: req.DiscountPercent,
		GSTRate:         req.GSTRate,
		PaymentMode:     req.PaymentMode,
	}

	var (
		res *service.SubmitResult
		err error
	)
	if len(req.Lines) > 0 {
		res, err = h.Svc.Checkout(ctx, in)
	} else {
		res, err = h.Svc.CheckoutSession(ctx, authmw.UserID(c), in)
	}
	if err != nil {
		return fail(l, "pos_checkout_error", "cannot record sale", err)
	}

	l.Info("pos_checkout_success", "order_id", res.Order.ID, "staff_id", authmw.UserID(c))
	return c.JSON(submitStatus(res.Order), res)
}

func (h *POSHTTP) Preview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pos.preview")

	discount := util.ParseIntDefault(c.QueryParam("discount"), 0)
	gst := util.ParseIntDefault(c.QueryParam("gst"), 0)

	totals, err := h.Svc.Preview(ctx, authmw.UserID(c), int64(discount), int64(gst))
	if err != nil {
		return fail(l, "pos_preview_error", "cannot price bill", err)
	}
	return c.JSON(http.StatusOK, totals)
}
