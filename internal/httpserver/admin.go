package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/feed"
	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/report"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/util"
)

type AdminHTTP struct {
	Reports   *service.ReportService
	Inventory *service.Reconciler
	Feed      *feed.Hub
}

// Report streams a named report as CSV (default) or XLSX.
func (h *AdminHTTP) Report(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.report")

	format := c.QueryParam("format")
	if format == "" {
		format = report.FormatCSV
	}
	if format != report.FormatCSV && format != report.FormatXLSX {
		return badRequest(l, "report_error", "format must be csv or xlsx", nil)
	}

	t, err := h.Reports.Build(ctx, c.Param("kind"))
	if err != nil {
		return fail(l, "report_error", "cannot build report", err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, report.ContentType(format))
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename(t, format, time.Now())))
	res.WriteHeader(http.StatusOK)
	if err := report.Write(res, t, format); err != nil {
		l.Error("report_error", "status", 500, "reason", "cannot write report", "error", err)
		return nil
	}

	l.Info("report_success", "report", t.Name, "rows", len(t.Rows), "format", format)
	return nil
}

func (h *AdminHTTP) FailedMovements(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.failed_movements")

	_, limit := util.Calculate(1, util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))
	items, err := h.Inventory.FailedMovements(ctx, limit)
	if err != nil {
		return fail(l, "list_movements_error", "cannot list stock movements", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dashboard")

	st, err := h.Reports.Dashboard(ctx, time.Now())
	if err != nil {
		return fail(l, "dashboard_error", "cannot load dashboard", err)
	}
	return c.JSON(http.StatusOK, st)
}

// OrderFeed upgrades to a websocket that receives order events.
func (h *AdminHTTP) OrderFeed(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "admin.order_feed")

	if err := h.Feed.ServeWS(c.Response(), c.Request()); err != nil {
		l.Warn("order_feed_error", "status", 400, "reason", "websocket upgrade failed", "error", err)
		return nil
	}
	return nil
}
