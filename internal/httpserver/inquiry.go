package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/transport"
	"github.com/Skotchmaster/nk_store/internal/util"
)

type InquiryHTTP struct {
	Svc *service.InquiryService
}

func (h *InquiryHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inquiry.submit")

	var req transport.InquiryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "submit_inquiry_error", "invalid body", err)
	}

	iq, err := h.Svc.Submit(ctx, service.InquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return fail(l, "submit_inquiry_error", "cannot send message", err)
	}

	l.Info("submit_inquiry_success", "inquiry_id", iq.ID)
	return c.JSON(http.StatusCreated, map[string]any{"id": iq.ID})
}

func (h *InquiryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inquiry.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	res, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		return fail(l, "list_inquiries_error", "cannot list messages", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *InquiryHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inquiry.mark_read")

	if err := h.Svc.MarkRead(ctx, c.Param("id")); err != nil {
		return fail(l, "mark_inquiry_error", "cannot update message", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InquiryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inquiry.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_inquiry_error", "cannot delete message", err)
	}
	return c.NoContent(http.StatusNoContent)
}
