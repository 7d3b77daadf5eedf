package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/logging"
	authmw "github.com/Skotchmaster/nk_store/internal/middleware/auth"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/service"
	"github.com/Skotchmaster/nk_store/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"user": authmw.User(c),
		"role": authmw.Role(c),
	})
}

func (h *UserHTTP) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.settings")

	var req transport.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_settings_error", "invalid body", err)
	}
	if err := h.Svc.SetOrderUpdates(ctx, authmw.UserID(c), req.OrderUpdates); err != nil {
		return fail(l, "update_settings_error", "cannot save settings", err)
	}

	l.Info("update_settings_success", "order_updates", req.OrderUpdates)
	return c.JSON(http.StatusOK, req)
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.profile")

	var req transport.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_profile_error", "invalid body", err)
	}
	u, err := h.Svc.UpdateProfile(ctx, authmw.UserID(c), req)
	if err != nil {
		return fail(l, "update_profile_error", "cannot save profile", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.add_address")

	var req models.Address
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_address_error", "invalid body", err)
	}
	u, err := h.Svc.AddAddress(ctx, authmw.UserID(c), req)
	if err != nil {
		return fail(l, "add_address_error", "cannot save address", err)
	}
	return c.JSON(http.StatusCreated, u.Addresses)
}

func (h *UserHTTP) RemoveAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.remove_address")

	u, err := h.Svc.RemoveAddress(ctx, authmw.UserID(c), c.Param("id"))
	if err != nil {
		return fail(l, "remove_address_error", "cannot remove address", err)
	}
	return c.JSON(http.StatusOK, u.Addresses)
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_users_error", "cannot list users", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) SetRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.set_role")

	var req transport.SetRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_role_error", "invalid body", err)
	}
	if err := h.Svc.SetRole(ctx, c.Param("id"), req.Role); err != nil {
		return fail(l, "set_role_error", "cannot change role", err)
	}

	l.Info("set_role_success", "user_id", c.Param("id"), "role", req.Role, "by", authmw.UserID(c))
	return c.NoContent(http.StatusNoContent)
}
