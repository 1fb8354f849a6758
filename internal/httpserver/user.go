package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_backend/internal/service"
	"github.com/Skotchmaster/shop_backend/internal/transport"
	"github.com/Skotchmaster/shop_backend/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	user, err := h.Svc.GetByID(ctx, uint(id))
	if err != nil {
		l.Error("get_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}
	if user == nil {
		l.Warn("get_user_error", "status", 404, "reason", "user not found")
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	photo, src, err := fileFromForm(c, "photo")
	if err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "cannot read photo", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read photo")
	}
	if src != nil {
		defer src.Close()
	}

	user, err := h.Svc.UpdateProfile(ctx, uint(id), req, photo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_profile_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_profile_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported photo")
		case errors.Is(err, service.ErrConflict):
			l.Warn("update_profile_error", "status", 409, "reason", "login is taken")
			return echo.NewHTTPError(http.StatusConflict, "login is taken")
		default:
			l.Error("update_profile_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
		}
	}

	l.Info("update_profile_success", "userID", user.ID)
	return c.JSON(http.StatusOK, user)
}
