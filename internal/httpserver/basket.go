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

type BasketHTTP struct {
	Svc *service.BasketService
}

func (h *BasketHTTP) GetBasket(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "basket.get_basket")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("get_basket_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		l.Error("get_basket_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get basket")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *BasketHTTP) AddToBasket(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "basket.add_to_basket")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("add_to_basket_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToBasketRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_basket_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 {
		l.Warn("add_to_basket_error", "status", 400, "reason", "product_id is required")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	item, err := h.Svc.Add(ctx, userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_basket_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("add_to_basket_error", "status", 409, "reason", "product already in basket")
			return echo.NewHTTPError(http.StatusConflict, "product already in basket")
		default:
			l.Error("add_to_basket_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to basket")
		}
	}

	l.Info("add_to_basket_success", "productID", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *BasketHTTP) DeleteFromBasket(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "basket.delete_from_basket")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("delete_from_basket_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		l.Warn("delete_from_basket_error", "status", 400, "reason", "product_id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is not an integer")
	}

	if err := h.Svc.Remove(ctx, userID, uint(productID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_from_basket_error", "status", 404, "reason", "product not in basket")
			return echo.NewHTTPError(http.StatusNotFound, "product not in basket")
		}
		l.Error("delete_from_basket_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete from basket")
	}

	l.Info("delete_from_basket_success", "productID", productID)
	return c.NoContent(http.StatusNoContent)
}

func (h *BasketHTTP) ClearBasket(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "basket.clear_basket")

	userID, err := userIDFromContext(c)
	if err != nil {
		l.Warn("clear_basket_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.Clear(ctx, userID); err != nil {
		l.Error("clear_basket_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear basket")
	}

	l.Info("clear_basket_success")
	return c.NoContent(http.StatusNoContent)
}
