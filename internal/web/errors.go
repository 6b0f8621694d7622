package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop/internal/cart"
	"printshop/internal/catalog"
	"printshop/internal/errx"
	"printshop/internal/logx"
	"printshop/internal/pricing"
	"printshop/internal/repo"
	"printshop/internal/sheet"
)

// statusFor maps err to an HTTP status and a message safe to show.
func statusFor(err error) (int, string) {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	switch {
	case errors.Is(err, repo.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrInvalidPriceType),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidTurnaround),
		errors.Is(err, cart.ErrUnknownVariant),
		errors.Is(err, cart.ErrEmpty):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, pricing.ErrTierNotFound),
		errors.Is(err, cart.ErrExpressUnavailable),
		errors.Is(err, cart.ErrNoVariant),
		errors.Is(err, sheet.ErrNoPricing):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, cart.ErrCartFull):
		return http.StatusConflict, "cart is full, check out or remove items first"
	case errors.Is(err, catalog.ErrNoContactNumber):
		return http.StatusServiceUnavailable, err.Error()
	}
	return errx.StatusOf(err)
}

func fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	fail(c, errx.New(err, http.StatusBadRequest, err.Error()))
}
