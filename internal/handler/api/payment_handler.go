package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ckobridge/internal/ops"
)

// PaymentHandler exposes the payment operations as GET endpoints.
type PaymentHandler struct {
	ops    *ops.Service
	logger *zap.Logger
}

func NewPaymentHandler(deps *Deps) *PaymentHandler {
	return &PaymentHandler{
		ops:    deps.Ops,
		logger: deps.Logger,
	}
}

// CreatePaymentLink handles GET /create-payment-link.
func (h *PaymentHandler) CreatePaymentLink(c echo.Context) error {
	amount, _ := strconv.ParseInt(c.QueryParam("amount"), 10, 64)

	params := ops.PaymentLinkParams{
		Amount:           amount,
		Currency:         c.QueryParam("currency"),
		CustomerEmail:    c.QueryParam("email"),
		PhoneCountryCode: queryParamDefault(c, "phone_country_code", "+971"),
		PhoneNumber:      c.QueryParam("phone_number"),
		BillingCountry:   queryParamDefault(c, "billing_country", "AE"),
	}

	return resultResponse(c, h.ops.CreatePaymentLink(c.Request().Context(), params))
}

// LookupPayment handles GET /lookup-payment. The HTTP API enriches
// declined payments with their final-authorization response codes.
func (h *PaymentHandler) LookupPayment(c echo.Context) error {
	paymentID := c.QueryParam("payment_id")
	referenceNumber := c.QueryParam("reference_number")

	return resultResponse(c, h.ops.LookupPayment(c.Request().Context(), paymentID, referenceNumber, true))
}

// RefundPayment handles GET /refund-payment.
func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	paymentID := c.QueryParam("payment_id")

	return resultResponse(c, h.ops.RefundPayment(c.Request().Context(), paymentID))
}

func queryParamDefault(c echo.Context, name, defaultVal string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return defaultVal
}
