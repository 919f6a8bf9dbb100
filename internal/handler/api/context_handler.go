package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ckobridge/internal/checkout"
	"ckobridge/internal/identity"
)

const paymentThreshold = 1000

// ContextHandler resolves an inbound caller to their customer identity
// and most recent payment. Used by the voice-agent webhook to seed
// conversation variables before the call is answered.
type ContextHandler struct {
	checkout checkout.Factory
	identity identity.Resolver
	logger   *zap.Logger
}

func NewContextHandler(deps *Deps) *ContextHandler {
	return &ContextHandler{
		checkout: deps.Checkout,
		identity: deps.Identity,
		logger:   deps.Logger,
	}
}

type webhookPayload struct {
	Data struct {
		Payload struct {
			TelnyxEndUserTarget string `json:"telnyx_end_user_target"`
		} `json:"payload"`
	} `json:"data"`
}

// DynamicVariables is the variable block consumed by the voice agent.
type DynamicVariables struct {
	LookupResult      string `json:"lookup_result"`
	ErrorMessage      string `json:"error_message,omitempty"`
	PaymentID         string `json:"payment_Id,omitempty"`
	CustomerName      string `json:"customer_name,omitempty"`
	CustomerEmail     string `json:"customer_email,omitempty"`
	LastOrderNumber   string `json:"last_order_number,omitempty"`
	LastPaymentStatus string `json:"last_payment_status,omitempty"`
	LastPaymentAmount string `json:"last_payment_amount,omitempty"`
	Threshold         int    `json:"threshold,omitempty"`
}

// Memory carries the conversation-memory query passed through to the
// agent platform as static configuration.
type Memory struct {
	ConversationQuery string `json:"conversation_query"`
}

// Conversation carries static conversation metadata.
type Conversation struct {
	Metadata map[string]string `json:"metadata"`
}

// UserContextResponse is the full /get-user-context payload.
type UserContextResponse struct {
	DynamicVariables DynamicVariables `json:"dynamic_variables"`
	Memory           *Memory          `json:"memory,omitempty"`
	Conversation     *Conversation    `json:"conversation,omitempty"`
}

// GetUserContext handles POST /get-user-context. Failures never become
// HTTP faults: parse problems report lookup_result "error", and search
// problems degrade to "not_found".
func (h *ContextHandler) GetUserContext(c echo.Context) error {
	var payload webhookPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, UserContextResponse{
			DynamicVariables: DynamicVariables{
				LookupResult: "error",
				ErrorMessage: fmt.Sprintf("Failed to parse webhook payload: %v", err),
			},
		})
	}

	target := payload.Data.Payload.TelnyxEndUserTarget
	if target == "" {
		return c.JSON(http.StatusOK, UserContextResponse{
			DynamicVariables: DynamicVariables{
				LookupResult: "error",
				ErrorMessage: "Missing telnyx_end_user_target in webhook payload.",
			},
		})
	}

	customer := h.identity.Resolve(target)
	latest := h.latestPayment(c, customer.Email)

	var variables DynamicVariables
	if latest != nil {
		variables = DynamicVariables{
			LookupResult:      "success",
			PaymentID:         latest.ID,
			CustomerName:      customer.Name,
			CustomerEmail:     customer.Email,
			LastOrderNumber:   fallback(latest.Reference, "N/A"),
			LastPaymentStatus: fallback(latest.Status, "N/A"),
			LastPaymentAmount: fmt.Sprintf("%.2f %s", float64(latest.Amount)/100, fallback(latest.Currency, "USD")),
			Threshold:         paymentThreshold,
		}
		// The payment's own customer record wins when present.
		if latest.Customer != nil {
			variables.CustomerName = fallback(latest.Customer.Name, customer.Name)
			variables.CustomerEmail = fallback(latest.Customer.Email, customer.Email)
		}
	} else {
		variables = DynamicVariables{
			LookupResult:      "not_found",
			PaymentID:         "N/A",
			CustomerName:      customer.Name,
			CustomerEmail:     customer.Email,
			LastOrderNumber:   "N/A",
			LastPaymentStatus: "No Recent Transaction",
			LastPaymentAmount: "N/A",
			Threshold:         paymentThreshold,
		}
	}

	return c.JSON(http.StatusOK, UserContextResponse{
		DynamicVariables: variables,
		Memory: &Memory{
			ConversationQuery: fmt.Sprintf("metadata->telnyx_end_user_target=eq.%s&limit=5&order=last_message_at.desc", target),
		},
		Conversation: &Conversation{
			Metadata: map[string]string{
				"customer_tier":      "standard",
				"preferred_language": "en",
				"timezone":           "UTC",
			},
		},
	})
}

// latestPayment fetches the most recent payment for the email. Search
// failures are treated as no result, not surfaced to the caller.
func (h *ContextHandler) latestPayment(c echo.Context, email string) *checkout.Payment {
	payments, err := h.checkout().SearchPayments(c.Request().Context(), email, 1)
	if err != nil {
		h.logger.Warn("payment search failed", zap.String("email", email), zap.Error(err))
		return nil
	}
	if len(payments) == 0 {
		return nil
	}
	return &payments[0]
}

func fallback(value, defaultVal string) string {
	if value == "" {
		return defaultVal
	}
	return value
}
