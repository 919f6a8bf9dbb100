package mcp

import (
	"context"
	"fmt"

	"ckobridge/internal/ops"
)

// ToolHandler handles MCP tool calls.
type ToolHandler struct {
	ops *ops.Service
}

// NewToolHandler creates a new tool handler.
func NewToolHandler(service *ops.Service) *ToolHandler {
	return &ToolHandler{ops: service}
}

// Handle dispatches a tool call. The operations themselves never fail:
// validation and provider problems come back inside the result text. An
// error here means the tool name was unknown.
func (h *ToolHandler) Handle(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	switch name {
	case "refund_payment":
		return h.handleRefund(ctx, args), nil
	case "lookup_payment_info":
		return h.handleLookup(ctx, args), nil
	case "create_payment_link":
		return h.handleCreateLink(ctx, args), nil
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (h *ToolHandler) handleRefund(ctx context.Context, args map[string]interface{}) string {
	paymentID, _ := args["payment_id"].(string)
	return h.ops.RefundPayment(ctx, paymentID)
}

func (h *ToolHandler) handleLookup(ctx context.Context, args map[string]interface{}) string {
	paymentID, _ := args["payment_id"].(string)
	referenceNumber, _ := args["reference_number"].(string)
	return h.ops.LookupPayment(ctx, paymentID, referenceNumber, false)
}

func (h *ToolHandler) handleCreateLink(ctx context.Context, args map[string]interface{}) string {
	amount, _ := args["amount"].(float64)
	currency, _ := args["currency"].(string)
	customerEmail, _ := args["customer_email"].(string)
	phoneCountryCode, _ := args["phone_country_code"].(string)
	phoneNumber, _ := args["phone_number"].(string)
	billingCountry, _ := args["billing_country"].(string)

	return h.ops.CreatePaymentLink(ctx, ops.PaymentLinkParams{
		Amount:           int64(amount),
		Currency:         currency,
		CustomerEmail:    customerEmail,
		PhoneCountryCode: phoneCountryCode,
		PhoneNumber:      phoneNumber,
		BillingCountry:   billingCountry,
	})
}

// getToolDefinitions returns the MCP tool definitions.
func getToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "refund_payment",
			Description: "Initiates a full refund for a payment using its unique payment ID",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"payment_id": map[string]interface{}{
						"type":        "string",
						"description": "Checkout.com payment ID (pay_...)",
					},
				},
				"required": []string{"payment_id"},
			},
		},
		{
			Name:        "lookup_payment_info",
			Description: "Looks up payment details by payment ID or order/reference number. Prioritizes payment_id when both are provided",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"payment_id": map[string]interface{}{
						"type":        "string",
						"description": "Checkout.com payment ID (pay_...)",
					},
					"reference_number": map[string]interface{}{
						"type":        "string",
						"description": "Merchant order/reference number",
					},
				},
			},
		},
		{
			Name:        "create_payment_link",
			Description: "Creates a hosted payment page link for the customer to complete a payment",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"amount": map[string]interface{}{
						"type":        "integer",
						"description": "Amount in minor currency units (e.g. fils, cents)",
					},
					"currency": map[string]interface{}{
						"type":        "string",
						"description": "Three-letter currency code (e.g. 'AED')",
					},
					"customer_email": map[string]interface{}{
						"type":        "string",
						"description": "Customer email address",
					},
					"phone_country_code": map[string]interface{}{
						"type":        "string",
						"description": "Phone country code (e.g. '+971')",
					},
					"phone_number": map[string]interface{}{
						"type":        "string",
						"description": "National phone number",
					},
					"billing_country": map[string]interface{}{
						"type":        "string",
						"description": "Two-letter billing country code (e.g. 'AE')",
					},
				},
				"required": []string{
					"amount", "currency", "customer_email",
					"phone_country_code", "phone_number", "billing_country",
				},
			},
		},
	}
}
