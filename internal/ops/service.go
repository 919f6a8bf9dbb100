// Package ops implements the payment operations shared by the HTTP API
// and the MCP tool server. Every operation is a total function from its
// arguments to a human-readable result string: validation failures,
// provider errors and response-shape surprises all come back as text,
// never as an error the transport has to handle.
package ops

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ckobridge/internal/checkout"
)

const linkDescription = "Generated By MCP Server"

// Service runs payment operations against Checkout.com. A fresh client
// is built per invocation via the factory; no state is shared between
// calls.
type Service struct {
	newClient checkout.Factory
	logger    *zap.Logger
}

// New creates an operation service.
func New(factory checkout.Factory, logger *zap.Logger) *Service {
	return &Service{
		newClient: factory,
		logger:    logger,
	}
}

// RefundPayment initiates a full refund for a payment by its ID. The
// provider decides the refunded amount; this layer sends no overrides.
func (s *Service) RefundPayment(ctx context.Context, paymentID string) string {
	if paymentID == "" {
		return "⚠️ Error: Please provide a payment ID to refund."
	}

	refund, err := s.newClient().RefundPayment(ctx, paymentID)
	if err != nil {
		s.logger.Warn("refund request failed", zap.String("payment_id", paymentID), zap.Error(err))
		return fmt.Sprintf("⚠️ Exception occurred during refund processing: %v", err)
	}

	// An accepted refund always carries an action ID. Anything else is
	// a rejection, described with whatever fields came back.
	if refund.ActionID == "" {
		status := refund.Status
		if status == "" {
			status = "Failed"
		}
		errorDetails := refund.ErrorMessage
		if errorDetails == "" {
			errorDetails = "Details unavailable in response."
		}
		return fmt.Sprintf("❌ Refund Submission Failed for Payment ID %s. Status: %s. Error: %s", paymentID, status, errorDetails)
	}

	reference := refund.Reference
	if reference == "" {
		reference = "N/A"
	}

	return fmt.Sprintf(
		"--- Refund Request Submitted Successfully ---\n"+
			"Original Payment ID: %s\n"+
			"Action ID: %s\n"+
			"Reference: %s\n"+
			"Status: Pending (Check payment details for final status)",
		paymentID, refund.ActionID, reference,
	)
}

// LookupPayment looks up payment details by payment ID or merchant
// reference number. The payment ID wins when both are given. With
// includeDeclineCodes set, a declined payment's action history is
// fetched and the response codes of its final authorizations are
// appended to the output.
func (s *Service) LookupPayment(ctx context.Context, paymentID, referenceNumber string, includeDeclineCodes bool) string {
	if paymentID == "" && referenceNumber == "" {
		return "⚠️ Error: Please provide either a payment ID or a reference number."
	}

	client := s.newClient()

	var payment *checkout.Payment
	var sourceLabel string

	if paymentID != "" {
		// Direct lookup is faster and more specific.
		found, err := client.GetPayment(ctx, paymentID)
		if err != nil {
			s.logger.Warn("payment lookup failed", zap.String("payment_id", paymentID), zap.Error(err))
			return fmt.Sprintf("⚠️ Exception occurred: %v", err)
		}
		payment = found
		sourceLabel = fmt.Sprintf("Payment ID %s", paymentID)
	} else {
		list, err := client.ListPayments(ctx, referenceNumber)
		if err != nil {
			s.logger.Warn("payment lookup failed", zap.String("reference", referenceNumber), zap.Error(err))
			return fmt.Sprintf("⚠️ Exception occurred: %v", err)
		}
		results := list.Results()
		if len(results) == 0 {
			return fmt.Sprintf("🔍 No payments found for reference number: %s", referenceNumber)
		}
		// Take the first payment for the reference; the provider
		// defines the result order.
		payment = &results[0]
		sourceLabel = fmt.Sprintf("Reference Number %s (first result)", referenceNumber)
	}

	var responseCodes []string
	if includeDeclineCodes && payment.Status == "Declined" {
		responseCodes = s.declineCodes(ctx, client, payment.ID)
	}

	result := fmt.Sprintf(
		"--- Payment Details (%s) ---\n"+
			"💳 Payment ID: %s\n"+
			"Status: %s\n"+
			"Amount: %d %s\n"+
			"Approved: %t\n",
		sourceLabel, payment.ID, payment.Status, payment.Amount, payment.Currency, payment.Approved,
	)
	if len(responseCodes) > 0 {
		result += fmt.Sprintf("⚠️ Declined Response Codes: %s\n", strings.Join(responseCodes, ", "))
	}
	return result
}

// declineCodes collects the response codes of final authorization
// attempts. Errors here only lose the enrichment, not the lookup.
func (s *Service) declineCodes(ctx context.Context, client *checkout.Client, paymentID string) []string {
	actions, err := client.GetPaymentActions(ctx, paymentID)
	if err != nil {
		s.logger.Warn("action history fetch failed", zap.String("payment_id", paymentID), zap.Error(err))
		return nil
	}
	var codes []string
	for _, action := range actions {
		if action.AuthorizationType != "Final" {
			continue
		}
		code := action.ResponseCode
		if code == "" {
			code = "N/A"
		}
		codes = append(codes, code)
	}
	return codes
}

// PaymentLinkParams are the arguments for CreatePaymentLink. All fields
// are required.
type PaymentLinkParams struct {
	Amount           int64
	Currency         string
	CustomerEmail    string
	PhoneCountryCode string
	PhoneNumber      string
	BillingCountry   string
}

func (p PaymentLinkParams) validate() bool {
	return p.Amount > 0 &&
		p.Currency != "" &&
		p.CustomerEmail != "" &&
		p.PhoneCountryCode != "" &&
		p.PhoneNumber != "" &&
		p.BillingCountry != ""
}

// CreatePaymentLink creates a hosted payment page link for the customer
// and returns its URL.
func (s *Service) CreatePaymentLink(ctx context.Context, params PaymentLinkParams) string {
	if !params.validate() {
		return "⚠️ Error: Please provide all required parameters: amount, currency, customer_email, phone_country_code, phone_number, and billing_country."
	}

	request := &checkout.PaymentLinkRequest{
		Amount:      params.Amount,
		Currency:    params.Currency,
		Description: linkDescription,
		Capture:     true,
		Billing: &checkout.BillingInformation{
			Address: &checkout.Address{Country: params.BillingCountry},
		},
		Customer: &checkout.Customer{
			Email: params.CustomerEmail,
			Phone: &checkout.Phone{
				CountryCode: params.PhoneCountryCode,
				Number:      params.PhoneNumber,
			},
		},
	}

	response, err := s.newClient().CreatePaymentLink(ctx, request)
	if err != nil {
		s.logger.Warn("payment link creation failed", zap.Error(err))
		return fmt.Sprintf("⚠️ Exception occurred during payment link creation: %v", err)
	}

	linkURL := response.RedirectURL()
	if linkURL == "" {
		return "❌ Payment Link Creation Failed: Could not extract redirect URL from response."
	}

	return fmt.Sprintf(
		"--- Payment Link Created Successfully ---\n"+
			"🔗 Payment Link URL: %s\n"+
			"Amount: %d %s",
		linkURL, params.Amount, params.Currency,
	)
}
