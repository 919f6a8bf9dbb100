package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"ckobridge/internal/config"
)

// Client is a direct Checkout.com API client bound to one environment.
// Credentials are taken from explicit configuration, never from process
// globals, so the client is testable against a local stub server.
//
// Construction does not validate the credentials: a bad or missing key
// only surfaces when the first call hits the API.
type Client struct {
	r *resty.Client
}

// Factory builds a fresh client for a single operation invocation.
// No client is pooled or reused across calls.
type Factory func() *Client

// NewFactory returns a Factory bound to the given credentials.
func NewFactory(cfg config.CheckoutConfig) Factory {
	return func() *Client {
		return New(cfg)
	}
}

// New creates a Checkout.com client. No retries: retry semantics for
// payment operations belong to the provider, not this layer.
func New(cfg config.CheckoutConfig) *Client {
	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Content-Type", "application/json")

	return &Client{r: r}
}

// GetPayment fetches payment details by payment ID.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	resp, err := c.r.R().
		SetContext(ctx).
		Get("/payments/" + paymentID)
	if err != nil {
		return nil, fmt.Errorf("get payment %s failed: %w", paymentID, err)
	}
	if resp.IsError() {
		return nil, apiErrorf(resp, "get payment %s", paymentID)
	}

	var payment Payment
	if err := json.Unmarshal(resp.Body(), &payment); err != nil {
		return nil, fmt.Errorf("get payment %s parse error: %w", paymentID, err)
	}
	return &payment, nil
}

// ListPayments queries the payment list filtered by merchant reference.
func (c *Client) ListPayments(ctx context.Context, reference string) (*PaymentList, error) {
	resp, err := c.r.R().
		SetContext(ctx).
		SetQueryParam("reference", reference).
		Get("/payments")
	if err != nil {
		return nil, fmt.Errorf("list payments for reference %s failed: %w", reference, err)
	}
	if resp.IsError() {
		return nil, apiErrorf(resp, "list payments for reference %s", reference)
	}

	var list PaymentList
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("list payments parse error: %w", err)
	}
	return &list, nil
}

// RefundPayment requests a full refund of the payment. No amount or
// currency override is sent, so the provider refunds the original
// amount in full.
func (c *Client) RefundPayment(ctx context.Context, paymentID string) (*RefundResponse, error) {
	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(struct{}{}).
		Post("/payments/" + paymentID + "/refunds")
	if err != nil {
		return nil, fmt.Errorf("refund payment %s failed: %w", paymentID, err)
	}
	if resp.IsError() {
		return nil, apiErrorf(resp, "refund payment %s", paymentID)
	}

	var refund RefundResponse
	if err := json.Unmarshal(resp.Body(), &refund); err != nil {
		return nil, fmt.Errorf("refund payment %s parse error: %w", paymentID, err)
	}
	return &refund, nil
}

// GetPaymentActions fetches the action history of a payment.
func (c *Client) GetPaymentActions(ctx context.Context, paymentID string) ([]PaymentAction, error) {
	resp, err := c.r.R().
		SetContext(ctx).
		Get("/payments/" + paymentID + "/actions")
	if err != nil {
		return nil, fmt.Errorf("get payment actions %s failed: %w", paymentID, err)
	}
	if resp.IsError() {
		return nil, apiErrorf(resp, "get payment actions %s", paymentID)
	}

	var actions []PaymentAction
	if err := json.Unmarshal(resp.Body(), &actions); err != nil {
		return nil, fmt.Errorf("get payment actions %s parse error: %w", paymentID, err)
	}
	return actions, nil
}

// CreatePaymentLink creates a hosted payment page link.
func (c *Client) CreatePaymentLink(ctx context.Context, req *PaymentLinkRequest) (*PaymentLinkResponse, error) {
	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(req).
		Post("/payment-links")
	if err != nil {
		return nil, fmt.Errorf("create payment link failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiErrorf(resp, "create payment link")
	}

	var link PaymentLinkResponse
	if err := json.Unmarshal(resp.Body(), &link); err != nil {
		return nil, fmt.Errorf("create payment link parse error: %w", err)
	}
	return &link, nil
}

// SearchPayments runs a full-text search for the most recent payments
// matching the given customer email. Returns at most limit results in
// provider order (most recent first).
func (c *Client) SearchPayments(ctx context.Context, email string, limit int) ([]Payment, error) {
	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(SearchRequest{
			Query: fmt.Sprintf("email:%q", email),
			Limit: limit,
		}).
		Post("/payments/search")
	if err != nil {
		return nil, fmt.Errorf("payment search failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiErrorf(resp, "payment search")
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("payment search parse error: %w", err)
	}
	return result.Data, nil
}

// apiErrorf formats a non-2xx API response into an error, including the
// provider's response body when it carries one.
func apiErrorf(resp *resty.Response, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if body := strings.TrimSpace(resp.String()); body != "" {
		return fmt.Errorf("%s: %s: %s", msg, resp.Status(), body)
	}
	return fmt.Errorf("%s: %s", msg, resp.Status())
}
