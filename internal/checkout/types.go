package checkout

// Typed views of the Checkout.com request and response bodies used by
// this service. Fields the sandbox may omit are plain strings that
// decode to "" when absent; callers check for the zero value instead of
// probing the raw JSON.

// Phone is a customer phone number split into country code and number.
type Phone struct {
	CountryCode string `json:"country_code,omitempty"`
	Number      string `json:"number,omitempty"`
}

// Customer carries the customer details attached to a payment or
// payment-link request.
type Customer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone *Phone `json:"phone,omitempty"`
}

// Address is a billing address. Only the country is collected here.
type Address struct {
	Country string `json:"country,omitempty"`
}

// BillingInformation wraps the billing address for link requests.
type BillingInformation struct {
	Address *Address `json:"address,omitempty"`
}

// PaymentLinkRequest is the body for POST /payment-links.
type PaymentLinkRequest struct {
	Amount      int64               `json:"amount"`
	Currency    string              `json:"currency"`
	Description string              `json:"description,omitempty"`
	Capture     bool                `json:"capture"`
	Billing     *BillingInformation `json:"billing,omitempty"`
	Customer    *Customer           `json:"customer,omitempty"`
}

// Link is a single HAL-style link object.
type Link struct {
	Href string `json:"href"`
}

// Links is the `_links` collection on a payment-link response. The
// hosted payment page lives behind the redirect link.
type Links struct {
	Self     Link `json:"self"`
	Redirect Link `json:"redirect"`
}

// PaymentLinkResponse is the body returned by POST /payment-links.
type PaymentLinkResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	ExpiresOn string `json:"expires_on"`
	Links     Links  `json:"_links"`
}

// RedirectURL returns the hosted payment page URL, or "" when the
// response carried no redirect link.
func (r *PaymentLinkResponse) RedirectURL() string {
	if r == nil {
		return ""
	}
	return r.Links.Redirect.Href
}

// Payment is the normalized view of a payment object, shared by the
// details, list and search endpoints.
type Payment struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Approved  bool      `json:"approved"`
	Reference string    `json:"reference"`
	Customer  *Customer `json:"customer,omitempty"`
}

// PaymentList is the body of GET /payments?reference=. Depending on the
// API version the result list arrives under either `payments` or
// `data`; both are decoded and Results() picks whichever is populated.
type PaymentList struct {
	TotalCount int       `json:"total_count"`
	Payments   []Payment `json:"payments"`
	Data       []Payment `json:"data"`
}

// Results returns the populated result list, preferring `payments`.
func (l *PaymentList) Results() []Payment {
	if l == nil {
		return nil
	}
	if len(l.Payments) > 0 {
		return l.Payments
	}
	return l.Data
}

// RefundResponse is the body of POST /payments/{id}/refunds. A
// populated ActionID marks an accepted refund; anything else is a
// rejection, described best-effort by Status and ErrorMessage.
type RefundResponse struct {
	ActionID     string `json:"action_id"`
	Reference    string `json:"reference"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// PaymentAction is one entry of a payment's action history.
type PaymentAction struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	AuthorizationType string `json:"authorization_type"`
	ResponseCode      string `json:"response_code"`
	ResponseSummary   string `json:"response_summary"`
}

// SearchRequest is the body of POST /payments/search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Data []Payment `json:"data"`
}
