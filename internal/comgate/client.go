package comgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comgatepay/internal/pkg/httpclient"
)

// DefaultBaseURL is the production Comgate API endpoint.
const DefaultBaseURL = "https://payments.comgate.cz/v1.0"

// ErrPaymentNotFound is returned by Status when the gateway does not know
// the transaction id.
var ErrPaymentNotFound = errors.New("comgate: payment not found")

// APIError carries a non-OK result code from the gateway.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("comgate: code %d: %s", e.Code, e.Message)
}

// Client talks to the Comgate payment API. The wire format is
// x-www-form-urlencoded in both directions.
type Client struct {
	merchant string
	secret   string
	http     *httpclient.Client
}

// NewClient creates a gateway API client for the given merchant account.
func NewClient(merchant, secret string) *Client {
	return &Client{
		merchant: merchant,
		secret:   secret,
		http: httpclient.New().
			WithBaseURL(DefaultBaseURL).
			WithTimeout(30 * time.Second),
	}
}

// WithBaseURL overrides the API endpoint. Used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.http.WithBaseURL(baseURL)
	return c
}

// Create opens a new payment on the gateway and returns the assigned
// transaction id together with the redirect URL for the payer.
func (c *Client) Create(ctx context.Context, req *CreateRequest) (*CreateResponse, error) {
	body, err := c.http.PostForm(ctx, "/create", req.formValues(c.merchant, c.secret))
	if err != nil {
		return nil, fmt.Errorf("comgate create: %w", err)
	}

	resp, err := parseCreateResponse(body)
	if err != nil {
		return nil, fmt.Errorf("comgate create: malformed response: %w", err)
	}
	return resp, nil
}

// Status queries the current state of a transaction.
func (c *Client) Status(ctx context.Context, transID string) (*StatusResponse, error) {
	form := map[string]string{
		"merchant": c.merchant,
		"secret":   c.secret,
		"transId":  transID,
	}
	body, err := c.http.PostForm(ctx, "/status", form)
	if err != nil {
		return nil, fmt.Errorf("comgate status: %w", err)
	}

	resp, err := parseStatusResponse(body)
	if err != nil {
		return nil, fmt.Errorf("comgate status: malformed response: %w", err)
	}
	if resp.Code == CodePaymentNotFound {
		return nil, ErrPaymentNotFound
	}
	if resp.Code != CodeOK {
		return nil, &APIError{Code: resp.Code, Message: resp.Message}
	}
	return resp, nil
}
