// Package paymentgateway verifies charges against the payment provider's PaymentIntent API.
package paymentgateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// CustomerMetadataKey is the PaymentIntent metadata entry that names the paying customer.
const CustomerMetadataKey = "customer_id"

const maxResponseBytes = 1 << 20

// Client implements ports.PaymentGateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, secretKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: secretKey,
			TokenType:   "Bearer",
		})),
		logger: logger.With("component", "payment_gateway"),
	}
}

// VerifyCharge maps the intent status onto Succeeded, Pending or Failed. An unknown intent
// or one paid by a different customer is Failed.
func (c *Client) VerifyCharge(
	ctx context.Context,
	paymentReference string,
	customerID kernel.UUID,
) (ports.PaymentStatus, error) {
	if strings.TrimSpace(paymentReference) == "" {
		return "", errs.NewValueIsRequiredError("payment reference")
	}

	endpoint := c.baseURL + "/v1/payment_intents/" + url.PathEscape(paymentReference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("verify charge %s: %w", paymentReference, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("verify charge %s: %w", paymentReference, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.PaymentFailed, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("verify charge %s: status %d", paymentReference, resp.StatusCode)
	}

	intent := gjson.ParseBytes(payload)
	if owner := intent.Get("metadata." + CustomerMetadataKey).String(); owner != customerID.String() {
		c.logger.WarnContext(ctx, "payment intent belongs to another customer",
			"payment_reference", paymentReference, "customer_id", customerID.String())
		return ports.PaymentFailed, nil
	}

	return statusOf(intent.Get("status").String()), nil
}

func statusOf(intentStatus string) ports.PaymentStatus {
	switch intentStatus {
	case "succeeded":
		return ports.PaymentSucceeded
	case "processing", "requires_capture", "requires_action", "requires_confirmation":
		return ports.PaymentPending
	default:
		return ports.PaymentFailed
	}
}
