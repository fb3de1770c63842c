package razorpay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	rzpsdk "github.com/razorpay/razorpay-go"
	rzperrors "github.com/razorpay/razorpay-go/errors"

	"github.com/crystara/crystara-backend/pkg/config"
	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/logger"
)

var (
	errKeyIDRequired     = errors.New("razorpay key id is required")
	errKeySecretRequired = errors.New("razorpay key secret is required")
	errLoggerRequired    = errors.New("razorpay logger is required")
)

// orderAPI is the slice of the Razorpay SDK the wrapper drives. The SDK's
// order resource satisfies it.
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client exposes Razorpay primitives with centralized auth, logging, and error mapping.
type Client struct {
	orders    orderAPI
	keyID     string
	keySecret string
	logger    *logger.Logger
}

// OrderParams describes the gateway order to create. Amount is in the
// currency's smallest unit (paise for INR).
type OrderParams struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the gateway order as Razorpay returns it.
type Order struct {
	ID        string
	Amount    int64
	Currency  string
	Receipt   string
	Status    string
	CreatedAt int64
}

// NewClient initializes the Razorpay wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.RazorpayConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		return nil, errKeyIDRequired
	}
	keySecret := strings.TrimSpace(cfg.KeySecret)
	if keySecret == "" {
		return nil, errKeySecretRequired
	}

	sdk := rzpsdk.NewClient(keyID, keySecret)
	c := &Client{
		orders:    sdk.Order,
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logg,
	}

	logg.Info(ctx, "razorpay client initialized")
	return c, nil
}

// KeyID returns the public key id handed to checkout clients.
func (c *Client) KeyID() string {
	if c == nil {
		return ""
	}
	return c.keyID
}

// KeySecret returns the secret used for signature verification.
func (c *Client) KeySecret() string {
	if c == nil {
		return ""
	}
	return c.keySecret
}

// CreateOrder registers a new order with the gateway.
func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	c.log(ctx, "request", "create_order", map[string]any{
		"amount":   params.Amount,
		"currency": params.Currency,
		"receipt":  params.Receipt,
	})

	payload := map[string]interface{}{
		"amount":   params.Amount,
		"currency": params.Currency,
	}
	if params.Receipt != "" {
		payload["receipt"] = params.Receipt
	}
	if len(params.Notes) > 0 {
		notes := make(map[string]interface{}, len(params.Notes))
		for k, v := range params.Notes {
			notes[k] = v
		}
		payload["notes"] = notes
	}

	resp, err := c.orders.Create(payload, nil)
	if err != nil {
		c.log(ctx, "error", "create_order", map[string]any{"error": err.Error()})
		return nil, mapGatewayError(err, "creating gateway order")
	}

	order := orderFromResponse(resp)
	c.log(ctx, "response", "create_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

// FetchOrder retrieves an existing gateway order.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	c.log(ctx, "request", "fetch_order", map[string]any{"order_id": orderID})

	resp, err := c.orders.Fetch(orderID, nil, nil)
	if err != nil {
		c.log(ctx, "error", "fetch_order", map[string]any{"error": err.Error()})
		return nil, mapGatewayError(err, "fetching gateway order")
	}

	order := orderFromResponse(resp)
	c.log(ctx, "response", "fetch_order", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

func orderFromResponse(resp map[string]interface{}) *Order {
	return &Order{
		ID:        stringField(resp, "id"),
		Amount:    int64Field(resp, "amount"),
		Currency:  stringField(resp, "currency"),
		Receipt:   stringField(resp, "receipt"),
		Status:    stringField(resp, "status"),
		CreatedAt: int64Field(resp, "created_at"),
	}
}

func stringField(resp map[string]interface{}, key string) string {
	if v, ok := resp[key].(string); ok {
		return v
	}
	return ""
}

// int64Field tolerates the float64 the SDK's JSON decoding produces for
// numeric fields.
func int64Field(resp map[string]interface{}, key string) int64 {
	switch v := resp[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func mapGatewayError(err error, action string) error {
	var badRequest *rzperrors.BadRequestError
	if errors.As(err, &badRequest) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, action)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func (c *Client) log(ctx context.Context, phase, operation string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	scoped := c.logger.WithFields(ctx, map[string]any{
		"gateway":   "razorpay",
		"phase":     phase,
		"operation": operation,
	})
	for k, v := range fields {
		scoped = c.logger.WithField(scoped, k, v)
	}
	c.logger.Info(scoped, fmt.Sprintf("razorpay %s %s", operation, phase))
}
