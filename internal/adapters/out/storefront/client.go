// Package storefront reads orders and customers from the upstream commerce
// webservice (PrestaShop-style JSON API keyed by ws_key).
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	serviceName = "storefront"
	dateLayout  = "2006-01-02 15:04:05"

	// NotAvailable replaces a customer or product name the storefront could
	// not provide.
	NotAvailable = "N/A"
)

var _ ports.UpstreamFeed = (*Client)(nil)

// Client calls the storefront webservice.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	retries    uint64
}

// NewClient creates a storefront client. Transient failures of the order
// listing are retried twice with exponential backoff.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		retries:    2,
	}
}

// OrdersOn returns the orders whose date_add falls on day.
func (c *Client) OrdersOn(ctx context.Context, day time.Time) ([]ports.UpstreamOrder, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("client not configured: base URL and API key required"))
	}

	var body []byte
	fetch := func() error {
		var err error
		body, err = c.get(ctx, "/api/orders", url.Values{"display": {"full"}})
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx)
	if err := backoff.Retry(fetch, policy); err != nil {
		c.logger.Warn("storefront order listing failed", zap.Error(err))
		return nil, errs.NewUpstreamUnavailableError(serviceName, err)
	}

	raw, err := decodeOrders(body)
	if err != nil {
		return nil, errs.NewUpstreamUnavailableError(serviceName, err)
	}

	prefix := day.Format("2006-01-02")
	names := make(map[string]string)
	out := make([]ports.UpstreamOrder, 0)
	for _, o := range raw {
		if !strings.HasPrefix(string(o.DateAdd), prefix) {
			continue
		}
		out = append(out, c.convert(ctx, o, day.Location(), names))
	}
	return out, nil
}

func (c *Client) convert(ctx context.Context, o orderPayload, loc *time.Location, names map[string]string) ports.UpstreamOrder {
	customerID := string(o.CustomerID)
	name, ok := names[customerID]
	if !ok {
		name = c.customerName(ctx, customerID)
		names[customerID] = name
	}

	placedAt, err := time.ParseInLocation(dateLayout, string(o.DateAdd), loc)
	if err != nil {
		c.logger.Debug("unparseable storefront date", zap.String("date_add", string(o.DateAdd)))
	}

	products := make([]ports.UpstreamProduct, 0, len(o.Associations.OrderRows))
	for _, row := range o.Associations.OrderRows {
		qty, _ := strconv.Atoi(string(row.Quantity))
		products = append(products, ports.UpstreamProduct{
			Name:      orDefault(string(row.ProductName), NotAvailable),
			Quantity:  qty,
			UnitPrice: orDefault(string(row.UnitPrice), "0.00"),
		})
	}

	return ports.UpstreamOrder{
		ID:           string(o.ID),
		Reference:    string(o.Reference),
		CustomerName: name,
		Status:       string(o.CurrentState),
		Payment:      string(o.Payment),
		TotalPaid:    string(o.TotalPaid),
		PlacedAt:     placedAt,
		Products:     products,
	}
}

// customerName looks a customer up. Any failure degrades to NotAvailable.
func (c *Client) customerName(ctx context.Context, id string) string {
	if id == "" || id == "0" {
		return NotAvailable
	}
	body, err := c.get(ctx, "/api/customers/"+url.PathEscape(id), nil)
	if err != nil {
		c.logger.Warn("storefront customer lookup failed", zap.String("customer_id", id), zap.Error(err))
		return NotAvailable
	}

	var payload struct {
		Customer struct {
			FirstName flexString `json:"firstname"`
			LastName  flexString `json:"lastname"`
		} `json:"customer"`
	}
	if err = json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("storefront customer payload unreadable", zap.String("customer_id", id), zap.Error(err))
		return NotAvailable
	}
	name := strings.TrimSpace(string(payload.Customer.FirstName) + " " + string(payload.Customer.LastName))
	return orDefault(name, NotAvailable)
}

// get performs one GET. Client errors are wrapped as permanent so the retry
// policy gives up on them immediately.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	q.Set("output_format", "JSON")
	q.Set("ws_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("%s returned %d", path, resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, backoff.Permanent(statusErr)
		}
		return nil, statusErr
	}
	return body, nil
}

type orderPayload struct {
	ID           flexString `json:"id"`
	Reference    flexString `json:"reference"`
	CustomerID   flexString `json:"id_customer"`
	CurrentState flexString `json:"current_state"`
	Payment      flexString `json:"payment"`
	TotalPaid    flexString `json:"total_paid_tax_incl"`
	DateAdd      flexString `json:"date_add"`
	Associations struct {
		OrderRows []struct {
			ProductName flexString `json:"product_name"`
			Quantity    flexString `json:"product_quantity"`
			UnitPrice   flexString `json:"unit_price_tax_incl"`
		} `json:"order_rows"`
	} `json:"associations"`
}

// decodeOrders accepts {"orders": [...]} and the bare [] the webservice
// sends when there is nothing to list.
func decodeOrders(body []byte) ([]orderPayload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) {
		return nil, nil
	}
	var payload struct {
		Orders []orderPayload `json:"orders"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return payload.Orders, nil
}

// flexString decodes a JSON string, number, boolean or null into its textual form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		*f = flexString(data)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
