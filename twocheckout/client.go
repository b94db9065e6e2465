package twocheckout

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Error code the Admin API uses for "no applicable records". List operations
// downgrade it to an empty result.
const noRecordsCode = "203"

// Config holds the credentials and endpoints for a 2Checkout vendor account.
type Config struct {
	SellerID   string // vendor account number, the "sid" of the checkout redirect
	SecretWord string // shared secret used for return/INS hash validation
	Username   string // Admin API login
	Password   string

	// BaseURL overrides the gateway host, mainly for tests. When empty the
	// production host is used, or the sandbox host when Sandbox is set.
	BaseURL string
	Sandbox bool

	Timeout time.Duration

	// Currencies and Languages override the built-in 2Checkout support
	// tables, for accounts provisioned with a different set.
	Currencies []string
	Languages  map[string]string
}

// DefaultConfig returns a configuration with the production endpoints and a
// 30 second timeout.
func DefaultConfig() *Config {
	return &Config{Timeout: 30 * time.Second}
}

// Client is a 2Checkout Admin API and hosted checkout client.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client with its own HTTP client honouring
// Config.Timeout.
func NewClient(config *Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     zerolog.Nop(),
	}
}

// NewClientWithHTTPClient creates a client on top of a caller-supplied HTTP
// client, e.g. one wrapped with instrumentation.
func NewClientWithHTTPClient(config *Config, httpClient *http.Client) *Client {
	return &Client{config: config, httpClient: httpClient, logger: zerolog.Nop()}
}

// SetLogger attaches a logger; request/response pairs are recorded at debug
// level. Without one the client stays silent.
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// SetVendorCredentials replaces the vendor id and secret word. Callers must
// not change credentials while a call is in flight.
func (c *Client) SetVendorCredentials(sellerID, secretWord string) {
	c.config.SellerID = sellerID
	c.config.SecretWord = secretWord
}

// SetLoginCredentials replaces the Admin API login.
func (c *Client) SetLoginCredentials(username, password string) {
	c.config.Username = username
	c.config.Password = password
}

// SellerID returns the configured vendor account number.
func (c *Client) SellerID() string { return c.config.SellerID }

func (c *Client) host() string {
	host := strings.TrimSpace(c.config.BaseURL)
	if host == "" {
		if c.config.Sandbox {
			return "https://sandbox.2checkout.com"
		}
		return "https://www.2checkout.com"
	}
	return strings.TrimRight(host, "/")
}

func (c *Client) apiURL(path string) string {
	return c.host() + "/api" + path
}

// doRequest performs one Admin API round-trip: GET parameters go on the
// query string, POST parameters in a form body. The response is unwrapped
// before being returned.
func (c *Client) doRequest(ctx context.Context, method, path string, params Params) (map[string]any, error) {
	endpoint := c.apiURL(path)

	var req *http.Request
	var err error
	if method == http.MethodPost {
		form := url.Values{}
		for key, value := range params {
			form.Set(key, paramString(value))
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err == nil && len(params) > 0 {
			query := req.URL.Query()
			for key, value := range params {
				query.Set(key, paramString(value))
			}
			req.URL.RawQuery = query.Encode()
		}
	}
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.config.Username, c.config.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.unwrap(req, resp)
}

// ListPayments retrieves past payments made to the vendor account.
func (c *Client) ListPayments(ctx context.Context) ([]map[string]any, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, "/acct/list_payments", nil)
	if err != nil {
		return nil, err
	}
	return sliceOfMaps(payload["payments"]), nil
}

// ListSales retrieves a summary of sales, optionally filtered and paged.
// The gateway reports an error when no sale matches; that case is returned
// as an empty slice instead.
func (c *Client) ListSales(ctx context.Context, params Params) ([]map[string]any, error) {
	params, err := checkParams(params, nil, []string{
		"sale_id", "invoice_id", "customer_name", "customer_email",
		"customer_phone", "vendor_product_id", "ccard_first6", "ccard_last2",
		"sale_date_begin", "sale_date_end", "declined_recurrings",
		"active_recurrings", "refunded", "cur_page", "pagesize", "sort_col",
		"sort_dir",
	})
	if err != nil {
		return nil, err
	}

	payload, err := c.doRequest(ctx, http.MethodGet, "/sales/list_sales", params)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == noRecordsCode {
			return []map[string]any{}, nil
		}
		return nil, err
	}
	return sliceOfMaps(payload["sale_summary"]), nil
}

// DetailSale retrieves a single sale by its sale id.
func (c *Client) DetailSale(ctx context.Context, saleID string) (map[string]any, error) {
	return c.DetailSaleParams(ctx, Params{"sale_id": saleID})
}

// DetailSaleParams is the mapping form of DetailSale, for callers that
// already hold a parameter set.
func (c *Client) DetailSaleParams(ctx context.Context, params Params) (map[string]any, error) {
	params, err := checkParams(params, []string{"sale_id"}, nil)
	if err != nil {
		return nil, err
	}
	payload, err := c.doRequest(ctx, http.MethodGet, "/sales/detail_sale", params)
	if err != nil {
		return nil, err
	}
	return mapValue(payload["sale"]), nil
}

// CommentOptions control who receives a copy of a sale comment.
type CommentOptions struct {
	CCVendor   bool
	CCCustomer bool
}

// CreateComment adds a comment to a sale. A nil error is the success
// signal; the endpoint returns no payload of interest.
func (c *Client) CreateComment(ctx context.Context, saleID, comment string, opts *CommentOptions) error {
	params := Params{"sale_id": saleID, "sale_comment": comment}
	if opts != nil {
		if opts.CCVendor {
			params["cc_vendor"] = true
		}
		if opts.CCCustomer {
			params["cc_customer"] = true
		}
	}

	params, err := checkParams(params, []string{"sale_id", "sale_comment"}, []string{"cc_vendor", "cc_customer"})
	if err != nil {
		return err
	}
	_, err = c.doRequest(ctx, http.MethodPost, "/sales/create_comment", params)
	return err
}

// ProductDetails retrieves a single product by its 2Checkout product id.
func (c *Client) ProductDetails(ctx context.Context, productID string) (map[string]any, error) {
	params, err := checkParams(Params{"product_id": productID}, []string{"product_id"}, nil)
	if err != nil {
		return nil, err
	}
	payload, err := c.doRequest(ctx, http.MethodGet, "/products/detail_product", params)
	if err != nil {
		return nil, err
	}
	return mapValue(payload["product"]), nil
}

// ListProducts retrieves the products of the account. The raw payload is
// returned because callers page through both the products and the
// pagination block.
func (c *Client) ListProducts(ctx context.Context, params Params) (map[string]any, error) {
	params, err := checkParams(params, nil, []string{
		"vendor_product_id", "cur_page", "pagesize", "sort_col", "sort_dir",
	})
	if err != nil {
		return nil, err
	}
	return c.doRequest(ctx, http.MethodGet, "/products/list_products", params)
}

// VendorProductDetails resolves a product by the vendor-assigned reference.
// ErrProductNotFound is returned when the reference matches no product or is
// ambiguous.
func (c *Client) VendorProductDetails(ctx context.Context, vendorProductID string) (map[string]any, error) {
	payload, err := c.ListProducts(ctx, Params{ParamVendorProductID: vendorProductID})
	if err != nil {
		return nil, err
	}
	products := sliceOfMaps(payload["products"])
	if len(products) != 1 {
		return nil, ErrProductNotFound
	}
	return products[0], nil
}

func sliceOfMaps(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func mapValue(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
