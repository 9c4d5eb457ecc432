package px6

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client represents a proxy6 API client. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient Doer
	userAgent  string
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new proxy6 client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	o := clientOptions{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		userAgent:  o.userAgent,
		limiter:    o.limiter,
		logger:     logger,
	}, nil
}

// BaseURL returns the API host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// requestURL builds {base}/api/{key}/{method}?{query}
func (c *Client) requestURL(key string, params Params) string {
	u := fmt.Sprintf("%s/api/%s/%s", c.baseURL, key, params.Method())
	if query := encodeQuery(params, escapeQueryValue); query != "" {
		u += "?" + query
	}
	return u
}

// redactURL replaces the request URL carried by a *url.Error, which holds
// the API key in its path.
func (c *Client) redactURL(err error, params Params) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.requestURL("***", params)
	}
	return err
}

// doRequest performs the GET request and returns the status code and body
func (c *Client) doRequest(ctx context.Context, params Params) (int, []byte, error) {
	method := params.Method()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, &TransportError{Method: method, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(c.apiKey, params), nil)
	if err != nil {
		return 0, nil, &TransportError{Method: method, Err: fmt.Errorf("failed to create request: %w", c.redactURL(err, params))}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method.String()).
		Str("url", c.requestURL("***", params)).
		Msg("Making px6 API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Method: method, Err: c.redactURL(err, params)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Method: method, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("method", method.String()).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Received px6 API response")

	return resp.StatusCode, body, nil
}

func call[T any](ctx context.Context, c *Client, params Params) (*T, error) {
	status, body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var out T
	if err := ParseResponse(status, body, &out); err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", params.Method().String()).
			Int("status", status).
			Msg("px6 API call failed")
		return nil, err
	}
	return &out, nil
}

// Ping verifies the API key by listing the available countries
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetCountry(ctx, GetCountryParams{})
	return err
}

// GetPrice returns the cost of an order for the given count, period and version
func (c *Client) GetPrice(ctx context.Context, params GetPriceParams) (*GetPriceResponse, error) {
	return call[GetPriceResponse](ctx, c, params)
}

// GetCount returns how many proxies are available to purchase in a country
func (c *Client) GetCount(ctx context.Context, params GetCountParams) (*GetCountResponse, error) {
	return call[GetCountResponse](ctx, c, params)
}

// GetCountry returns the countries available for purchase
func (c *Client) GetCountry(ctx context.Context, params GetCountryParams) (*GetCountryResponse, error) {
	return call[GetCountryResponse](ctx, c, params)
}

// GetProxy returns the account's proxies
func (c *Client) GetProxy(ctx context.Context, params GetProxyParams) (*GetProxyResponse, error) {
	return call[GetProxyResponse](ctx, c, params)
}

// SetType changes the protocol of the given proxies.
// If every proxy already has the requested type the API answers with ErrCodeUnknown.
func (c *Client) SetType(ctx context.Context, params SetTypeParams) (*SuccessResponse, error) {
	return call[SuccessResponse](ctx, c, params)
}

// SetDescription updates the technical comment of proxies
func (c *Client) SetDescription(ctx context.Context, params SetDescriptionParams) (*SetDescriptionResponse, error) {
	return call[SetDescriptionResponse](ctx, c, params)
}

// Buy purchases proxies
func (c *Client) Buy(ctx context.Context, params BuyParams) (*BuyResponse, error) {
	return call[BuyResponse](ctx, c, params)
}

// Prolong extends existing proxies
func (c *Client) Prolong(ctx context.Context, params ProlongParams) (*ProlongResponse, error) {
	return call[ProlongResponse](ctx, c, params)
}

// Delete deletes proxies
func (c *Client) Delete(ctx context.Context, params DeleteParams) (*DeleteResponse, error) {
	return call[DeleteResponse](ctx, c, params)
}

// Check checks the validity of a proxy
func (c *Client) Check(ctx context.Context, params CheckParams) (*CheckResponse, error) {
	return call[CheckResponse](ctx, c, params)
}

// IPAuth binds or removes IPs used for authorization
func (c *Client) IPAuth(ctx context.Context, params IPAuthParams) (*SuccessResponse, error) {
	return call[SuccessResponse](ctx, c, params)
}
