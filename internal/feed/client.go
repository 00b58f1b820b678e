// Package feed is the HTTP client for the paginated news endpoint.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/timmy/newsdeck/internal/domain"
	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/pager"
)

// Client fetches pages from GET <endpoint>?offset=<int>&limit=<int>.
// It does not retry; retry policy belongs to the caller.
type Client struct {
	client   *resty.Client
	endpoint string
	validate *validator.Validate
	log      *logger.Logger
}

type options struct {
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	log        *logger.Logger
}

// Option customizes a Client at construction time.
type Option func(*options)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option { return func(o *options) { o.userAgent = ua } }

// WithHTTPClient replaces the *http.Client resty sends requests through.
func WithHTTPClient(hc *http.Client) Option { return func(o *options) { o.httpClient = hc } }

// WithLogger sets the logger used for request reporting.
func WithLogger(l *logger.Logger) Option { return func(o *options) { o.log = l } }

// NewClient creates a feed client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	o := options{
		timeout: 10 * time.Second,
		log:     logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var client *resty.Client
	if o.httpClient != nil {
		client = resty.NewWithClient(o.httpClient)
	} else {
		client = resty.New()
	}
	client.SetHeader("Accept", "application/json")
	if o.timeout > 0 {
		client.SetTimeout(o.timeout)
	}
	if o.userAgent != "" {
		client.SetHeader("User-Agent", o.userAgent)
	}

	return &Client{
		client:   client,
		endpoint: endpoint,
		validate: validator.New(),
		log: o.log.WithFields(logger.Fields{
			logger.FieldComponent: "feed",
			logger.FieldEndpoint:  endpoint,
		}),
	}
}

// Endpoint returns the URL pages are fetched from.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchPage retrieves the items at cursor in server order.
// Errors are *TransportError or *DecodeError.
func (c *Client) FetchPage(ctx context.Context, cursor pager.Cursor) ([]domain.NewsItem, error) {
	if !cursor.Valid() {
		return nil, fmt.Errorf("%w: %s", pager.ErrInvalidCursor, cursor)
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"offset": strconv.Itoa(cursor.Offset),
			"limit":  strconv.Itoa(cursor.Limit),
		}).
		Get(c.endpoint)

	requestURL := c.endpoint
	if resp != nil && resp.RawResponse != nil && resp.RawResponse.Request != nil {
		requestURL = resp.RawResponse.Request.URL.String()
	}

	if err != nil {
		return nil, &TransportError{URL: requestURL, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &TransportError{
			URL:        requestURL,
			StatusCode: resp.StatusCode(),
			Body:       snippet(resp.Body()),
			Err:        errors.New(http.StatusText(resp.StatusCode())),
		}
	}

	items, err := c.decode(resp.Body())
	if err != nil {
		return nil, &DecodeError{URL: requestURL, Body: snippet(resp.Body()), Err: err}
	}

	c.log.WithFields(logger.Fields{
		logger.FieldOffset:     cursor.Offset,
		logger.FieldLimit:      cursor.Limit,
		logger.FieldCount:      len(items),
		logger.FieldStatus:     resp.StatusCode(),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debug("fetched news page")

	return items, nil
}

// decode requires a JSON array whose elements all carry a title. The other
// fields are taken as served; a single odd item must not block the page.
func (c *Client) decode(body []byte) ([]domain.NewsItem, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array of news items")
	}

	var items []domain.NewsItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if err := c.validate.Var(items[i].Title, "required"); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	if items == nil {
		items = []domain.NewsItem{}
	}
	return items, nil
}
