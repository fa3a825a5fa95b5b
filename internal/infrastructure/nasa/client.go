package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/astroview/astro-gateway/internal/core/domain"
	"github.com/astroview/astro-gateway/internal/infrastructure/resilience"
	"github.com/astroview/astro-gateway/internal/observability/metrics"
)

// DemoKey is the public key NASA hands out for experimentation; it carries
// much tighter upstream quotas than a registered key.
const DemoKey = "DEMO_KEY"

// Client proxies api.nasa.gov and the keyless image/video library. Calls
// against the keyed API share an outbound limiter so one burst of traffic
// cannot burn through the key's quota, and every operation sits behind its
// own circuit breaker.
type Client struct {
	baseURL       string
	imagesBaseURL string
	apiKey        string

	httpClient httpDoer
	limiter    *rate.Limiter
	executor   *resilience.Executor
	metrics    *metrics.Metrics
}

type Options struct {
	BaseURL       string
	ImagesBaseURL string
	APIKey        string
	Timeout       time.Duration
	LimitRPS      float64
	LimitBurst    int
	Resilience    resilience.Config
	Metrics       *metrics.Metrics
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.nasa.gov"
	}
	if opts.ImagesBaseURL == "" {
		opts.ImagesBaseURL = "https://images-api.nasa.gov"
	}
	if opts.APIKey == "" {
		opts.APIKey = DemoKey
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.LimitRPS <= 0 {
		opts.LimitRPS = 5
	}
	if opts.LimitBurst <= 0 {
		opts.LimitBurst = 10
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		imagesBaseURL: strings.TrimRight(opts.ImagesBaseURL, "/"),
		apiKey:        opts.APIKey,
		httpClient:    newHTTPClient(opts.Timeout),
		limiter:       rate.NewLimiter(rate.Limit(opts.LimitRPS), opts.LimitBurst),
		executor:      resilience.NewExecutor(opts.Resilience),
		metrics:       opts.Metrics,
	}
}

// DemoMode reports whether the client runs on the public demo key.
func (c *Client) DemoMode() bool {
	return c.apiKey == DemoKey
}

func (c *Client) APOD(ctx context.Context, date string) (json.RawMessage, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	return c.getKeyed(ctx, "apod", "/planetary/apod", params)
}

func (c *Client) MarsPhotos(ctx context.Context, rover string, sol, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("sol", strconv.Itoa(sol))
	params.Set("page", strconv.Itoa(page))
	path := fmt.Sprintf("/mars-photos/api/v1/rovers/%s/photos", url.PathEscape(rover))
	return c.getKeyed(ctx, "mars_photos", path, params)
}

func (c *Client) RoverManifest(ctx context.Context, rover string) (json.RawMessage, error) {
	path := fmt.Sprintf("/mars-photos/api/v1/rovers/%s", url.PathEscape(rover))
	return c.getKeyed(ctx, "rover_manifest", path, url.Values{})
}

func (c *Client) NEOFeed(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	return c.getKeyed(ctx, "neo_feed", "/neo/rest/v1/feed", params)
}

func (c *Client) SearchLibrary(ctx context.Context, query, mediaType string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	if mediaType != "" {
		params.Set("media_type", mediaType)
	}
	// The image/video library is keyless and unmetered; the key limiter
	// does not apply.
	return c.get(ctx, "library_search", c.imagesBaseURL+"/search", params)
}

func (c *Client) getKeyed(ctx context.Context, operation, path string, params url.Values) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nasa %s throttle: %w", operation, err)
	}
	params.Set("api_key", c.apiKey)
	return c.get(ctx, operation, c.baseURL+path, params)
}

func (c *Client) get(ctx context.Context, operation, endpoint string, params url.Values) (json.RawMessage, error) {
	start := time.Now()
	var body json.RawMessage
	err := c.executor.Execute(ctx, operation, func(ctx context.Context) error {
		var execErr error
		body, execErr = c.doGet(ctx, operation, endpoint, params)
		return execErr
	}, classifyUpstreamError)

	if c.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		c.metrics.RecordUpstreamRequest("nasa", operation, outcome, time.Since(start))
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstream, "nasa "+operation, err)
	}
	return body, nil
}
