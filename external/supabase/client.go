package supabase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/ImCuriosity/competition-recommendation/internal/platform/logging"
	"github.com/ImCuriosity/competition-recommendation/internal/platform/resilience"
	"github.com/ImCuriosity/competition-recommendation/internal/usecase"
)

const (
	restPathPrefix   = "/rest/v1/"
	defaultTimeout   = 10 * time.Second
	responseMaxBytes = 16 << 20
)

var errSupabaseTransient = crerr.New("supabase transient failure")

type ClientConfig struct {
	BaseURL string
	Key     string
	Timeout time.Duration
	Logger  *logging.Logger
	Breaker resilience.BreakerSettings
}

// Client talks to the Supabase PostgREST surface. Identical in-flight
// reads share one request, and repeated failures trip a breaker so a
// down store fails fast.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	key            string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.Breaker
	breakerEnabled bool
	flight         resilience.FlightGroup
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: responseMaxBytes,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		key:            strings.TrimSpace(cfg.Key),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewBreaker(cfg.Breaker),
		breakerEnabled: cfg.Breaker.Enabled,
	}
}

// GetJSON fetches rows from a table with the given PostgREST params and
// decodes the response into target.
func (c *Client) GetJSON(ctx context.Context, table string, params map[string]string, target any) error {
	raw, err := c.get(ctx, table, params)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, table string, params map[string]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.breakerEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "supabase breaker rejected request", "table", table)
			return nil, fmt.Errorf("%w: store is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	uri := c.buildURI(table, params)
	out, err, _ := c.flight.Do(uri, func() (any, error) {
		raw, reqErr := c.executeRequest(uri)
		if c.breakerEnabled {
			transient := reqErr != nil && crerr.Is(reqErr, errSupabaseTransient)
			c.breaker.Report(!transient)
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(uri string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		wrapped := fmt.Errorf("%w: send request: %v", usecase.ErrDependencyUnavailable, err)
		return nil, crerr.Mark(wrapped, errSupabaseTransient)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		base := fmt.Errorf("%w: store status=%d", usecase.ErrDependencyUnavailable, status)
		if status >= 500 || status == fasthttp.StatusTooManyRequests {
			return nil, crerr.Mark(base, errSupabaseTransient)
		}
		return nil, base
	}

	return append([]byte(nil), resp.Body()...), nil
}

// buildURI assembles the request URI with deterministically ordered
// params, so identical queries collapse in the flight group.
func (c *Client) buildURI(table string, params map[string]string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(c.baseURL)
	buf.WriteString(restPathPrefix)
	buf.WriteString(table)

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		if i == 0 {
			buf.WriteByte('?')
		} else {
			buf.WriteByte('&')
		}
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(params[key])
	}

	return buf.String()
}
