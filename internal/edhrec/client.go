package edhrec

import (
	"context"
	"net/http"
	"time"

	"edhrec-tracker/internal/telemetry"
	"edhrec-tracker/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("edhrec-tracker/internal/edhrec")

// DefaultOrigin is prefixed to the relative card paths found on commander pages.
const DefaultOrigin = "https://edhrec.com"

// Page is the outcome of a GET request.
type Page struct {
	URL    string
	Status int
	Body   string
}

type ClientOptions struct {
	// UserAgent overrides resty's default user agent when set.
	UserAgent string
	// Timeout of a single request, 0 means no timeout.
	Timeout time.Duration
	// CloudflareBypass wraps the transport with browser-like headers and TLS settings.
	CloudflareBypass bool
	// Tel receives request timings and transport failures, it may be nil.
	Tel telemetry.API
	// Dump receives a text dump of every exchange when debug logging is on, it may be nil.
	Dump restyutil.InstrumentOutput
}

type Client struct {
	http *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.Tel != nil {
		telemetry.InstrumentResty(client, opts.Tel)
	}
	restyutil.InstrumentClient(client, otel.Tracer("edhrec-tracker/internal/edhrec/http"), opts.Dump)

	return &Client{http: client}
}

// Fetch performs a GET request. Anything other than a 200 response is
// returned as a *FetchError alongside the page.
func (c *Client) Fetch(ctx context.Context, url string) (Page, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make request")
		return Page{URL: url}, &FetchError{URL: url, Err: err}
	}

	page := Page{
		URL:    url,
		Status: res.StatusCode(),
		Body:   string(res.Body()),
	}
	if page.Status != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected status code")
		return page, &FetchError{URL: url, Status: page.Status}
	}
	return page, nil
}
