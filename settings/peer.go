package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jpillora/backoff"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// ServiceSettingsPath is where a peer serves its service settings.
const ServiceSettingsPath = "/servicesettings"

// Peer is the server that hands out service settings defaults.
type Peer interface {
	FetchServiceSettings(ctx context.Context) (*ServiceSettings, error)
}

type PeerOption func(*HTTPPeer)

// WithPeerTimeout bounds each request. Zero, the default, means no timeout.
func WithPeerTimeout(d time.Duration) PeerOption {
	return func(p *HTTPPeer) {
		p.client.Timeout = d
	}
}

// WithPeerRetries retries a failed fetch up to n more times with jittered
// exponential backoff. The default is a single attempt.
func WithPeerRetries(n int) PeerOption {
	return func(p *HTTPPeer) {
		p.retries = n
	}
}

func WithPeerRatelimiter(limiter ratelimit.Limiter) PeerOption {
	return func(p *HTTPPeer) {
		p.limiter = limiter
	}
}

func WithPeerHTTPClient(c *http.Client) PeerOption {
	return func(p *HTTPPeer) {
		p.client = c
	}
}

// HTTPPeer fetches service settings with GET {baseURL}/servicesettings.
type HTTPPeer struct {
	endpoint *url.URL
	client   *http.Client
	retries  int
	limiter  ratelimit.Limiter
}

func NewHTTPPeer(baseURL string, opts ...PeerOption) (*HTTPPeer, error) {
	base, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid peer url: %w", err)
	}

	p := &HTTPPeer{
		endpoint: base.ResolveReference(&url.URL{Path: ServiceSettingsPath}),
		client:   &http.Client{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func (p *HTTPPeer) FetchServiceSettings(ctx context.Context) (*ServiceSettings, error) {
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	for attempt := 0; ; attempt++ {
		s, err := p.fetch(ctx)
		if err == nil || attempt >= p.retries {
			return s, err
		}

		d := b.Duration()
		log.
			WithFields(log.Fields{"error": err, "attempt": attempt + 1, "wait": d}).
			Debug("Fetching service settings failed, retrying")

		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (p *HTTPPeer) fetch(ctx context.Context) (*ServiceSettings, error) {
	if p.limiter != nil {
		p.limiter.Take()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error while creating service settings request: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while requesting service settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &PeerStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error while reading service settings: %w", err)
	}

	s := &ServiceSettings{}
	if err := json.Unmarshal(body, s); err != nil {
		return nil, fmt.Errorf("error while decoding service settings: %w", err)
	}
	s.Raw = json.RawMessage(body)

	return s, nil
}
