// Package verdict turns fact-check and web-detection evidence into a
// heuristic fake-news verdict.
package verdict

import (
	"context"
	"time"

	"github.com/sells-group/fakecheck/internal/resilience"
	"github.com/sells-group/fakecheck/pkg/factcheck"
	"github.com/sells-group/fakecheck/pkg/vision"
)

const (
	providerFactCheck = "factcheck"
	providerVision    = "vision"
)

// Engine produces verdicts. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	facts    factcheck.Client
	vision   vision.Client
	rules    *Rules
	retry    resilience.RetryConfig
	breakers *resilience.Breakers

	factTimeout   time.Duration
	visionTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithFactCheck sets the claim search provider. Without one, every text
// check takes the no-evidence path.
func WithFactCheck(c factcheck.Client) Option {
	return func(e *Engine) {
		e.facts = c
	}
}

// WithVision sets the web-detection provider. Without one, image uploads get
// the unsupported-media verdict.
func WithVision(c vision.Client) Option {
	return func(e *Engine) {
		e.vision = c
	}
}

// WithRules overrides the default keyword and domain rules.
func WithRules(r *Rules) Option {
	return func(e *Engine) {
		if r != nil {
			e.rules = r
		}
	}
}

// WithRetry overrides the provider retry policy.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(e *Engine) {
		e.retry = cfg
	}
}

// WithBreakers shares a breaker registry with the caller.
func WithBreakers(b *resilience.Breakers) Option {
	return func(e *Engine) {
		if b != nil {
			e.breakers = b
		}
	}
}

// WithTimeouts bounds each provider lookup, retries included. Zero keeps the
// default.
func WithTimeouts(factCheckTimeout, visionTimeout time.Duration) Option {
	return func(e *Engine) {
		if factCheckTimeout > 0 {
			e.factTimeout = factCheckTimeout
		}
		if visionTimeout > 0 {
			e.visionTimeout = visionTimeout
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:         DefaultRules(),
		retry:         resilience.DefaultRetryConfig(),
		breakers:      resilience.NewBreakers(resilience.NewBreakerConfig(0, 0)),
		factTimeout:   10 * time.Second,
		visionTimeout: 15 * time.Second,
	}
	for _, o := range opts {
		o(e)
	}
	e.breakers.Get(providerFactCheck)
	e.breakers.Get(providerVision)
	return e
}

// ProviderStates reports the circuit state of each provider.
func (e *Engine) ProviderStates() map[string]string {
	return e.breakers.States()
}

func (e *Engine) retryFor(provider string) resilience.RetryConfig {
	cfg := e.retry
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.LogRetries(provider)
	}
	return cfg
}

func (e *Engine) searchClaims(ctx context.Context, query string) ([]factcheck.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, e.factTimeout)
	defer cancel()

	resp, err := resilience.Call(ctx, e.breakers.Get(providerFactCheck), e.retryFor(providerFactCheck),
		func(ctx context.Context) (*factcheck.SearchResponse, error) {
			return e.facts.Search(ctx, query)
		})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return resp.Claims, nil
}

func (e *Engine) detectWeb(ctx context.Context, img []byte) (*vision.WebDetection, error) {
	ctx, cancel := context.WithTimeout(ctx, e.visionTimeout)
	defer cancel()

	return resilience.Call(ctx, e.breakers.Get(providerVision), e.retryFor(providerVision),
		func(ctx context.Context) (*vision.WebDetection, error) {
			return e.vision.DetectWeb(ctx, img)
		})
}
