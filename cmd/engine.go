package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/fakecheck/internal/config"
	"github.com/sells-group/fakecheck/internal/resilience"
	"github.com/sells-group/fakecheck/internal/verdict"
	"github.com/sells-group/fakecheck/pkg/factcheck"
	"github.com/sells-group/fakecheck/pkg/vision"
)

// newEngine wires provider clients, rules and resilience settings from
// configuration. Providers without a key are left out.
func newEngine(c *config.Config) (*verdict.Engine, error) {
	rules, err := verdict.NewRules(c.Verdict.SensationalPatterns, c.Verdict.TrustedDomains)
	if err != nil {
		return nil, err
	}

	opts := []verdict.Option{
		verdict.WithRules(rules),
		verdict.WithRetry(resilience.NewRetryConfig(
			c.Resilience.MaxAttempts,
			c.Resilience.InitialBackoffMs,
			c.Resilience.MaxBackoffMs,
		)),
		verdict.WithBreakers(resilience.NewBreakers(resilience.NewBreakerConfig(
			c.Resilience.FailureThreshold,
			c.Resilience.ResetTimeoutSecs,
		))),
		verdict.WithTimeouts(seconds(c.FactCheck.TimeoutSecs), seconds(c.Vision.TimeoutSecs)),
	}

	if c.FactCheck.Key != "" {
		opts = append(opts, verdict.WithFactCheck(factcheck.NewClient(c.FactCheck.Key,
			factcheck.WithBaseURL(c.FactCheck.BaseURL),
			factcheck.WithLanguageCode(c.FactCheck.LanguageCode),
			factcheck.WithLimiter(newLimiter("factcheck", c.FactCheck.RatePerSec)),
		)))
	} else {
		zap.L().Warn("fact-check key not set, text checks will rely on heuristics only")
	}

	if c.Vision.Key != "" {
		opts = append(opts, verdict.WithVision(vision.NewClient(c.Vision.Key,
			vision.WithBaseURL(c.Vision.BaseURL),
			vision.WithMaxResults(c.Vision.MaxResults),
			vision.WithLimiter(newLimiter("vision", c.Vision.RatePerSec)),
		)))
	} else {
		zap.L().Warn("vision key not set, image checks are disabled")
	}

	return verdict.New(opts...), nil
}

// newLimiter paces outbound calls to one provider. A non-positive rate
// disables pacing and returns a nil interface.
func newLimiter(provider string, perSec float64) limiter {
	if perSec <= 0 {
		return nil
	}
	return resilience.NewAdaptiveLimiter(provider, rate.Limit(perSec), int(perSec))
}

type limiter interface {
	Wait(ctx context.Context) error
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
