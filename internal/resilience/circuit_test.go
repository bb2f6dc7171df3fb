package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errProvider = errors.New("provider down")

func failCall(_ context.Context) (int, error) { return 0, errProvider }
func okCall(_ context.Context) (int, error)   { return 1, nil }

func TestCall_ClosedPassesThrough(t *testing.T) {
	b := NewBreaker("factcheck", BreakerConfig{})
	v, err := Call(context.Background(), b, fastRetry(1), okCall)
	if err != nil || v != 1 {
		t.Fatalf("unexpected result %d, %v", v, err)
	}
	if b.State() != Closed {
		t.Errorf("expected closed, got %s", b.State())
	}
}

func TestCall_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker("factcheck", BreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})
	for i := 0; i < 3; i++ {
		_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	}
	if b.State() != Open {
		t.Fatalf("expected open, got %s", b.State())
	}

	_, err := Call(context.Background(), b, fastRetry(1), func(_ context.Context) (int, error) {
		t.Error("should not be called while open")
		return 0, nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCall_SuccessResetsFailures(t *testing.T) {
	b := NewBreaker("vision", BreakerConfig{FailureThreshold: 2, ResetTimeout: time.Minute})
	_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	_, _ = Call(context.Background(), b, fastRetry(1), okCall)
	_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	if b.State() != Closed {
		t.Errorf("expected closed, got %s", b.State())
	}
}

func TestCall_HalfOpenTrialCall(t *testing.T) {
	now := time.Now()
	b := NewBreaker("vision", BreakerConfig{FailureThreshold: 1, ResetTimeout: 10 * time.Second})
	b.now = func() time.Time { return now }

	_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	if b.State() != Open {
		t.Fatalf("expected open, got %s", b.State())
	}

	now = now.Add(11 * time.Second)
	if b.State() != HalfOpen {
		t.Fatalf("expected half-open, got %s", b.State())
	}

	if _, err := Call(context.Background(), b, fastRetry(1), okCall); err != nil {
		t.Fatalf("trial call failed: %v", err)
	}
	if b.State() != Closed {
		t.Errorf("expected closed after trial call, got %s", b.State())
	}
}

func TestCall_HalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	b := NewBreaker("vision", BreakerConfig{FailureThreshold: 1, ResetTimeout: 10 * time.Second})
	b.now = func() time.Time { return now }

	_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	now = now.Add(11 * time.Second)
	_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	if b.State() != Open {
		t.Errorf("expected open after failed trial call, got %s", b.State())
	}
}

func TestCall_CanceledDoesNotTrip(t *testing.T) {
	b := NewBreaker("factcheck", BreakerConfig{FailureThreshold: 1, ResetTimeout: time.Minute})
	_, _ = Call(context.Background(), b, fastRetry(1), func(_ context.Context) (int, error) {
		return 0, context.Canceled
	})
	if b.State() != Closed {
		t.Errorf("expected closed, got %s", b.State())
	}
}

func TestCall_NilBreaker(t *testing.T) {
	v, err := Call(context.Background(), nil, fastRetry(1), okCall)
	if err != nil || v != 1 {
		t.Fatalf("unexpected result %d, %v", v, err)
	}
}

func TestBreakers_RegistryAndStates(t *testing.T) {
	r := NewBreakers(NewBreakerConfig(1, 60))
	if r.Get("factcheck") != r.Get("factcheck") {
		t.Error("expected the same breaker for the same provider")
	}
	_, _ = Call(context.Background(), r.Get("vision"), fastRetry(1), failCall)

	states := r.States()
	if states["factcheck"] != "closed" {
		t.Errorf("expected factcheck closed, got %q", states["factcheck"])
	}
	if states["vision"] != "open" {
		t.Errorf("expected vision open, got %q", states["vision"])
	}
}

func TestNewBreakerConfig_Defaults(t *testing.T) {
	cfg := NewBreakerConfig(0, 0)
	if cfg.FailureThreshold != 5 || cfg.ResetTimeout != 30*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestCall_HalfOpenAdmitsSingleTrialCall(t *testing.T) {
	now := time.Now()
	b := NewBreaker("factcheck", BreakerConfig{FailureThreshold: 1, ResetTimeout: 10 * time.Second})
	b.now = func() time.Time { return now }

	_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	now = now.Add(11 * time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := Call(context.Background(), b, fastRetry(1), func(_ context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
		done <- err
	}()
	<-started

	_, err := Call(context.Background(), b, fastRetry(1), func(_ context.Context) (int, error) {
		t.Error("second caller should not reach the provider while a trial call is in flight")
		return 0, nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen for concurrent caller, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("trial call failed: %v", err)
	}
	if b.State() != Closed {
		t.Fatalf("expected closed after successful trial call, got %s", b.State())
	}
	if _, err := Call(context.Background(), b, fastRetry(1), okCall); err != nil {
		t.Fatalf("closed breaker rejected call: %v", err)
	}
}

func TestCall_CanceledTrialCallKeepsHalfOpen(t *testing.T) {
	now := time.Now()
	b := NewBreaker("vision", BreakerConfig{FailureThreshold: 1, ResetTimeout: 10 * time.Second})
	b.now = func() time.Time { return now }

	_, _ = Call(context.Background(), b, fastRetry(1), failCall)
	now = now.Add(11 * time.Second)

	_, _ = Call(context.Background(), b, fastRetry(1), func(_ context.Context) (int, error) {
		return 0, context.Canceled
	})
	if b.State() != HalfOpen {
		t.Fatalf("expected half-open after canceled trial call, got %s", b.State())
	}
	if _, err := Call(context.Background(), b, fastRetry(1), okCall); err != nil {
		t.Fatalf("next trial call should be admitted: %v", err)
	}
	if b.State() != Closed {
		t.Errorf("expected closed, got %s", b.State())
	}
}
