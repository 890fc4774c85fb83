package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var errUpstream = errors.New("upstream failed")

func fail() error    { return errUpstream }
func succeed() error { return nil }

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cb := NewCircuitBreaker(3, time.Minute, WithClock(clock.Now))

	for i := 0; i < 3; i++ {
		if err := cb.Call(fail); !errors.Is(err, errUpstream) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}

	called := false
	err := cb.Call(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("function should not run while open")
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)

	cb.Call(fail)
	cb.Call(succeed)
	cb.Call(fail)

	if cb.State() != StateClosed {
		t.Errorf("non-consecutive failures should not open, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	tests := []struct {
		name  string
		probe func() error
		want  State
	}{
		{name: "probe succeeds", probe: succeed, want: StateClosed},
		{name: "probe fails", probe: fail, want: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Unix(1000, 0)}
			cb := NewCircuitBreaker(1, 30*time.Second, WithClock(clock.Now))

			cb.Call(fail)
			if cb.State() != StateOpen {
				t.Fatalf("expected open, got %s", cb.State())
			}

			clock.Advance(31 * time.Second)
			cb.Call(tt.probe)

			if cb.State() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cb.State())
			}
		})
	}
}

func TestCircuitBreaker_SingleProbeInHalfOpen(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cb := NewCircuitBreaker(1, time.Second, WithClock(clock.Now))
	cb.Call(fail)
	clock.Advance(2 * time.Second)

	err := cb.Call(func() error {
		if cb.State() != StateHalfOpen {
			t.Errorf("expected half-open during probe, got %s", cb.State())
		}
		if err := cb.Call(succeed); !errors.Is(err, ErrTooManyRequests) {
			t.Errorf("expected ErrTooManyRequests for concurrent probe, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("expected closed, got %s", cb.State())
	}
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cb := NewCircuitBreaker(1, time.Second,
		WithClock(clock.Now),
		WithStateChange(func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		}),
	)

	cb.Call(fail)
	clock.Advance(2 * time.Second)
	cb.Call(succeed)

	want := []string{"closed->open", "open->half-open", "half-open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("expected %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Hour)
	cb.Call(fail)
	cb.Reset()

	state, failures, _ := cb.Stats()
	if state != StateClosed || failures != 0 {
		t.Errorf("expected closed with 0 failures, got %s/%d", state, failures)
	}
}
