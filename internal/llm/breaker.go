package llm

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"
)

// BreakerGenerator stops calling a backend that keeps failing. While the
// breaker is open Generate fails immediately with gobreaker.ErrOpenState.
type BreakerGenerator struct {
	next TextGenerator
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerGenerator wraps next in a circuit breaker
func NewBreakerGenerator(next TextGenerator, settings BreakerSettings) *BreakerGenerator {
	if settings.ConsecutiveFailures == 0 {
		settings = DefaultBreakerSettings()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "backend", name, "from", from.String(), "to", to.String())
		},
	})

	return &BreakerGenerator{next: next, cb: cb}
}

// Generate forwards to the wrapped backend unless the breaker is open
func (b *BreakerGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Name returns the wrapped backend name
func (b *BreakerGenerator) Name() string {
	return b.next.Name()
}

// State returns the current breaker state
func (b *BreakerGenerator) State() gobreaker.State {
	return b.cb.State()
}
