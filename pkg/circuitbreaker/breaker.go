package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker"
)

// NewCircuitBreaker trips after 60% of at least 3 requests fail within a
// minute. isSuccessful decides which errors count against the breaker; nil
// means every error does.
func NewCircuitBreaker(nameof string, isSuccessful func(err error) bool) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:         nameof,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      60 * time.Second,
		IsSuccessful: isSuccessful,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}
	return gobreaker.NewCircuitBreaker(settings)
}
