package port

import "context"

// RateProvider returns the current USD sell rate in BRL.
type RateProvider interface {
	CurrentRate(ctx context.Context) (float64, error)
}
