package health

import "context"

// StorePinger checks document store connectivity.
type StorePinger interface {
	Ping(ctx context.Context) error
}
