package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ErrDeclined is returned when a charge does not go through.
var ErrDeclined = errors.New("payment declined")

// Gateway charges an amount and returns a transaction id.
type Gateway interface {
	Charge(ctx context.Context, amount float64) (string, error)
}

// failureRate is the fraction of simulated charges that are declined.
const failureRate = 0.1

// SimulatedGateway stands in for a real payment provider. Outcomes are drawn
// from the injected randomness source so tests can force either result.
type SimulatedGateway struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewSimulatedGateway(src rand.Source) *SimulatedGateway {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &SimulatedGateway{
		rng: rand.New(src),
		now: time.Now,
	}
}

func (g *SimulatedGateway) Charge(_ context.Context, _ float64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rng.Float64() < failureRate {
		return "", ErrDeclined
	}
	return fmt.Sprintf("TXN%d%d", g.now().UnixMilli(), g.rng.Intn(1000)), nil
}
