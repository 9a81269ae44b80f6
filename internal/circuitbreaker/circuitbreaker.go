// Package circuitbreaker protects outbound payment-gateway calls. After a run
// of consecutive failures the breaker opens and rejects calls immediately;
// once the cool-down passes a single probe is let through, and a success
// closes the breaker again.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrOpen = errors.New("circuit breaker is open")

type Config struct {
	Name        string
	MaxFailures int           // consecutive failures before opening
	Cooldown    time.Duration // how long to stay open before probing
}

type Breaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration
	logger      *logrus.Logger

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

func New(cfg Config, logger *logrus.Logger) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{
		name:        cfg.Name,
		maxFailures: cfg.MaxFailures,
		cooldown:    cfg.Cooldown,
		logger:      logger,
	}
}

// Execute runs fn unless the breaker is open. The caller's error is returned
// as-is; ErrOpen is returned without invoking fn.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(err == nil)
	return err
}

// State returns the current state, accounting for cool-down expiry.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && time.Since(b.openedAt) >= b.cooldown {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(b.openedAt) < b.cooldown {
			return ErrOpen
		}
		b.state = StateHalfOpen
		b.probing = false
		fallthrough
	default: // half-open: admit exactly one probe
		if b.probing {
			return ErrOpen
		}
		b.probing = true
		return nil
	}
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		if b.state != StateClosed {
			b.transition(StateClosed)
		}
		b.failures = 0
		return
	}

	if b.state == StateHalfOpen {
		b.transition(StateOpen)
		return
	}

	b.failures++
	if b.failures >= b.maxFailures {
		b.transition(StateOpen)
	}
}

func (b *Breaker) transition(to State) {
	from := b.state
	b.state = to
	b.probing = false
	if to == StateOpen {
		b.openedAt = time.Now()
	}
	if b.logger != nil {
		b.logger.WithFields(logrus.Fields{
			"circuit_breaker": b.name,
			"from":            from.String(),
			"to":              to.String(),
		}).Warn("Circuit breaker state change")
	}
}
