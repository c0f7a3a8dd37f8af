package service

import (
	"context"
	"sync"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
)

// Pending is a purchase waiting on the simulated payment delay. Until the
// delay elapses it can be cancelled; once the commit has started it runs to
// completion.
type Pending struct {
	done   chan struct{}
	cancel chan struct{}

	mu        sync.Mutex
	started   bool
	cancelled bool

	payment *models.Payment
	err     error
}

func startPending(delay time.Duration, commit func() (*models.Payment, error)) *Pending {
	p := &Pending{
		done:   make(chan struct{}),
		cancel: make(chan struct{}),
	}
	go p.run(delay, commit)
	return p
}

func (p *Pending) run(delay time.Duration, commit func() (*models.Payment, error)) {
	defer close(p.done)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-p.cancel:
		p.err = ErrPurchaseCancelled
		return
	}

	p.mu.Lock()
	if p.cancelled {
		p.mu.Unlock()
		p.err = ErrPurchaseCancelled
		return
	}
	p.started = true
	p.mu.Unlock()

	p.payment, p.err = commit()
}

// Cancel stops the purchase if its commit has not started and reports whether
// it is now cancelled.
func (p *Pending) Cancel() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return false
	}
	if !p.cancelled {
		p.cancelled = true
		close(p.cancel)
	}
	return true
}

// Done is closed once the purchase has committed, failed or been cancelled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the purchase finishes or ctx ends. Giving up on ctx does
// not cancel the purchase.
func (p *Pending) Wait(ctx context.Context) (*models.Payment, error) {
	select {
	case <-p.done:
		return p.payment, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
