package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"tutorstack.app/api/common/logger"
)

// OrgPurger mirrors the purge surface of service.OrgLifecycleService -
// defined here to avoid import cycles.
type OrgPurger interface {
	OrgsReadyForPurge(ctx context.Context) ([]int64, error)
	HardDelete(ctx context.Context, orgID int64) error
}

type PurgerConfig struct {
	// Interval between successful purge cycles.
	Interval time.Duration

	// ErrorBackoff is the shorter wait after a cycle-level failure.
	ErrorBackoff time.Duration
}

// Purger is the background loop that hard-deletes organizations past
// their purge deadline. Each org is purged in its own transaction, so a
// failing tenant never blocks the others.
type Purger struct {
	lifecycle OrgPurger
	cfg       PurgerConfig
	clock     clockwork.Clock

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewPurger(lifecycle OrgPurger, cfg PurgerConfig, clock clockwork.Clock) *Purger {
	return &Purger{
		lifecycle: lifecycle,
		cfg:       cfg,
		clock:     clock,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run starts the purge loop. Blocks until Stop() is called or the context
// is cancelled.
func (p *Purger) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "worker.purger",
	})

	defer close(p.stoppedCh)

	slog.InfoContext(ctx, "purge scheduler started",
		"interval", p.cfg.Interval,
		"error_backoff", p.cfg.ErrorBackoff)

	for {
		wait := p.cfg.Interval
		if err := p.runCycle(ctx); err != nil {
			slog.ErrorContext(ctx, "purge cycle failed", "error", err)
			wait = p.cfg.ErrorBackoff
		}

		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			slog.InfoContext(ctx, "purge scheduler stopping")
			return
		case <-p.clock.After(wait):
		}
	}
}

// Stop signals the purger to stop gracefully.
func (p *Purger) Stop() {
	close(p.stopCh)
	<-p.stoppedCh
}

// runCycle purges every org past its deadline. Per-org failures are
// logged and counted; only a failure outside the per-org loop (the
// ready-query itself) is treated as systemic.
func (p *Purger) runCycle(ctx context.Context) error {
	orgIDs, err := p.lifecycle.OrgsReadyForPurge(ctx)
	if err != nil {
		return fmt.Errorf("listing orgs ready for purge: %w", err)
	}

	if len(orgIDs) == 0 {
		slog.DebugContext(ctx, "no orgs ready for purge")
		return nil
	}

	purged := 0
	failed := 0
	for _, orgID := range orgIDs {
		if err := p.purgeOne(ctx, orgID); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			failed++
			slog.ErrorContext(ctx, "org purge failed",
				"error", err,
				"org_id", orgID)
			continue
		}
		purged++
	}

	slog.InfoContext(ctx, "purge cycle finished",
		"ready", len(orgIDs),
		"purged", purged,
		"failed", failed)
	return nil
}

func (p *Purger) purgeOne(ctx context.Context, orgID int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.lifecycle.HardDelete(ctx, orgID)
}
