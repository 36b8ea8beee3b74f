package worker_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tutorstack.app/api/internal/worker"
)

type mockOrgPurger struct {
	mu        sync.Mutex
	readyFn   func(ctx context.Context) ([]int64, error)
	purgeFn   func(ctx context.Context, orgID int64) error
	purgedIDs []int64
}

func (m *mockOrgPurger) OrgsReadyForPurge(ctx context.Context) ([]int64, error) {
	if m.readyFn != nil {
		return m.readyFn(ctx)
	}
	return nil, nil
}

func (m *mockOrgPurger) HardDelete(ctx context.Context, orgID int64) error {
	m.mu.Lock()
	m.purgedIDs = append(m.purgedIDs, orgID)
	m.mu.Unlock()
	if m.purgeFn != nil {
		return m.purgeFn(ctx, orgID)
	}
	return nil
}

func (m *mockOrgPurger) purged() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.purgedIDs...)
}

var _ = Describe("Purger", func() {
	var (
		purger *worker.Purger
		mock   *mockOrgPurger
		clock  *clockwork.FakeClock
		ctx    context.Context
		cancel context.CancelFunc
	)

	cfg := worker.PurgerConfig{
		Interval:     time.Hour,
		ErrorBackoff: time.Minute,
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		mock = &mockOrgPurger{}
		clock = clockwork.NewFakeClock()
	})

	AfterEach(func() {
		cancel()
	})

	It("purges every ready org on the first cycle", func() {
		mock.readyFn = func(_ context.Context) ([]int64, error) {
			return []int64{100, 101, 102}, nil
		}
		purger = worker.NewPurger(mock, cfg, clock)

		go purger.Run(ctx)
		Eventually(mock.purged).Should(Equal([]int64{100, 101, 102}))
		purger.Stop()
	})

	It("keeps purging the rest when one org fails", func() {
		mock.readyFn = func(_ context.Context) ([]int64, error) {
			return []int64{100, 101, 102}, nil
		}
		mock.purgeFn = func(_ context.Context, orgID int64) error {
			if orgID == 101 {
				return errors.New("retention not expired")
			}
			return nil
		}
		purger = worker.NewPurger(mock, cfg, clock)

		go purger.Run(ctx)
		Eventually(mock.purged).Should(Equal([]int64{100, 101, 102}))
		purger.Stop()
	})

	It("survives a panicking purge", func() {
		mock.readyFn = func(_ context.Context) ([]int64, error) {
			return []int64{100, 101}, nil
		}
		mock.purgeFn = func(_ context.Context, orgID int64) error {
			if orgID == 100 {
				panic("boom")
			}
			return nil
		}
		purger = worker.NewPurger(mock, cfg, clock)

		go purger.Run(ctx)
		Eventually(mock.purged).Should(Equal([]int64{100, 101}))
		purger.Stop()
	})

	It("runs another cycle after the interval elapses", func() {
		var mu sync.Mutex
		cycles := 0
		mock.readyFn = func(_ context.Context) ([]int64, error) {
			mu.Lock()
			cycles++
			mu.Unlock()
			return nil, nil
		}
		cycleCount := func() int {
			mu.Lock()
			defer mu.Unlock()
			return cycles
		}
		purger = worker.NewPurger(mock, cfg, clock)

		go purger.Run(ctx)
		Eventually(cycleCount).Should(Equal(1))

		clock.BlockUntil(1)
		clock.Advance(cfg.Interval)
		Eventually(cycleCount).Should(Equal(2))
		purger.Stop()
	})

	It("stops cleanly", func() {
		purger = worker.NewPurger(mock, cfg, clock)

		done := make(chan struct{})
		go func() {
			purger.Run(ctx)
			close(done)
		}()
		purger.Stop()
		Eventually(done).Should(BeClosed())
	})
})
