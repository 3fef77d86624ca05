package driver_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavegrid/internal/driver"
	"github.com/san-kum/wavegrid/internal/wave"
)

type fakeTicker struct {
	interval time.Duration
	c        chan time.Time
	stopped  bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.stopped = true }

// manualClock records every ticker the driver arms. Tests fire ticks by hand.
type manualClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
	// live counts tickers armed and not yet stopped at the moment each new
	// ticker was armed.
	live []int
}

func (m *manualClock) factory(d time.Duration) driver.Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tickers {
		if !t.stopped {
			n++
		}
	}
	m.live = append(m.live, n)
	t := &fakeTicker{interval: d, c: make(chan time.Time)}
	m.tickers = append(m.tickers, t)
	return t
}

func (m *manualClock) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

func (m *manualClock) latest() *fakeTicker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickers[len(m.tickers)-1]
}

var _ = Describe("Driver", func() {
	var (
		sim    *wave.Simulator
		clock  *manualClock
		d      *driver.Driver
		ctx    context.Context
		cancel context.CancelFunc
		done   chan error
	)

	start := func(opts ...wave.Option) {
		var err error
		sim, err = wave.New(opts...)
		Expect(err).NotTo(HaveOccurred())
		clock = &manualClock{}
		d = driver.New(sim, driver.WithTickerFactory(clock.factory))
		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() { done <- d.Run(ctx) }()
	}

	fire := func() {
		t := clock.latest()
		Eventually(t.c).Should(BeSent(time.Now()))
	}

	snapshot := func() wave.Snapshot {
		snap, err := d.Snapshot(ctx)
		Expect(err).NotTo(HaveOccurred())
		return snap
	}

	AfterEach(func() {
		cancel()
		Eventually(done).Should(Receive())
	})

	Context("when running", func() {
		BeforeEach(func() { start() })

		It("arms one ticker at the simulator interval", func() {
			Eventually(clock.count).Should(Equal(1))
			Expect(clock.latest().interval).To(Equal(wave.DefaultInterval))
		})

		It("ticks once per trigger", func() {
			Eventually(clock.count).Should(Equal(1))
			fire()
			fire()
			fire()
			snap := snapshot()
			Expect(snap.Ticks).To(BeEquivalentTo(3))
			Expect(snap.Position).To(Equal(3))
		})

		It("stops the previous ticker before arming a new one on speed change", func() {
			Eventually(clock.count).Should(Equal(1))
			first := clock.latest()

			Expect(d.SetSpeed(ctx, 150)).To(Succeed())
			Eventually(clock.count).Should(Equal(2))

			Expect(first.stopped).To(BeTrue())
			Expect(clock.latest().interval).To(Equal(150 * time.Millisecond))
			Expect(clock.live).To(Equal([]int{0, 0}))
		})

		It("keeps the ticker when the speed is unchanged", func() {
			Eventually(clock.count).Should(Equal(1))
			Expect(d.SetSpeed(ctx, 100)).To(Succeed())
			snapshot()
			Expect(clock.count()).To(Equal(1))
		})

		It("rejects a non-positive speed", func() {
			Eventually(clock.count).Should(Equal(1))
			Expect(d.SetSpeed(ctx, 0)).To(MatchError(wave.ErrInvalidInterval))
			Expect(clock.count()).To(Equal(1))
		})

		It("freezes while paused and resumes on play", func() {
			Eventually(clock.count).Should(Equal(1))
			fire()

			Expect(d.Pause(ctx)).To(Succeed())
			before := snapshot()
			Expect(before.Running).To(BeFalse())
			Expect(clock.latest().stopped).To(BeTrue())

			Consistently(func() uint64 { return snapshot().Ticks }, 50*time.Millisecond).
				Should(Equal(before.Ticks))
			Expect(snapshot().Grid).To(Equal(before.Grid))

			Expect(d.Play(ctx)).To(Succeed())
			Eventually(clock.count).Should(Equal(2))
			fire()
			Expect(snapshot().Ticks).To(Equal(before.Ticks + 1))
		})

		It("clears the grid on reset without moving the front", func() {
			Eventually(clock.count).Should(Equal(1))
			fire()
			fire()

			Expect(d.Reset(ctx)).To(Succeed())
			snap := snapshot()
			Expect(snap.Brightness()).To(BeZero())
			Expect(snap.Position).To(Equal(2))
			Expect(snap.Running).To(BeTrue())
			Expect(clock.count()).To(Equal(1))
		})
	})

	Context("when started paused", func() {
		BeforeEach(func() { start(wave.WithPaused()) })

		It("arms no ticker until play", func() {
			Expect(snapshot().Running).To(BeFalse())
			Expect(clock.count()).To(BeZero())

			Expect(d.Reset(ctx)).To(Succeed())
			Eventually(clock.count).Should(Equal(1))
		})
	})

	Context("after shutdown", func() {
		BeforeEach(func() { start() })

		It("stops the ticker and refuses commands", func() {
			Eventually(clock.count).Should(Equal(1))
			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
			done <- nil

			Expect(clock.latest().stopped).To(BeTrue())
			Expect(d.Play(context.Background())).To(MatchError(driver.ErrNotRunning))
		})
	})
})
