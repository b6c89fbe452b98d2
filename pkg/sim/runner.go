package sim

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iop0175/Roadmaker/pkg/config"
)

// Runner drives the tick loop against wall-clock time. Each tick runs to
// completion before the next begins; Stop blocks until the loop exits.
type Runner struct {
	state *State
	cfg   config.Config
	log   *logrus.Logger

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewRunner wires a runner to a state and config.
func NewRunner(state *State, cfg config.Config, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.New()
	}
	return &Runner{
		state:  state,
		cfg:    cfg,
		log:    log,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// State exposes the underlying simulation state for snapshot readers.
func (r *Runner) State() *State {
	return r.state
}

// Start launches the tick loop in its own goroutine.
func (r *Runner) Start() {
	go r.loop()
}

// Stop halts the loop and waits for the in-flight tick to finish.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	<-r.doneCh
}

func (r *Runner) loop() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.cfg.TickInterval())
	defer ticker.Stop()

	report := time.NewTicker(10 * time.Second)
	defer report.Stop()

	r.log.WithFields(logrus.Fields{
		"tick_rate":    r.cfg.TickRate,
		"max_vehicles": r.cfg.MaxVehicles,
	}).Info("simulation started")

	for {
		select {
		case <-r.stopCh:
			r.log.WithField("score", r.state.Score()).Info("simulation stopped")
			return
		case now := <-ticker.C:
			r.state.Tick(now)
		case <-report.C:
			r.log.WithFields(logrus.Fields{
				"score":           r.state.Score(),
				"vehicles":        r.state.VehicleCount(),
				"connected_homes": r.state.ConnectedHomes(),
			}).Info("simulation progress")
		}
	}
}
