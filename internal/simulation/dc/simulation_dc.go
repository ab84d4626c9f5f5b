package dc

import (
	"EconSim/internal/shared/utils"
	"EconSim/internal/simulation/app/port"
	"EconSim/internal/simulation/entity"
	"EconSim/modules/kit/logx"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 500 * time.Millisecond
	maxPending        = 4096
	retryBackoff      = 200 * time.Millisecond
)

// SimulationDC holds the live simulation and moves turn records to the
// archive on a background writer. The simulation itself is only touched by
// the simulation actor; the DC outlives actor restarts so state survives
// them.
type SimulationDC struct {
	archive    port.TurnArchive
	ids        *utils.Snowflake
	factory    func() *entity.Simulation
	flushEvery time.Duration
	log        logx.Logger

	entity *entity.Simulation

	mu      sync.Mutex
	pending []*entity.TurnRecord
	dropped int
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewSimulationDC(archive port.TurnArchive, ids *utils.Snowflake, factory func() *entity.Simulation,
	flushEvery time.Duration, log logx.Logger) *SimulationDC {
	if factory == nil {
		factory = func() *entity.Simulation { return entity.NewSimulation() }
	}
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	if log == nil {
		log = logx.NewNop()
	}
	d := &SimulationDC{
		archive:    archive,
		ids:        ids,
		factory:    factory,
		flushEvery: flushEvery,
		log:        log,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Load returns the live simulation, building it on first use.
func (d *SimulationDC) Load() *entity.Simulation {
	if d.entity == nil {
		d.entity = d.factory()
	}
	return d.entity
}

func (d *SimulationDC) Entity() *entity.Simulation {
	return d.entity
}

func (d *SimulationDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// Capture queues a record of the current turn if the simulation changed.
// Must be called from the goroutine that owns the simulation.
func (d *SimulationDC) Capture() {
	if d.entity == nil || d.archive == nil {
		return
	}
	var id int64
	if d.ids != nil {
		id = d.ids.NextID()
	}
	rec, ok := d.entity.BuildTurnRecord(id, time.Now())
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if len(d.pending) >= maxPending {
		d.pending = d.pending[1:]
		d.dropped++
	}
	d.pending = append(d.pending, rec)
}

// Flush wakes the writer if anything is queued.
func (d *SimulationDC) Flush() {
	if d.Pending() == 0 {
		return
	}
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *SimulationDC) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Close writes what is queued and stops the writer.
func (d *SimulationDC) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *SimulationDC) popPending() []*entity.TurnRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	batch := d.pending
	d.pending = nil
	if d.dropped > 0 {
		d.log.Warn("turn archive queue overflowed, oldest records dropped", zap.Int("dropped", d.dropped))
		d.dropped = 0
	}
	return batch
}

// requeueFront puts a failed batch back ahead of anything queued since.
func (d *SimulationDC) requeueFront(batch []*entity.TurnRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	merged := append(batch, d.pending...)
	if over := len(merged) - maxPending; over > 0 {
		merged = merged[over:]
		d.dropped += over
	}
	d.pending = merged
}

func (d *SimulationDC) writerLoop() {
	defer close(d.done)
	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

// consumePending retries failed writes until stop; on the final drain a
// failure is logged and the batch is given up.
func (d *SimulationDC) consumePending(final bool) {
	for {
		batch := d.popPending()
		if len(batch) == 0 {
			return
		}
		err := d.archive.Save(context.Background(), batch)
		if err == nil {
			d.log.Debug("turn records archived",
				zap.Int("count", len(batch)),
				zap.Int64("last_turn", batch[len(batch)-1].Turn),
			)
			continue
		}
		if final {
			d.log.Error("turn archive final flush failed", zap.Int("lost", len(batch)), zap.Error(err))
			return
		}
		d.log.Warn("turn archive write failed, retrying", zap.Int("count", len(batch)), zap.Error(err))
		d.requeueFront(batch)
		select {
		case <-time.After(retryBackoff):
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}
