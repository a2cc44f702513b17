package triage

import (
	"sync"
	"time"

	"github.com/pars-health/triage-api/models"
)

// ActiveQueueProjection presents only the currently active patients: a
// rolling display window over the full queue, not a deletion. A record is
// active while its age is strictly below the window; the transition to
// inactive is monotone, records never come back.
type ActiveQueueProjection struct {
	store    *QueueStore
	window   time.Duration
	interval time.Duration
	now      func() time.Time

	mu     sync.RWMutex
	active []models.Patient
	subs   []func([]models.Patient)
	stop   chan struct{}
}

// NewActiveQueueProjection builds a projection over the store with the
// given display window, recomputed every second while running.
func NewActiveQueueProjection(store *QueueStore, window time.Duration) *ActiveQueueProjection {
	return &ActiveQueueProjection{
		store:    store,
		window:   window,
		interval: time.Second,
		now:      time.Now,
	}
}

// Start begins the recompute tick. Stop ends it.
func (p *ActiveQueueProjection) Start() {
	p.mu.Lock()
	if p.stop != nil {
		p.mu.Unlock()
		return
	}
	p.stop = make(chan struct{})
	stop := p.stop
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Tick()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the recompute tick.
func (p *ActiveQueueProjection) Stop() {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.mu.Unlock()
}

// Tick recomputes the active subset. Downstream subscribers are only
// notified when the set's composition changed; the length/head check is an
// optimization, the correctness contract is solely the time-window
// predicate.
func (p *ActiveQueueProjection) Tick() {
	next := p.computeActive(p.now())

	p.mu.Lock()
	changed := len(next) != len(p.active) ||
		(len(next) > 0 && next[0].ID != p.active[0].ID)
	p.active = next
	subs := make([]func([]models.Patient), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(next)
	}
}

// computeActive filters the store snapshot by the window predicate,
// preserving the queue ordering.
func (p *ActiveQueueProjection) computeActive(now time.Time) []models.Patient {
	snapshot := p.store.Snapshot()
	active := make([]models.Patient, 0, len(snapshot))
	for _, patient := range snapshot {
		if now.Sub(patient.CreatedAt) < p.window {
			active = append(active, patient)
		}
	}
	return active
}

// Active returns the most recently computed active subset.
func (p *ActiveQueueProjection) Active() []models.Patient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]models.Patient, len(p.active))
	copy(out, p.active)
	return out
}

// Subscribe registers a callback invoked whenever the active set changes.
func (p *ActiveQueueProjection) Subscribe(fn func([]models.Patient)) {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	p.mu.Unlock()
}
