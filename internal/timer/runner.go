package timer

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/wod-timer/internal/clock"
	"github.com/lowaak/wod-timer/internal/events"
	"github.com/lowaak/wod-timer/internal/go_func_utils"
)

// Timer is the control surface shared by every timer kind
type Timer interface {
	Kind() Kind
	Start()
	Pause()
	Reset()
	Finish() (Result, bool)
	Result() Result
	Subscribe(fn func(State)) (unsubscribe func())
	State() State
	InternalState() InternalState
	Destroy()
}

// RoundCounter is implemented by the kinds that let the athlete count rounds by hand
type RoundCounter interface {
	IncrementRound()
}

// engine is the per-kind part of a timer. Every method is called with the
// runner's mutex held.
type engine interface {
	begin(now time.Time)
	// advance applies due phase transitions and reports whether the run is complete
	advance(now time.Time) bool
	fill(now time.Time, s *State)
	total() time.Duration
	clear()
	describe(in *InternalState)
}

type sampler struct {
	ticker clock.Ticker
	stop   chan struct{}
}

type delivery struct {
	state    State
	complete bool
}

// runner owns locking, sampling, delivery and lifecycle for one timer
type runner struct {
	kind       Kind
	eng        engine
	clock      clock.Clock
	logger     *log.Logger
	interval   time.Duration
	onComplete func(State)
	listeners  *events.CallbackEvent[State]

	mu           sync.Mutex
	phase        phase
	offset       time.Duration // unpaused time of finished phases
	startedAt    time.Time
	lastSample   time.Time
	started      bool
	running      bool
	paused       bool
	completed    bool
	finished     bool
	destroyed    bool
	manualRounds int
	sampler      *sampler
	last         State
	pending      []delivery
	delivering   bool
	drainer      uint64        // goroutine draining pending while delivering
	drained      chan struct{} // closed when that drain pass ends
	samplerIDs   map[uint64]struct{}

	// deliverMu is held by the one goroutine draining pending
	deliverMu sync.Mutex
	samplers  sync.WaitGroup
}

func newRunner(kind Kind, opts Options) *runner {
	opts = opts.withDefaults()
	return &runner{
		kind:       kind,
		clock:      opts.Clock,
		logger:     opts.Logger,
		interval:   opts.SampleInterval,
		onComplete: opts.OnComplete,
		listeners:  events.NewCallbackEvent[State](false),
	}
}

func (r *runner) attach(e engine) {
	r.eng = e
	r.last = r.snapshotLocked(time.Time{})
}

func (r *runner) Kind() Kind {
	return r.kind
}

// Start begins the run or resumes it after a pause
func (r *runner) Start() {
	r.mu.Lock()
	switch {
	case r.destroyed, r.completed, r.finished:
		r.logger.Printf("%s: start ignored, timer is done", r.kind.Label())
		r.mu.Unlock()
		return
	case r.running:
		r.logger.Printf("%s: start ignored, already running", r.kind.Label())
		r.mu.Unlock()
		return
	}

	now := r.clock.Now()
	if !r.started {
		r.started = true
		r.startedAt = now
		r.eng.begin(now)
		r.logger.Printf("%s: started", r.kind.Label())
	} else {
		r.phase.resume(now)
		r.logger.Printf("%s: resumed, paused %v so far in this phase", r.kind.Label(), r.phase.pausedTotal)
	}
	r.running = true
	r.paused = false
	r.startSamplerLocked()
	r.sampleLocked(now)
	r.mu.Unlock()

	r.flush()
}

// Pause freezes the clock. Transitions that were already due are applied first.
func (r *runner) Pause() {
	r.mu.Lock()
	if !r.running {
		r.logger.Printf("%s: pause ignored, not running", r.kind.Label())
		r.mu.Unlock()
		return
	}

	now := r.clock.Now()
	if r.eng.advance(now) {
		r.completeLocked(now)
	} else {
		r.stopSamplerLocked()
		r.phase.pause(now)
		r.running = false
		r.paused = true
		r.logger.Printf("%s: paused", r.kind.Label())
		r.publishLocked(r.snapshotLocked(now), false)
	}
	r.mu.Unlock()

	r.flush()
}

// Reset returns the timer to the state it had right after construction
func (r *runner) Reset() {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	r.stopSamplerLocked()
	r.phase = phase{}
	r.offset = 0
	r.startedAt = time.Time{}
	r.lastSample = time.Time{}
	r.started = false
	r.running = false
	r.paused = false
	r.completed = false
	r.finished = false
	r.manualRounds = 0
	r.eng.clear()
	r.logger.Printf("%s: reset", r.kind.Label())
	r.publishLocked(r.snapshotLocked(time.Time{}), false)
	r.mu.Unlock()

	r.flush()
}

// Finish ends a started run early and returns its result. OnComplete is not called.
// The second value is false when there was no run to end.
func (r *runner) Finish() (Result, bool) {
	r.mu.Lock()
	if r.destroyed || !r.started || r.completed || r.finished {
		r.logger.Printf("%s: finish ignored", r.kind.Label())
		res := r.resultLocked(r.clock.Now())
		r.mu.Unlock()
		return res, false
	}

	now := r.clock.Now()
	if r.running && r.eng.advance(now) {
		// the run was already over, report it as a natural completion
		r.completeLocked(now)
	} else {
		r.stopSamplerLocked()
		r.phase.freeze(now)
		r.running = false
		r.paused = false
		r.finished = true
		r.logger.Printf("%s: finished by user", r.kind.Label())
		r.publishLocked(r.snapshotLocked(now), false)
	}
	res := r.resultLocked(now)
	r.mu.Unlock()

	r.flush()
	return res, true
}

// Result describes the run at this instant
func (r *runner) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resultLocked(r.clock.Now())
}

func (r *runner) resultLocked(now time.Time) Result {
	s := r.snapshotLocked(now)
	remaining := r.eng.total() - s.Elapsed
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Kind:         r.kind,
		Elapsed:      s.Elapsed,
		Remaining:    remaining,
		Round:        s.Round,
		ManualRounds: s.ManualRounds,
		Completed:    r.completed,
	}
}

// Subscribe registers fn for every published snapshot, in publication order.
// fn may call back into the timer.
func (r *runner) Subscribe(fn func(State)) func() {
	r.mu.Lock()
	destroyed := r.destroyed
	r.mu.Unlock()
	if destroyed {
		return func() {}
	}
	return r.listeners.Listen(fn)
}

// State returns the last published snapshot
func (r *runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *runner) InternalState() InternalState {
	r.mu.Lock()
	defer r.mu.Unlock()
	in := InternalState{
		Kind:           r.kind,
		Started:        r.started,
		Running:        r.running,
		Paused:         r.paused,
		StartedAt:      r.startedAt,
		PhaseStartedAt: r.phase.startedAt,
		PhaseDuration:  r.phase.duration,
		PhaseOffset:    r.offset,
		TargetEnd:      r.phase.targetEnd,
		PausedAt:       r.phase.pausedAt,
		PausedTotal:    r.phase.pausedTotal,
	}
	r.eng.describe(&in)
	return in
}

// Destroy stops sampling and drops every subscriber. The timer is unusable afterwards.
// It returns once no subscriber is running and the sampler goroutine has exited,
// except for the subscriber or sampler it is itself called from.
func (r *runner) Destroy() {
	self := go_func_utils.GoroutineID()

	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	r.destroyed = true
	r.stopSamplerLocked()
	r.pending = nil
	var drained <-chan struct{}
	if r.delivering && r.drainer != self {
		drained = r.drained
	}
	_, onSampler := r.samplerIDs[self]
	r.logger.Printf("%s: destroyed", r.kind.Label())
	r.mu.Unlock()

	if drained != nil {
		<-drained
	}
	if !onSampler {
		r.samplers.Wait()
	}
	r.listeners.Clear()
}

func (r *runner) incrementRound() {
	r.mu.Lock()
	if r.destroyed || r.finished {
		r.logger.Printf("%s: round increment ignored", r.kind.Label())
		r.mu.Unlock()
		return
	}
	r.manualRounds++
	now := r.clock.Now()
	if r.running {
		r.sampleLocked(now)
	} else {
		r.publishLocked(r.snapshotLocked(now), false)
	}
	r.mu.Unlock()

	r.flush()
}

func (r *runner) startSamplerLocked() {
	r.stopSamplerLocked()
	s := &sampler{
		ticker: r.clock.NewTicker(r.interval),
		stop:   make(chan struct{}),
	}
	r.sampler = s
	go_func_utils.SafeGoWithWaitGroup(r.logger, &r.samplers, func() {
		r.runSampler(s)
	})
}

func (r *runner) stopSamplerLocked() {
	if r.sampler == nil {
		return
	}
	r.sampler.ticker.Stop()
	close(r.sampler.stop)
	r.sampler = nil
}

func (r *runner) runSampler(s *sampler) {
	id := go_func_utils.GoroutineID()
	r.mu.Lock()
	if r.samplerIDs == nil {
		r.samplerIDs = make(map[uint64]struct{})
	}
	r.samplerIDs[id] = struct{}{}
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.samplerIDs, id)
		r.mu.Unlock()
	}()

	for {
		select {
		case <-s.stop:
			return
		default:
		}
		select {
		case <-s.stop:
			return
		case at := <-s.ticker.C():
			r.tick(s, at)
		}
	}
}

// tick samples at the instant the ticker fired. Ticks from a replaced sampler,
// and ticks older than the last sample, are dropped.
func (r *runner) tick(s *sampler, at time.Time) {
	r.mu.Lock()
	if r.sampler != s || !r.running || at.Before(r.lastSample) {
		r.mu.Unlock()
		return
	}
	r.sampleLocked(at)
	r.mu.Unlock()

	r.flush()
}

func (r *runner) sampleLocked(now time.Time) {
	r.lastSample = now
	if r.eng.advance(now) {
		r.completeLocked(now)
		return
	}
	r.publishLocked(r.snapshotLocked(now), false)
}

func (r *runner) completeLocked(now time.Time) {
	r.stopSamplerLocked()
	r.phase.freeze(now)
	r.running = false
	r.paused = false
	r.completed = true
	r.logger.Printf("%s: completed after %v", r.kind.Label(), r.offset+r.phase.elapsed(now))
	r.publishLocked(r.snapshotLocked(now), true)
}

func (r *runner) snapshotLocked(now time.Time) State {
	s := State{
		Kind:         r.kind,
		ManualRounds: r.manualRounds,
		Started:      r.started,
		Running:      r.running,
		Paused:       r.paused,
		Completed:    r.completed,
		Finished:     r.finished,
	}
	if r.started {
		s.Elapsed = r.offset + r.phase.elapsed(now)
	}
	r.eng.fill(now, &s)
	return s
}

func (r *runner) publishLocked(s State, complete bool) {
	r.last = s
	r.pending = append(r.pending, delivery{state: s})
	if complete && r.onComplete != nil {
		r.pending = append(r.pending, delivery{state: s, complete: true})
	}
}

// flush delivers pending snapshots outside the state lock. Only one goroutine
// drains at a time; a caller that finds the drain busy leaves its entries to it.
func (r *runner) flush() {
	for {
		if !r.deliverMu.TryLock() {
			return
		}
		r.mu.Lock()
		batch := r.pending
		r.pending = nil
		r.delivering = len(batch) > 0
		var drained chan struct{}
		if r.delivering {
			drained = make(chan struct{})
			r.drainer = go_func_utils.GoroutineID()
			r.drained = drained
		}
		r.mu.Unlock()

		for _, d := range batch {
			r.mu.Lock()
			destroyed := r.destroyed
			r.mu.Unlock()
			if destroyed {
				break
			}
			if d.complete {
				r.onComplete(d.state)
			} else {
				r.listeners.Notify(d.state)
			}
		}

		r.mu.Lock()
		r.delivering = false
		r.drainer = 0
		r.mu.Unlock()
		if drained != nil {
			close(drained)
		}
		r.deliverMu.Unlock()

		// entries queued while the lock was held by this goroutine
		r.mu.Lock()
		more := len(r.pending) > 0
		r.mu.Unlock()
		if !more {
			return
		}
	}
}
