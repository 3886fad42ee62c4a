package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lowaak/wod-timer/internal/clock"
	"github.com/lowaak/wod-timer/internal/events"
	"github.com/lowaak/wod-timer/internal/go_func_utils"
	"github.com/lowaak/wod-timer/internal/timer"
	"github.com/lowaak/wod-timer/internal/workout"
)

// ErrBusy is returned by Load while a block is running or paused
var ErrBusy = errors.New("a block is in progress")

// SaveTimeout bounds how long the sink may take to store a finished session
const SaveTimeout = 5 * time.Second

// commandKind represents commands sent to the session goroutine
type commandKind int

const (
	cmdLoad commandKind = iota
	cmdStart
	cmdPause
	cmdReset
	cmdSkip
	cmdFinish
	cmdIncrement
)

func (c commandKind) String() string {
	switch c {
	case cmdLoad:
		return "load"
	case cmdStart:
		return "start"
	case cmdPause:
		return "pause"
	case cmdReset:
		return "reset"
	case cmdSkip:
		return "skip"
	case cmdFinish:
		return "finish"
	case cmdIncrement:
		return "round increment"
	}
	return "unknown"
}

type command struct {
	kind    commandKind
	workout *workout.Workout
	err     error
	done    chan struct{}
}

// ManagerArgs configures a Manager
type ManagerArgs struct {
	Logger         *log.Logger
	Clock          clock.Clock   // defaults to the real clock
	SampleInterval time.Duration // passed to every block timer
	AutoAdvance    bool          // start the next block as soon as a running block ends
	Sink           ResultSink    // optional
}

// Manager runs a workout block by block. It owns exactly one block timer at a
// time and serializes every command on its own goroutine.
type Manager struct {
	logger      *log.Logger
	clock       clock.Clock
	interval    time.Duration
	autoAdvance bool
	sink        ResultSink
	stateEvent  *events.ChannelEvent[State]

	// Session state (written only by the loop goroutine, protected by mu for readers)
	mu        sync.RWMutex
	workout   *workout.Workout
	blockIdx  int
	timer     timer.Timer
	unsub     func()
	results   []workout.BlockResult
	startedAt time.Time
	completed bool
	lastTimer timer.State // final snapshot of the block left last
	state     State

	// Goroutine management
	cmdChan      chan *command
	timerSignal  chan struct{}
	doneChan     chan struct{} // Closed to signal shutdown
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewManager creates a Manager and starts its goroutine
func NewManager(args ManagerArgs) *Manager {
	if args.Logger == nil {
		panic("Manager: logger cannot be nil")
	}
	if args.Clock == nil {
		args.Clock = clock.NewRealClock()
	}
	if args.SampleInterval <= 0 {
		args.SampleInterval = timer.DefaultSampleInterval
	}

	m := &Manager{
		logger:      args.Logger,
		clock:       args.Clock,
		interval:    args.SampleInterval,
		autoAdvance: args.AutoAdvance,
		sink:        args.Sink,
		stateEvent:  events.NewChannelEvent[State](true),
		state:       State{Status: StatusIdle},
		cmdChan:     make(chan *command),
		timerSignal: make(chan struct{}, 1),
		doneChan:    make(chan struct{}),
	}
	m.stateEvent.Notify(m.state)

	go_func_utils.SafeGoWithWaitGroup(m.logger, &m.wg, m.runLoop)
	return m
}

// ListenToState registers ch for every session state change. The current state
// is sent right away. Sends never block; when ch is full its older value is
// replaced, so a slow reader still ends on the newest state.
func (m *Manager) ListenToState(ch chan State) func() {
	return m.stateEvent.Listen(ch)
}

// GetState returns the latest session state
func (m *Manager) GetState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// TimerInternalState exposes the current block timer's bookkeeping so a
// display can resample it between published snapshots
func (m *Manager) TimerInternalState() (timer.InternalState, bool) {
	m.mu.RLock()
	tm := m.timer
	m.mu.RUnlock()
	if tm == nil {
		return timer.InternalState{}, false
	}
	return tm.InternalState(), true
}

// Load replaces the session's workout. It is refused while a block is running or paused.
func (m *Manager) Load(w *workout.Workout) error {
	if w != nil {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return m.send(&command{kind: cmdLoad, workout: w})
}

// Start begins or resumes the current block
func (m *Manager) Start() { _ = m.send(&command{kind: cmdStart}) }

// Pause pauses the current block
func (m *Manager) Pause() { _ = m.send(&command{kind: cmdPause}) }

// Reset discards every result and returns to the first block
func (m *Manager) Reset() { _ = m.send(&command{kind: cmdReset}) }

// SkipBlock leaves the current block without completing it
func (m *Manager) SkipBlock() { _ = m.send(&command{kind: cmdSkip}) }

// Finish ends the current block with the time on the clock, as when an athlete
// completes a For-Time block before the cap
func (m *Manager) Finish() { _ = m.send(&command{kind: cmdFinish}) }

// IncrementRound counts one round by hand on blocks that support it
func (m *Manager) IncrementRound() { _ = m.send(&command{kind: cmdIncrement}) }

// Shutdown stops the session goroutine and destroys the block timer.
// Safe to call multiple times - only the first call has effect
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.logger.Printf("Manager: Shutting down")
		close(m.doneChan)
		m.wg.Wait()
		m.stateEvent.Clear()
		m.logger.Printf("Manager: Shutdown complete")
	})
}

// send hands c to the loop and waits until it has been handled
func (m *Manager) send(c *command) error {
	c.done = make(chan struct{})
	select {
	case m.cmdChan <- c:
	case <-m.doneChan:
		m.logger.Printf("Manager: %s ignored, shut down", c.kind)
		return nil
	}
	select {
	case <-c.done:
		return c.err
	case <-m.doneChan:
		return nil
	}
}

// signal wakes the loop after the block timer published. It never blocks, so the
// timer's sampler can always make progress while the loop destroys it.
func (m *Manager) signal() {
	select {
	case m.timerSignal <- struct{}{}:
	default:
	}
}

// runLoop is the goroutine that owns the session
func (m *Manager) runLoop() {
	for {
		select {
		case <-m.doneChan:
			m.dropTimer()
			m.logger.Printf("Manager: Goroutine exiting")
			return

		case c := <-m.cmdChan:
			c.err = m.handle(c)
			m.publish()
			close(c.done)

		case <-m.timerSignal:
			m.handleTimerUpdate()
			m.publish()
		}
	}
}

func (m *Manager) handle(c *command) error {
	if c.kind == cmdLoad {
		return m.load(c.workout)
	}

	m.mu.RLock()
	tm := m.timer
	loaded := m.workout != nil
	m.mu.RUnlock()

	if c.kind == cmdReset && loaded {
		m.reset()
		return nil
	}
	if tm == nil {
		m.logger.Printf("Manager: %s ignored, no block in progress", c.kind)
		return nil
	}

	switch c.kind {
	case cmdStart:
		if !tm.State().Started {
			m.markStarted()
		}
		tm.Start()

	case cmdPause:
		tm.Pause()

	case cmdSkip:
		wasRunning := tm.State().Running
		res, ok := tm.Finish()
		if !ok {
			res = tm.Result()
		}
		m.leaveBlock(tm, res, !res.Completed, wasRunning)

	case cmdFinish:
		wasRunning := tm.State().Running
		res, ok := tm.Finish()
		if !ok {
			m.logger.Printf("Manager: finish ignored, block not started")
			return nil
		}
		// A block that was already due completes naturally and is handled by the signal
		if res.Completed {
			return nil
		}
		m.leaveBlock(tm, res, false, wasRunning)

	case cmdIncrement:
		counter, ok := tm.(timer.RoundCounter)
		if !ok {
			m.logger.Printf("Manager: round increment ignored, %s blocks count rounds on their own", tm.Kind().Label())
			return nil
		}
		counter.IncrementRound()
	}
	return nil
}

func (m *Manager) load(w *workout.Workout) error {
	m.mu.RLock()
	tm := m.timer
	m.mu.RUnlock()
	if tm != nil {
		if s := tm.State(); s.Running || s.Paused {
			m.logger.Printf("Manager: Cannot load a workout while running or paused")
			return ErrBusy
		}
	}

	m.dropTimer()
	m.mu.Lock()
	m.workout = w
	m.blockIdx = 0
	m.results = nil
	m.startedAt = time.Time{}
	m.completed = false
	m.lastTimer = timer.State{}
	m.mu.Unlock()

	if w == nil {
		m.logger.Printf("Manager: Workout cleared")
		return nil
	}
	m.logger.Printf("Manager: Workout '%s' loaded (%d blocks, planned %v)", w.Name, len(w.Blocks), w.TotalDuration())
	return m.enterBlock(0, false)
}

func (m *Manager) reset() {
	m.mu.RLock()
	w := m.workout
	m.mu.RUnlock()

	m.dropTimer()
	m.mu.Lock()
	m.results = nil
	m.startedAt = time.Time{}
	m.completed = false
	m.lastTimer = timer.State{}
	m.mu.Unlock()

	m.logger.Printf("Manager: Session reset")
	if err := m.enterBlock(0, false); err != nil {
		m.logger.Printf("Manager: failed to rebuild first block of '%s': %v", w.Name, err)
	}
}

func (m *Manager) markStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startedAt.IsZero() {
		m.startedAt = m.clock.Now()
	}
}

// enterBlock builds the timer for block idx and optionally starts it
func (m *Manager) enterBlock(idx int, start bool) error {
	m.mu.RLock()
	block := m.workout.Blocks[idx]
	m.mu.RUnlock()

	tm, err := block.NewTimer(timer.Options{
		Clock:          m.clock,
		Logger:         m.logger,
		SampleInterval: m.interval,
	})
	if err != nil {
		return fmt.Errorf("failed to build timer for block %d: %w", idx+1, err)
	}
	unsub := tm.Subscribe(func(timer.State) { m.signal() })

	m.mu.Lock()
	m.blockIdx = idx
	m.timer = tm
	m.unsub = unsub
	m.mu.Unlock()

	m.logger.Printf("Manager: Moved to block %d (%s)", idx+1, block.Summary())
	if start {
		tm.Start()
	}
	return nil
}

// dropTimer destroys the current block timer, if any
func (m *Manager) dropTimer() {
	m.mu.Lock()
	tm, unsub := m.timer, m.unsub
	m.timer, m.unsub = nil, nil
	m.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if tm != nil {
		tm.Destroy()
	}
}

func (m *Manager) handleTimerUpdate() {
	m.mu.RLock()
	tm := m.timer
	m.mu.RUnlock()
	if tm == nil {
		return
	}
	if tm.State().Completed {
		m.leaveBlock(tm, tm.Result(), false, true)
	}
}

// leaveBlock records the result of the current block and moves on. With
// AutoAdvance the next block starts only if tm was running when it ended.
func (m *Manager) leaveBlock(tm timer.Timer, res timer.Result, skipped, wasRunning bool) {
	m.mu.RLock()
	w := m.workout
	idx := m.blockIdx
	m.mu.RUnlock()

	block := w.Blocks[idx]
	br := workout.NewBlockResult(block, res)
	br.Skipped = skipped
	if skipped {
		m.logger.Printf("Manager: Block %d skipped after %v", idx+1, res.Elapsed)
	} else {
		m.logger.Printf("Manager: Block %d done in %v", idx+1, res.Elapsed)
	}

	final := tm.State()
	m.dropTimer()
	m.mu.Lock()
	m.results = append(m.results, br)
	m.lastTimer = final
	m.mu.Unlock()

	if idx+1 < len(w.Blocks) {
		if err := m.enterBlock(idx+1, m.autoAdvance && wasRunning); err != nil {
			m.logger.Printf("Manager: %v", err)
		}
		return
	}
	m.completeSession()
}

func (m *Manager) completeSession() {
	now := m.clock.Now()
	m.mu.Lock()
	m.completed = true
	rec := workout.SessionRecord{
		WorkoutID:   m.workout.ID,
		WorkoutName: m.workout.Name,
		StartedAt:   m.startedAt,
		EndedAt:     now,
		Blocks:      append([]workout.BlockResult(nil), m.results...),
		Completed:   true,
	}
	m.mu.Unlock()

	for _, b := range rec.Blocks {
		if b.Skipped {
			rec.Completed = false
		}
	}
	m.logger.Printf("Manager: Workout '%s' complete, %v of work", rec.WorkoutName, rec.TotalElapsed())

	if m.sink == nil {
		return
	}
	if rec.StartedAt.IsZero() {
		m.logger.Printf("Manager: Nothing ran, session not recorded")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), SaveTimeout)
	defer cancel()
	if err := m.sink.SaveSession(ctx, rec); err != nil {
		m.logger.Printf("Manager: Failed to record session: %v", err)
	}
}

// buildState computes the published state. MUST be called with mu held.
func (m *Manager) buildState() State {
	s := State{Status: StatusIdle}
	if m.workout == nil {
		return s
	}

	s.WorkoutID = m.workout.ID
	s.WorkoutName = m.workout.Name
	s.BlockIdx = m.blockIdx
	s.BlockCount = len(m.workout.Blocks)
	s.Results = append([]workout.BlockResult(nil), m.results...)

	block := m.workout.Blocks[m.blockIdx]
	s.BlockName = block.Title()
	s.BlockKind = block.Kind
	s.BlockSummary = block.Summary()
	s.Exercises = block.Exercises
	if m.blockIdx+1 < len(m.workout.Blocks) {
		s.NextBlock = m.workout.Blocks[m.blockIdx+1].Title()
	}

	if m.completed {
		s.Status = StatusCompleted
		s.Timer = m.lastTimer
		return s
	}

	s.Status = StatusReady
	if m.timer != nil {
		s.Timer = m.timer.State()
		switch {
		case s.Timer.Running:
			s.Status = StatusRunning
		case s.Timer.Paused:
			s.Status = StatusPaused
		}
	}
	return s
}

// publish rebuilds the state and notifies listeners
func (m *Manager) publish() {
	m.mu.Lock()
	m.state = m.buildState()
	state := m.state
	m.mu.Unlock()

	m.stateEvent.Notify(state)
}
