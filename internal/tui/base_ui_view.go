package tui

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/wod-timer/internal/clock"
	"github.com/lowaak/wod-timer/internal/go_func_utils"
	"github.com/lowaak/wod-timer/internal/session"
	"github.com/lowaak/wod-timer/internal/workout"
)

const logResizeInterval = 100 * time.Millisecond

// BaseUIView contains the base logic shared by all UI implementations
type BaseUIView struct {
	uiViewImpl     UIViewImpl
	uiModel        *UIModel
	uiController   *UIController
	session        SessionController
	clock          clock.Clock
	displayRefresh time.Duration
	lastFace       ClockFace
	faceMu         sync.Mutex
	context        context.Context
	cancelFunc     context.CancelFunc
	waitGroup      sync.WaitGroup
	logger         *log.Logger
}

// NewBaseUIViewArg holds the arguments for creating a new BaseUIView
type NewBaseUIViewArg struct {
	UIViewImpl     UIViewImpl
	UIModel        *UIModel
	UIController   *UIController
	Session        SessionController
	Clock          clock.Clock   // defaults to the real clock
	DisplayRefresh time.Duration // big clock redraw period
	Logger         *log.Logger
}

// NewBaseUIView creates a new BaseUIView with the given implementation
func NewBaseUIView(args NewBaseUIViewArg) *BaseUIView {
	if args.Logger == nil {
		panic("BaseUIView: logger cannot be nil")
	}
	if args.UIViewImpl == nil {
		panic("BaseUIView: UIViewImpl cannot be nil")
	}
	if args.UIController == nil {
		panic("BaseUIView: UIController cannot be nil")
	}
	if args.UIModel == nil {
		panic("BaseUIView: UIModel cannot be nil")
	}
	if args.Session == nil {
		panic("BaseUIView: Session cannot be nil")
	}
	if args.Clock == nil {
		args.Clock = clock.NewRealClock()
	}
	if args.DisplayRefresh <= 0 {
		args.DisplayRefresh = 50 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())

	base := &BaseUIView{
		uiViewImpl:     args.UIViewImpl,
		uiModel:        args.UIModel,
		uiController:   args.UIController,
		session:        args.Session,
		clock:          args.Clock,
		displayRefresh: args.DisplayRefresh,
		context:        ctx,
		cancelFunc:     cancel,
		logger:         args.Logger,
	}

	// Initialize framework-specific widgets
	args.UIViewImpl.Initialize(args.UIController)
	args.UIViewImpl.SetupKeyboardHandlers(args.UIController)
	args.UIViewImpl.SetMode(args.UIModel.GetUIState().Mode)

	go_func_utils.SafeGoWithWaitGroup(base.logger, &base.waitGroup, base.monitorLogResize)
	base.updateLogDisplay()

	base.setupEventListeners()
	base.updateClock()

	go_func_utils.SafeGoWithWaitGroup(base.logger, &base.waitGroup, base.refreshClock)

	return base
}

// listen runs onValue for every value the registered channel receives until shutdown
func listen[T any](base *BaseUIView, register func(chan T) func(), onValue func(T)) {
	ch := make(chan T, 1)
	unregister := register(ch)
	go_func_utils.SafeGoWithWaitGroup(base.logger, &base.waitGroup, func() {
		defer unregister()
		for {
			select {
			case <-base.context.Done():
				return
			case v, ok := <-ch:
				if !ok {
					return
				}
				onValue(v)
			}
		}
	})
}

func (base *BaseUIView) setupEventListeners() {
	// When a new log arrives, update the display to show the tail
	listen(base, base.uiModel.ListenToLog, func(string) {
		base.updateLogDisplay()
	})

	listen(base, base.uiModel.ListenToCloseApplication, func(struct{}) {
		base.uiViewImpl.Stop()
	})

	listen(base, base.uiModel.ListenToUIState, func(state UIState) {
		base.uiViewImpl.SetMode(state.Mode)
		base.draw()
	})

	listen(base, base.uiModel.ListenToWorkouts, func(workouts []workout.Workout) {
		base.uiViewImpl.SetWorkoutList(workouts)
		base.draw()
	})

	listen(base, base.session.ListenToState, func(state session.State) {
		base.uiViewImpl.UpdateSessionState(state)
		base.updateClock()
		base.draw()
	})
}

// refreshClock redraws the big clock between session snapshots
func (base *BaseUIView) refreshClock() {
	ticker := base.clock.NewTicker(base.displayRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-base.context.Done():
			return
		case <-ticker.C():
			if base.updateClock() {
				base.draw()
			}
		}
	}
}

// updateClock pushes a fresh clock face to the view and reports whether it changed
func (base *BaseUIView) updateClock() bool {
	face := ClockFace{Main: "00:00.00"}
	if in, ok := base.session.TimerInternalState(); ok {
		face = NewClockFace(in, base.clock.Now())
	}
	base.faceMu.Lock()
	defer base.faceMu.Unlock()
	if face == base.lastFace {
		return false
	}
	base.lastFace = face
	base.uiViewImpl.UpdateClock(face)
	return true
}

func (base *BaseUIView) draw() {
	if err := base.uiViewImpl.Draw(); err != nil {
		base.logger.Printf("BaseUIView: Error drawing: %v", err)
	}
}

func (base *BaseUIView) updateLogDisplay() {
	height := base.uiViewImpl.GetLogViewHeight()
	if height <= 0 {
		return
	}

	logLines := base.uiModel.GetLogTail(height)

	base.uiViewImpl.ClearLogView()
	for _, line := range logLines {
		if err := base.uiViewImpl.WriteLogLine(line); err != nil {
			base.logger.Printf("BaseUIView: Error writing to log view: %v", err)
		}
	}
}

func (base *BaseUIView) monitorLogResize() {
	var lastHeight int
	ticker := time.NewTicker(logResizeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-base.context.Done():
			return
		case <-ticker.C:
			height := base.uiViewImpl.GetLogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				base.updateLogDisplay()
				base.draw()
			}
		}
	}
}

// Shutdown stops all goroutines and waits for them to finish
func (base *BaseUIView) Shutdown() {
	base.logger.Println("BaseUIView: Shutting down")
	base.cancelFunc()
	base.waitGroup.Wait()
	base.logger.Println("BaseUIView: Shutdown complete")
}

// Run starts the UI and blocks until it exits
func (base *BaseUIView) Run() error {
	return base.uiViewImpl.Run()
}
