package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/wod-timer/internal/session"
	"github.com/lowaak/wod-timer/internal/timer"
	"github.com/lowaak/wod-timer/internal/workout"
)

// Page names for tview.Pages
const (
	pageTimer            = "timer"
	pageWorkoutSelection = "workout_selection"
)

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	currentMode UIMode

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex

	// Timer mode components
	timerFlex       *tview.Flex
	timerTabWidgets []*tview.Box
	clockPanel      *tview.TextView
	blockPanel      *tview.TextView
	resultsPanel    *tview.TextView

	// Workout Selection mode components
	workoutSelectionFlex       *tview.Flex
	workoutSelectionTabWidgets []*tview.Box
	workoutList                *tview.List
	workoutDetailsPanel        *tview.TextView
	workouts                   []workout.Workout
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		model:       model,
		currentMode: UIModeTimer,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// No SetChangedFunc with app.Draw() here: it can hang during shutdown when
	// the app has been stopped but log lines are still being written.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initTimerMode()
	ui.initWorkoutSelectionMode(controller)

	ui.pages.AddPage(pageTimer, ui.timerFlex, true, true)
	ui.pages.AddPage(pageWorkoutSelection, ui.workoutSelectionFlex, true, false)

	// Pages on top, logs below
	ui.mainFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.pages, 0, 3, true).
		AddItem(ui.logView, 0, 1, false)

	ui.setFocusForCurrentMode()
}

// initTimerMode sets up the big clock and the session panels
func (ui *CursesUIViewImpl) initTimerMode() {
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]Space[white] Start/Pause  |  [yellow]R[white] Reset  |  [yellow]N[white] Skip  |  [yellow]F[white] Finish  |  [yellow]+[white] Round\n[yellow]1[white] Timer  |  [yellow]2[white] Workouts  |  [yellow]Q[white] Quit")

	ui.clockPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.clockPanel.SetBorder(true).SetTitle(" Clock ")
	ui.UpdateClock(ClockFace{Main: timer.FormatCentis(0)})

	ui.blockPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.blockPanel.SetBorder(true).SetTitle(" Block ")
	ui.UpdateSessionState(session.State{Status: session.StatusIdle})

	ui.resultsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.resultsPanel.SetBorder(true).SetTitle(" Results ")

	ui.timerTabWidgets = append(ui.timerTabWidgets, ui.blockPanel.Box, ui.resultsPanel.Box)

	bottomRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.blockPanel, 0, 1, true).
		AddItem(ui.resultsPanel, 0, 1, false)

	ui.timerFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(ui.clockPanel, 0, 1, false).
		AddItem(bottomRow, 0, 1, true)
}

// initWorkoutSelectionMode sets up the Workout Selection mode UI
func (ui *CursesUIViewImpl) initWorkoutSelectionMode(controller *UIController) {
	ui.workoutList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Workout selected: index=%d, name=%s", index, mainText)
			controller.OnWorkoutSelected(index)
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateWorkoutDetailsDisplay(index)
		})
	ui.workoutList.SetBorder(true).SetTitle(" Workouts ")

	ui.workoutDetailsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.workoutDetailsPanel.SetBorder(true).SetTitle(" Workout Details ")
	ui.updateWorkoutDetailsDisplay(-1)

	ui.workoutSelectionTabWidgets = append(ui.workoutSelectionTabWidgets, ui.workoutList.Box, ui.workoutDetailsPanel.Box)

	ui.workoutSelectionFlex = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.workoutList, 0, 1, true).
		AddItem(ui.workoutDetailsPanel, 0, 1, false)
}

// SetWorkoutList populates the workout selection list
func (ui *CursesUIViewImpl) SetWorkoutList(workouts []workout.Workout) {
	ui.workouts = workouts
	ui.workoutList.Clear()

	for i := range workouts {
		ui.workoutList.AddItem(workouts[i].Name, formatDuration(workouts[i].TotalDuration()), 0, nil)
	}

	if len(workouts) > 0 {
		idx := ui.model.GetLastWorkoutIndex()
		ui.workoutList.SetCurrentItem(idx)
		ui.updateWorkoutDetailsDisplay(idx)
	}
}

// formatDuration formats a workout length for the list. Open-ended
// workouts have no known length.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "open"
	}
	minutes := int(d.Minutes())
	if minutes >= 60 {
		hours := minutes / 60
		mins := minutes % 60
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if minutes == 0 {
		return fmt.Sprintf("%d sec", int(d.Seconds()))
	}
	return fmt.Sprintf("%d min", minutes)
}

// updateWorkoutDetailsDisplay formats and displays the workout details
func (ui *CursesUIViewImpl) updateWorkoutDetailsDisplay(index int) {
	if ui.workoutDetailsPanel == nil {
		return
	}

	var text string
	if index < 0 || index >= len(ui.workouts) {
		text = "\n\n  [yellow]Workout Selection[white]\n\n"
		text += "  Select a workout from the list to view details.\n\n"
		text += "  [gray]Press Enter to load the selected workout.[white]\n"
	} else {
		w := ui.workouts[index]
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n\n", tview.Escape(w.Name))
		if w.Notes != "" {
			text += fmt.Sprintf("  [gray]%s[white]\n\n", tview.Escape(w.Notes))
		}
		text += fmt.Sprintf("  [gray]Duration:[white] %s\n", formatDuration(w.TotalDuration()))
		text += fmt.Sprintf("  [gray]Blocks:[white] %d\n\n", len(w.Blocks))

		text += "  [gray]Structure:[white]\n"
		for i, block := range w.Blocks {
			text += fmt.Sprintf("    %d. %s\n", i+1, tview.Escape(block.Summary()))
			for _, ex := range block.Exercises {
				text += fmt.Sprintf("       [gray]- %s[white]\n", tview.Escape(ex))
			}
		}
		text += "\n  [green]Press Enter to load this workout[white]\n"
	}

	ui.workoutDetailsPanel.SetText(text)
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeTimer:
		ui.pages.SwitchToPage(pageTimer)
	case UIModeWorkoutSelection:
		ui.pages.SwitchToPage(pageWorkoutSelection)
	}

	ui.setFocusForCurrentMode()
	ui.app.Draw()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	if widgets := ui.getTabWidgetsForCurrentMode(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModeTimer:
		return ui.timerTabWidgets
	case UIModeWorkoutSelection:
		return ui.workoutSelectionTabWidgets
	default:
		return nil
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// the controller updates the model, which notifies us
				controller.OnModeChange(mode)
				return nil
			}
			if event.Rune() == KeyQuit {
				controller.OnEscapeKey()
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			widgetCount := len(widgets)
			if widgetCount > 0 {
				for i := 0; i < widgetCount+1; i++ {
					idx := i % widgetCount
					if widgets[idx].HasFocus() {
						ui.app.SetFocus(widgets[(idx+1)%widgetCount])
						break
					}
				}
			}
			return nil
		}

		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		if ui.currentMode == UIModeTimer && event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case KeyToggle:
				controller.ToggleTimer()
				return nil
			case KeyReset:
				controller.ResetSession()
				return nil
			case KeySkip:
				controller.SkipBlock()
				return nil
			case KeyFinish:
				controller.FinishBlock()
				return nil
			case KeyRound, '=':
				controller.IncrementRound()
				return nil
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

// UpdateClock redraws the big clock
func (ui *CursesUIViewImpl) UpdateClock(face ClockFace) {
	if ui.clockPanel == nil {
		return
	}
	ui.clockPanel.SetText(formatClockFace(face))
}

func formatClockFace(face ClockFace) string {
	color := "white"
	if strings.HasPrefix(face.Detail, "REST") {
		color = "red"
	} else if face.Work {
		color = "green"
	}
	text := fmt.Sprintf("\n[%s]%s[white]\n", color, RenderBig(face.Main))
	if face.Detail != "" {
		text += fmt.Sprintf("\n[yellow]%s[white]", face.Detail)
	}
	return text
}

// UpdateSessionState updates the block and results panels
func (ui *CursesUIViewImpl) UpdateSessionState(state session.State) {
	if ui.blockPanel != nil {
		ui.blockPanel.SetText(formatBlockPanel(state))
	}
	if ui.resultsPanel != nil {
		ui.resultsPanel.SetText(formatResultsPanel(state.Results))
	}
}

func formatBlockPanel(state session.State) string {
	if state.Status == session.StatusIdle {
		text := "\n  [gray]No workout loaded[white]\n\n"
		text += "  Go to Workout Selection (press 2) to load a workout.\n"
		return text
	}

	text := "\n"
	status := ""
	switch state.Status {
	case session.StatusPaused:
		status = " [gray](PAUSED)[white]"
	case session.StatusCompleted:
		status = " [green](DONE)[white]"
	}
	text += fmt.Sprintf("  [yellow]%s[white]%s\n\n", tview.Escape(state.WorkoutName), status)

	if state.Status == session.StatusCompleted {
		text += fmt.Sprintf("  [green]All %d blocks done[white]\n\n", state.BlockCount)
		text += fmt.Sprintf("  [gray]Press[white] [yellow]%c[white] [gray]to run it again[white]\n", KeyReset)
		return text
	}

	text += fmt.Sprintf("  [cyan]Block %d/%d[white] %s\n", state.BlockIdx+1, state.BlockCount, tview.Escape(state.BlockSummary))
	for _, ex := range state.Exercises {
		text += fmt.Sprintf("    [gray]-[white] %s\n", tview.Escape(ex))
	}
	text += "\n"

	t := state.Timer
	text += fmt.Sprintf("  [gray]Elapsed:[white]   %s\n", formatDurationMMSS(t.Elapsed))
	switch t.Kind {
	case timer.KindCountdown:
		text += fmt.Sprintf("  [gray]Remaining:[white] %s\n", timer.FormatCountdown(t.Time))
	case timer.KindRounds:
		text += fmt.Sprintf("  [gray]Round:[white]     %d/%d  [gray](%s left in round)[white]\n", t.Round, t.Rounds, timer.FormatCountdown(t.RoundTime))
	case timer.KindTabata:
		phase := "[red]REST[white]"
		if t.WorkPhase {
			phase = "[green]WORK[white]"
		}
		text += fmt.Sprintf("  [gray]Round:[white]     %d/%d  %s\n", t.Round, t.Rounds, phase)
	}
	if t.ManualRounds > 0 {
		text += fmt.Sprintf("  [gray]Rounds counted:[white] %d\n", t.ManualRounds)
	}

	if state.NextBlock != "" {
		text += fmt.Sprintf("\n  [gray]Next Block:[white] %s\n", tview.Escape(state.NextBlock))
	} else {
		text += "\n  [gray]Next Block:[white] [green]Finish![white]\n"
	}

	if state.Status == session.StatusReady {
		text += "\n  [gray]Press[white] [yellow]Space[white] [gray]to start[white]\n"
	}
	return text
}

func formatResultsPanel(results []workout.BlockResult) string {
	if len(results) == 0 {
		return "\n  [gray]No blocks finished yet[white]\n"
	}
	text := "\n"
	for i, r := range results {
		mark := "[green]done[white]"
		switch {
		case r.Skipped:
			mark = "[red]skipped[white]"
		case !r.Completed:
			mark = "[yellow]finished[white]"
		}
		text += fmt.Sprintf("  %d. %s  %s  %s", i+1, tview.Escape(r.Name), formatDurationMMSS(r.Elapsed), mark)
		if r.ManualRounds > 0 {
			text += fmt.Sprintf("  [gray]%d rounds[white]", r.ManualRounds)
		}
		text += "\n"
	}
	return text
}

// formatDurationMMSS formats a duration as MM:SS
func formatDurationMMSS(d time.Duration) string {
	return timer.FormatClock(d)
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
