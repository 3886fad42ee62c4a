package tui

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeTimer            UIMode = iota // Big clock and session progress
	UIModeWorkoutSelection               // Workout selection and details
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeTimer, DisplayName: "Timer", KeyBinding: '1'},
	{Mode: UIModeWorkoutSelection, DisplayName: "Workout Selection", KeyBinding: '2'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// Timer keys
const (
	KeyToggle = ' '
	KeyReset  = 'r'
	KeySkip   = 'n'
	KeyFinish = 'f'
	KeyRound  = '+'
	KeyQuit   = 'q'
)

const (
	maxLogLines  = 1000
	logChanDepth = 256
)
