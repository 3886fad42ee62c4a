package workout

// Presets are the built-in workouts
var Presets = []Workout{
	{
		ID:   "preset-cindy",
		Name: "Cindy",
		Blocks: []Block{
			{Kind: KindAMRAP, DurationSeconds: 20 * 60, Exercises: []string{"5 pull-ups", "10 push-ups", "15 air squats"}},
		},
	},
	{
		ID:   "preset-fran",
		Name: "Fran",
		Blocks: []Block{
			{Name: "Warm-up", Kind: KindFree, Exercises: []string{"row", "empty bar thrusters"}},
			{Name: "21-15-9", Kind: KindForTime, DurationSeconds: 10 * 60, Exercises: []string{"thrusters 43/29 kg", "pull-ups"}},
		},
	},
	{
		ID:   "preset-emom-10",
		Name: "EMOM 10 Power Cleans",
		Blocks: []Block{
			{Kind: KindEMOM, Rounds: 10, RoundSeconds: 60, Exercises: []string{"3 power cleans"}},
		},
	},
	{
		ID:   "preset-tabata",
		Name: "Classic Tabata",
		Blocks: []Block{
			{Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10, Exercises: []string{"air squats"}},
		},
	},
	{
		ID:    "preset-tabata-something-else",
		Name:  "Tabata Something Else",
		Notes: "Score is the total reps of all 32 work intervals.",
		Blocks: []Block{
			{Name: "Pull-ups", Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10},
			{Name: "Push-ups", Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10},
			{Name: "Sit-ups", Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10},
			{Name: "Squats", Kind: KindTabata, Rounds: 8, WorkSeconds: 20, RestSeconds: 10},
		},
	},
	{
		ID:   "preset-alternating-emom",
		Name: "Alternating EMOM 24",
		Blocks: []Block{
			{Name: "Warm-up", Kind: KindFree},
			{Kind: KindEMOM, Rounds: 24, RoundSeconds: 60, Exercises: []string{"12 cal row", "10 burpees", "15 kettlebell swings"}},
			{Name: "Cool-down", Kind: KindAMRAP, DurationSeconds: 5 * 60, Exercises: []string{"easy bike"}},
		},
	},
	{
		ID:   "preset-sprint-intervals",
		Name: "Sprint Intervals",
		Blocks: []Block{
			{Name: "Sprints", Kind: KindTabata, Rounds: 10, WorkSeconds: 30, RestSeconds: 90},
			{Name: "Finisher", Kind: KindTabata, Rounds: 4, WorkSeconds: 40, RestSeconds: 0},
		},
	},
}

// FindPreset returns the preset with the given ID
func FindPreset(id string) (Workout, bool) {
	for _, w := range Presets {
		if w.ID == id {
			return w, true
		}
	}
	return Workout{}, false
}
