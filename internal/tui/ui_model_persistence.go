package tui

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const uiStateFile = "ui_state.yaml"

type uiModelPersistenceData struct {
	LastWorkoutID string `yaml:"last_workout_id,omitempty"`
}

// uiModelPersistence keeps UI preferences between runs. An empty dir keeps
// them in memory only.
type uiModelPersistence struct {
	filePath string
	data     uiModelPersistenceData
	logger   *log.Logger
}

func newUIModelPersistence(logger *log.Logger, dir string) *uiModelPersistence {
	p := &uiModelPersistence{logger: logger}
	if dir != "" {
		p.filePath = filepath.Join(dir, uiStateFile)
	}
	p.load()
	return p
}

func (p *uiModelPersistence) getLastWorkoutID() string {
	return p.data.LastWorkoutID
}

func (p *uiModelPersistence) setLastWorkoutID(id string) {
	if id == p.data.LastWorkoutID {
		return
	}
	p.logger.Printf("UIModelPersistence: setLastWorkoutID -> %q", id)
	p.data.LastWorkoutID = id
	p.save()
}

func (p *uiModelPersistence) load() {
	p.data = uiModelPersistenceData{}
	if p.filePath == "" {
		return
	}
	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		p.logger.Printf("UIModelPersistence: load %s (no existing file)", p.filePath)
		return
	}
	if err := yaml.Unmarshal(raw, &p.data); err != nil {
		p.logger.Printf("UIModelPersistence: load %s failed to parse: %v", p.filePath, err)
		p.data = uiModelPersistenceData{}
		return
	}
	p.logger.Printf("UIModelPersistence: load %s -> last workout %q", p.filePath, p.data.LastWorkoutID)
}

func (p *uiModelPersistence) save() {
	if p.filePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p.filePath), 0o755); err != nil {
		p.logger.Printf("UIModelPersistence: save mkdir failed: %v", err)
		return
	}
	raw, err := yaml.Marshal(p.data)
	if err != nil {
		p.logger.Printf("UIModelPersistence: save marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(p.filePath, raw, 0o644); err != nil {
		p.logger.Printf("UIModelPersistence: save %s failed: %v", p.filePath, err)
		return
	}
	p.logger.Printf("UIModelPersistence: save %s", p.filePath)
}
