package workout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// plan is the layout of a plan file: a list of workouts
type plan struct {
	Workouts []Workout `yaml:"workouts" toml:"workouts"`
}

// LoadPlanFile reads the workouts of a .toml, .yaml or .yml plan file and validates them
func LoadPlanFile(path string) ([]Workout, error) {
	var (
		p   plan
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		p, err = decodeTOMLPlan(path)
	case ".yaml", ".yml":
		p, err = decodeYAMLPlan(path)
	default:
		return nil, fmt.Errorf("%s: unsupported plan format %q", path, ext)
	}
	if err != nil {
		return nil, err
	}

	if len(p.Workouts) == 0 {
		return nil, fmt.Errorf("%s: %w: no workouts", path, ErrInvalidWorkout)
	}
	for i := range p.Workouts {
		for j := range p.Workouts[i].Blocks {
			kind, err := ParseBlockKind(string(p.Workouts[i].Blocks[j].Kind))
			if err != nil {
				return nil, fmt.Errorf("%s: %q block %d: %w", path, p.Workouts[i].Name, j+1, err)
			}
			p.Workouts[i].Blocks[j].Kind = kind
		}
		if err := p.Workouts[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return p.Workouts, nil
}

func decodeTOMLPlan(path string) (plan, error) {
	var p plan
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return plan{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return plan{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return p, nil
}

func decodeYAMLPlan(path string) (plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return plan{}, fmt.Errorf("read plan file: %w", err)
	}
	var p plan
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return plan{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return p, nil
}
