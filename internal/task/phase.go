// Package task holds the caller-supplied project plan the task matcher
// compares against a repository: phases made of sub-tasks.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation for non-empty trimmed strings
	_ = validate.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ErrInvalidPlan is returned when phases fail validation.
var ErrInvalidPlan = errors.New("invalid plan")

// SubTask is one unit of work inside a phase.
type SubTask struct {
	ID         string `json:"id" yaml:"id" validate:"required,nonempty"`
	Title      string `json:"title" yaml:"title" validate:"required,nonempty,max=300"`
	IsComplete bool   `json:"isComplete" yaml:"isComplete"`
}

// Phase is a high-level work chunk made of sub-tasks.
type Phase struct {
	ID       string    `json:"id" yaml:"id" validate:"required,nonempty"`
	Title    string    `json:"title" yaml:"title" validate:"required,nonempty,max=200"`
	SubTasks []SubTask `json:"subTasks" yaml:"subTasks" validate:"dive"`
}

// plan is the on-disk wrapper form: {"phases": [...]}.
type plan struct {
	Phases []Phase `json:"phases" yaml:"phases"`
}

// Validate checks every phase and sub-task.
func Validate(phases []Phase) error {
	seen := make(map[string]bool, len(phases))
	for i := range phases {
		p := &phases[i]
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("%w: phase %d: %v", ErrInvalidPlan, i, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate phase id %q", ErrInvalidPlan, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// ParsePhases decodes phases from YAML or JSON. Both a bare list and a
// {"phases": [...]} document are accepted. YAML is a superset of JSON, so one
// decoder serves both.
func ParsePhases(data []byte) ([]Phase, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidPlan)
	}

	var phases []Phase
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "-") {
		if err := yaml.Unmarshal(data, &phases); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
	} else {
		var doc plan
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
		phases = doc.Phases
	}

	if err := Validate(phases); err != nil {
		return nil, err
	}
	return phases, nil
}

// LoadPhases reads a phases file. A .json file must be valid JSON.
func LoadPhases(path string) ([]Phase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phases file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") && !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidPlan, path)
	}
	return ParsePhases(data)
}

// TaskCount returns the number of sub-tasks across phases.
func TaskCount(phases []Phase) int {
	n := 0
	for _, p := range phases {
		n += len(p.SubTasks)
	}
	return n
}
