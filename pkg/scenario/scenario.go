package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/scrolly/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultViewportHeight is used when a scenario leaves the viewport height out.
const DefaultViewportHeight = 800

// Scenario is a page layout, scroller options and a script of actions.
type Scenario struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Viewport    Viewport       `yaml:"viewport" json:"viewport"`
	Layout      Layout         `yaml:"layout" json:"layout"`
	Steps       []Step         `yaml:"steps" json:"steps"`
	Options     map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
	Script      []Action       `yaml:"script" json:"script"`
}

// Viewport is the simulated window size.
type Viewport struct {
	Height float64 `yaml:"height" json:"height"`
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
}

// Layout is the space around the steps, in pixels.
type Layout struct {
	Header float64 `yaml:"header" json:"header"`
	Gap    float64 `yaml:"gap" json:"gap"`
	Footer float64 `yaml:"footer" json:"footer"`
	// Section wraps the steps in a section element and enables container notifications.
	Section bool `yaml:"section,omitempty" json:"section,omitempty"`
	// Graphic is the height of a sticky graphic inside the section. It implies Section.
	Graphic float64 `yaml:"graphic,omitempty" json:"graphic,omitempty"`
}

// sectioned reports whether the layout wraps its steps in a section.
func (l Layout) sectioned() bool {
	return l.Section || l.Graphic > 0
}

// Step is one step element of the page.
type Step struct {
	Height float64 `yaml:"height" json:"height"`
	// Offset is the element's data-offset override.
	Offset string `yaml:"offset,omitempty" json:"offset,omitempty"`
	// Nested places the element inside a scrollable ancestor.
	Nested bool `yaml:"nested,omitempty" json:"nested,omitempty"`
}

// Parse decodes a YAML or JSON scenario and validates it.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile reads a scenario from disk. The name defaults to the file's base name.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Validate checks the scenario and fills defaults.
func (s *Scenario) Validate() error {
	if s.Viewport.Height == 0 {
		s.Viewport.Height = DefaultViewportHeight
	}
	if s.Viewport.Height < 0 {
		return fmt.Errorf("%w: viewport height must be positive", domain.ErrInvalidScenario)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidScenario, domain.ErrNoSteps)
	}
	if s.Layout.Graphic < 0 {
		return fmt.Errorf("%w: graphic height must not be negative", domain.ErrInvalidScenario)
	}
	for i, st := range s.Steps {
		if st.Height < 0 {
			return fmt.Errorf("%w: step %d has a negative height", domain.ErrInvalidScenario, i)
		}
	}
	for i, a := range s.Script {
		if err := a.validate(len(s.Steps)); err != nil {
			return fmt.Errorf("%w: script[%d]: %v", domain.ErrInvalidScenario, i, err)
		}
	}
	return nil
}

// String renders the scenario as JSON, for logs and MCP resources.
func (s *Scenario) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return s.Name
	}
	return string(b)
}
