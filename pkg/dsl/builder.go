package dsl

import (
	"fmt"

	"github.com/aretw0/scrolly/pkg/scenario"
)

// Builder manages the scenario construction.
type Builder struct {
	sc    scenario.Scenario
	steps []*StepBuilder
}

// New creates a new scenario builder.
func New(name string) *Builder {
	return &Builder{
		sc: scenario.Scenario{Name: name},
	}
}

// Describe sets the scenario description.
func (b *Builder) Describe(text string) *Builder {
	b.sc.Description = text
	return b
}

// Viewport sets the simulated window height.
func (b *Builder) Viewport(height float64) *Builder {
	b.sc.Viewport.Height = height
	return b
}

// Layout sets the space before, between and after the steps.
func (b *Builder) Layout(header, gap, footer float64) *Builder {
	b.sc.Layout = scenario.Layout{Header: header, Gap: gap, Footer: footer}
	return b
}

// Option sets one scroller option, using the same keys as the YAML format.
func (b *Builder) Option(key string, value any) *Builder {
	if b.sc.Options == nil {
		b.sc.Options = make(map[string]any)
	}
	b.sc.Options[key] = value
	return b
}

// Step appends a step of the given height.
func (b *Builder) Step(height float64) *StepBuilder {
	sb := &StepBuilder{step: scenario.Step{Height: height}}
	b.steps = append(b.steps, sb)
	return sb
}

// Steps appends n steps of the same height.
func (b *Builder) Steps(n int, height float64) *Builder {
	for range n {
		b.Step(height)
	}
	return b
}

func (b *Builder) do(a scenario.Action) *Builder {
	b.sc.Script = append(b.sc.Script, a)
	return b
}

// ScrollTo jumps to an absolute position.
func (b *Builder) ScrollTo(y float64) *Builder {
	return b.do(scenario.Action{Kind: scenario.ActionScrollTo, Value: y})
}

// ScrollBy jumps by a relative amount.
func (b *Builder) ScrollBy(dy float64) *Builder {
	return b.do(scenario.Action{Kind: scenario.ActionScrollBy, Value: dy})
}

// Smooth scrolls to y in increments of step pixels.
func (b *Builder) Smooth(y, step float64) *Builder {
	return b.do(scenario.Action{Kind: scenario.ActionSmooth, Value: y, Step: step})
}

// ResizeStep changes the height of step index.
func (b *Builder) ResizeStep(index int, height float64) *Builder {
	return b.do(scenario.Action{Kind: scenario.ActionResizeStep, Index: index, Value: height})
}

// ResizeViewport changes the window height.
func (b *Builder) ResizeViewport(height float64) *Builder {
	return b.do(scenario.Action{Kind: scenario.ActionResizeViewport, Value: height})
}

// SetOffset changes the trigger offset at runtime.
func (b *Builder) SetOffset(offset any) *Builder {
	return b.do(scenario.Action{Kind: scenario.ActionOffset, Offset: offset})
}

func (b *Builder) Enable() *Builder  { return b.do(scenario.Action{Kind: scenario.ActionEnable}) }
func (b *Builder) Disable() *Builder { return b.do(scenario.Action{Kind: scenario.ActionDisable}) }
func (b *Builder) Resize() *Builder  { return b.do(scenario.Action{Kind: scenario.ActionResize}) }
func (b *Builder) Destroy() *Builder { return b.do(scenario.Action{Kind: scenario.ActionDestroy}) }

// Build validates and returns the scenario. The builder can keep being used afterwards.
func (b *Builder) Build() (*scenario.Scenario, error) {
	sc := b.sc
	sc.Steps = make([]scenario.Step, len(b.steps))
	for i, sb := range b.steps {
		sc.Steps[i] = sb.step
	}
	sc.Script = append([]scenario.Action(nil), b.sc.Script...)

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build scenario %s: %w", sc.Name, err)
	}
	return &sc, nil
}
