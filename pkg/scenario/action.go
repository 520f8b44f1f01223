package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// ActionKind names a script action.
type ActionKind string

const (
	ActionScrollTo       ActionKind = "scroll_to"
	ActionScrollBy       ActionKind = "scroll_by"
	ActionSmooth         ActionKind = "smooth"
	ActionResizeStep     ActionKind = "resize_step"
	ActionResizeViewport ActionKind = "resize_viewport"
	ActionOffset         ActionKind = "offset"
	ActionEnable         ActionKind = "enable"
	ActionDisable        ActionKind = "disable"
	ActionResize         ActionKind = "resize"
	ActionDestroy        ActionKind = "destroy"
)

// Action is one script entry. Bare actions are written as a plain string ("disable"),
// the others as a single-key mapping ({scroll_to: 400}).
type Action struct {
	Kind ActionKind
	// Value is the position, delta or height of scroll_to, scroll_by, resize_viewport
	// and the target of smooth.
	Value float64
	// Step is the increment of a smooth scroll.
	Step float64
	// Index is the step resized by resize_step.
	Index int
	// Offset is the raw value given to offset.
	Offset any
}

type smoothArgs struct {
	To   float64 `mapstructure:"to"`
	Step float64 `mapstructure:"step"`
}

type resizeArgs struct {
	Index  int     `mapstructure:"index"`
	Height float64 `mapstructure:"height"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Action) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.Kind = ActionKind(node.Value)
		switch a.Kind {
		case ActionEnable, ActionDisable, ActionResize, ActionDestroy:
			return nil
		}
		return fmt.Errorf("line %d: unknown action %q", node.Line, node.Value)
	}

	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("line %d: an action has exactly one key, got %d", node.Line, len(raw))
	}
	for k, v := range raw {
		if err := a.decode(ActionKind(k), v); err != nil {
			return fmt.Errorf("line %d: %s: %w", node.Line, k, err)
		}
	}
	return nil
}

func (a *Action) decode(kind ActionKind, v any) error {
	a.Kind = kind
	switch kind {
	case ActionScrollTo, ActionScrollBy, ActionResizeViewport:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return err
		}
		a.Value = f
	case ActionSmooth:
		var args smoothArgs
		if err := weakDecode(v, &args); err != nil {
			return err
		}
		a.Value, a.Step = args.To, args.Step
	case ActionResizeStep:
		var args resizeArgs
		if err := weakDecode(v, &args); err != nil {
			return err
		}
		a.Index, a.Value = args.Index, args.Height
	case ActionOffset:
		a.Offset = v
	case ActionEnable, ActionDisable, ActionResize, ActionDestroy:
	default:
		return fmt.Errorf("unknown action")
	}
	return nil
}

func weakDecode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// document returns the action in its YAML/JSON form.
func (a Action) document() any {
	switch a.Kind {
	case ActionScrollTo, ActionScrollBy, ActionResizeViewport:
		return map[string]any{string(a.Kind): a.Value}
	case ActionSmooth:
		return map[string]any{string(a.Kind): map[string]float64{"to": a.Value, "step": a.Step}}
	case ActionResizeStep:
		return map[string]any{string(a.Kind): map[string]any{"index": a.Index, "height": a.Value}}
	case ActionOffset:
		return map[string]any{string(a.Kind): a.Offset}
	}
	return string(a.Kind)
}

// MarshalYAML implements yaml.Marshaler.
func (a Action) MarshalYAML() (any, error) {
	return a.document(), nil
}

// MarshalJSON implements json.Marshaler.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.document())
}

func (a Action) validate(steps int) error {
	switch a.Kind {
	case ActionResizeStep:
		if a.Index < 0 || a.Index >= steps {
			return fmt.Errorf("resize_step index %d out of range [0,%d)", a.Index, steps)
		}
		if a.Value < 0 {
			return fmt.Errorf("resize_step height must not be negative")
		}
	case ActionResizeViewport:
		if a.Value <= 0 {
			return fmt.Errorf("resize_viewport height must be positive")
		}
	case ActionSmooth:
		if a.Step < 0 {
			return fmt.Errorf("smooth step must not be negative")
		}
	}
	return nil
}

// String renders the action the way it is written in a script.
func (a Action) String() string {
	b, err := json.Marshal(a.document())
	if err != nil {
		return string(a.Kind)
	}
	return string(b)
}
