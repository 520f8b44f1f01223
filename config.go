package scrolly

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// DefaultThreshold is the progress granularity, in pixels, when none is configured.
const DefaultThreshold = 4

// Config holds the setup options of a Scroller.
// The mapstructure keys match the option names used in data attributes and scenario files.
type Config struct {
	// Steps are the step elements, in order. When empty, Step is resolved through the host.
	Steps []domain.Element `mapstructure:"steps"`
	// Step is a selector for the step elements, resolved within Parent.
	Step string `mapstructure:"step"`
	// Parent scopes the Step selector. Nil means the whole document.
	Parent domain.Element `mapstructure:"parent"`
	// Container is an explicit scroll container; nil means the window.
	Container ports.ScrollContainer `mapstructure:"container"`
	// Root is the element used as the watchers' root box; nil means the viewport.
	Root domain.Element `mapstructure:"root"`
	// Section selects the element wrapping the steps of a sticky-graphic layout.
	// When set, containerEnter and containerExit report the graphic sticking and releasing.
	Section string `mapstructure:"section"`
	// Graphic selects the sticky element inside Section. Its height moves the release point.
	Graphic string `mapstructure:"graphic"`
	// Offset is the trigger position: a fraction (0.5, "0.5") or pixels ("120px"). Default 0.5.
	Offset any `mapstructure:"offset"`
	// Threshold is the progress granularity in pixels. Zero means DefaultThreshold; minimum 1.
	Threshold float64 `mapstructure:"threshold"`
	Progress  bool    `mapstructure:"progress"`
	Once      bool    `mapstructure:"once"`
	Order     bool    `mapstructure:"order"`
	Debug     bool    `mapstructure:"debug"`
}

// DecodeConfig builds a Config from a loosely typed map (data attributes, YAML, JSON).
// Values are weakly typed: "true", "1" and 1 are all accepted for booleans and numbers.
func DecodeConfig(m map[string]any) (Config, error) {
	var cfg Config
	if len(m) == 0 {
		return cfg, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
		DecodeHook:       pixelsHook,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(m); err != nil {
		return cfg, fmt.Errorf("decode scroller config: %w", err)
	}
	return cfg, nil
}

// pixelsHook accepts pixel strings ("4px") for numeric fields.
func pixelsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if strings.HasSuffix(s, "px") {
		return cast.ToFloat64E(strings.TrimSuffix(s, "px"))
	}
	return data, nil
}

// threshold normalizes the configured progress granularity.
func (c Config) threshold() float64 {
	switch {
	case c.Threshold == 0:
		return DefaultThreshold
	case c.Threshold < 1:
		return 1
	}
	return c.Threshold
}
