package loam

// ScenarioMetadata is the frontmatter of a scenario document.
// Nested sections stay loosely typed here and are validated by the scenario package.
type ScenarioMetadata struct {
	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description" mapstructure:"description"`
	Viewport    map[string]any `json:"viewport" mapstructure:"viewport"`
	Layout      map[string]any `json:"layout" mapstructure:"layout"`
	Steps       []any          `json:"steps" mapstructure:"steps"`
	Options     map[string]any `json:"options" mapstructure:"options"`
	Script      []any          `json:"script" mapstructure:"script"`

	// Tags are free-form labels shown by the scenario listing.
	Tags []string `json:"tags" mapstructure:"tags"`
}

func (m ScenarioMetadata) document() map[string]any {
	doc := map[string]any{
		"name":   m.Name,
		"steps":  m.Steps,
		"script": m.Script,
	}
	if m.Description != "" {
		doc["description"] = m.Description
	}
	if m.Viewport != nil {
		doc["viewport"] = m.Viewport
	}
	if m.Layout != nil {
		doc["layout"] = m.Layout
	}
	if m.Options != nil {
		doc["options"] = m.Options
	}
	return doc
}
