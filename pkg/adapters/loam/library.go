package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/scrolly/pkg/scenario"
	"gopkg.in/yaml.v3"
)

var _ scenario.Library = (*Library)(nil)

// Library serves named scenarios from a Loam repository: one document per scenario,
// the frontmatter holding the scenario and the body its long description.
type Library struct {
	Repo *loam.TypedRepository[ScenarioMetadata]
}

// New creates a library over an existing typed repository.
func New(repo *loam.TypedRepository[ScenarioMetadata]) *Library {
	return &Library{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Read-only: the library never writes scenarios back.
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ScenarioMetadata](repo)), nil
}

// List returns every scenario, sorted by ID. Two documents resolving to the same ID are an error.
func (l *Library) List(ctx context.Context) ([]scenario.Entry, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	entries := make([]scenario.Entry, 0, len(docs))
	for _, doc := range docs {
		id := trimExtension(doc.ID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: scenario '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID

		name := doc.Data.Name
		if name == "" {
			name = id
		}
		description := firstLine(doc.Data.Description, doc.Content)
		if description == "" {
			// List serves cached metadata only; the body needs a full read.
			full, err := l.Repo.Get(ctx, doc.ID)
			if err != nil {
				return nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
			}
			description = firstLine(full.Content)
		}
		entries = append(entries, scenario.Entry{
			ID:          id,
			Name:        name,
			Description: description,
			Steps:       len(doc.Data.Steps),
			Tags:        doc.Data.Tags,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Get loads and validates one scenario.
func (l *Library) Get(ctx context.Context, id string) (*scenario.Scenario, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	meta := doc.Data
	if meta.Name == "" {
		meta.Name = trimExtension(id)
	}
	if meta.Description == "" {
		meta.Description = strings.TrimSpace(doc.Content)
	}

	raw, err := yaml.Marshal(meta.document())
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode scenario %s: %w", id, err)
	}
	sc, err := scenario.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}
	return sc, nil
}

func firstLine(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if i := strings.IndexByte(c, '\n'); i >= 0 {
			c = c[:i]
		}
		return strings.TrimSpace(strings.TrimLeft(c, "# "))
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
