package loam

import (
	"context"
	"testing"

	"github.com/aretw0/scrolly/internal/testutils"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeSteps = `---
name: three-steps
tags: [basic]
viewport:
  height: 800
layout:
  header: 800
  footer: 1200
steps:
  - height: 400
  - height: 400
    offset: 100px
  - height: 400
options:
  progress: true
script:
  - smooth: {to: 2000, step: 10}
  - disable
---
# Three steps

Scrolls through three evenly sized steps.`

func TestLibrary_Get(t *testing.T) {
	lib, err := Open(testutils.SeedDir(t, map[string]string{"three-steps.md": threeSteps}))
	require.NoError(t, err)

	sc, err := lib.Get(context.Background(), "three-steps")
	require.NoError(t, err)

	assert.Equal(t, "three-steps", sc.Name)
	assert.Equal(t, 800.0, sc.Viewport.Height)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, "100px", sc.Steps[1].Offset)
	require.Len(t, sc.Script, 2)
	assert.Equal(t, scenario.ActionSmooth, sc.Script[0].Kind)
	assert.Equal(t, scenario.ActionDisable, sc.Script[1].Kind)
	assert.Contains(t, sc.Description, "Scrolls through three")

	trace, err := scenario.Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, 3, trace.Count(domain.EventStepEnter))
}

func TestLibrary_List(t *testing.T) {
	lib, err := Open(testutils.SeedDir(t, map[string]string{
		"three-steps.md": threeSteps,
		"tiny.md": `---
steps:
  - height: 100
---
Tiny page`,
	}))
	require.NoError(t, err)

	entries, err := lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "three-steps", entries[0].ID)
	assert.Equal(t, "Three steps", entries[0].Description)
	assert.Equal(t, 3, entries[0].Steps)
	assert.Equal(t, []string{"basic"}, entries[0].Tags)

	assert.Equal(t, "tiny", entries[1].ID)
	assert.Equal(t, "tiny", entries[1].Name)
	assert.Equal(t, "Tiny page", entries[1].Description)
}

func TestLibrary_Collision(t *testing.T) {
	lib, err := Open(testutils.SeedDir(t, map[string]string{
		"intro.md":   threeSteps,
		"intro.json": `{"name": "intro", "steps": [{"height": 100}]}`,
	}))
	require.NoError(t, err)

	_, err = lib.List(context.Background())
	assert.ErrorContains(t, err, "collision detected")
}

func TestLibrary_Invalid(t *testing.T) {
	lib, err := Open(testutils.SeedDir(t, map[string]string{
		"empty.md": `---
name: empty
---
No steps here`,
	}))
	require.NoError(t, err)

	_, err = lib.Get(context.Background(), "empty")
	assert.ErrorIs(t, err, domain.ErrInvalidScenario)

	_, err = lib.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestLibrary_ListDescriptionSources(t *testing.T) {
	lib, err := Open(testutils.SeedDir(t, map[string]string{
		"front.md": `---
description: From the frontmatter
steps:
  - height: 100
---
# Ignored heading`,
		"body.md": `---
steps:
  - height: 100
---

## Read from the body

Second paragraph.`,
	}))
	require.NoError(t, err)

	entries, err := lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "body", entries[0].ID)
	assert.Equal(t, "Read from the body", entries[0].Description, "the body is loaded when the listing omits it")
	assert.Equal(t, "front", entries[1].ID)
	assert.Equal(t, "From the frontmatter", entries[1].Description)
}
