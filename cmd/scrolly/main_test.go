package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSimulate_Formats(t *testing.T) {
	out := execute(t, "simulate", "testdata/two-steps.yaml", "--format", "json", "--dir", "testdata/library")
	var trace domain.Trace
	require.NoError(t, json.Unmarshal([]byte(out), &trace))
	assert.Equal(t, "two-steps", trace.Scenario)
	assert.Equal(t, 2, trace.Count(domain.EventStepEnter))

	out = execute(t, "simulate", "testdata/two-steps.yaml", "--format", "log", "--no-color")
	assert.Contains(t, out, "step 0")
	assert.Contains(t, out, "step 1")

	out = execute(t, "simulate", "testdata/two-steps.yaml", "--format", "report")
	assert.Contains(t, out, "# two-steps")

	out = execute(t, "simulate", "testdata/two-steps.yaml", "--format", "mermaid")
	assert.Contains(t, out, `step_0 -- "down" --> step_1`)
}

func TestSimulate_Library(t *testing.T) {
	out := execute(t, "simulate", "jump", "--format", "json", "--dir", "testdata/library")
	var trace domain.Trace
	require.NoError(t, json.Unmarshal([]byte(out), &trace))
	assert.Equal(t, "jump", trace.Scenario)
	assert.Equal(t, 3, trace.Count(domain.EventStepExit))

	out = execute(t, "scenarios", "--dir", "testdata/library")
	assert.Contains(t, out, "jump")
	assert.Contains(t, out, "Jump past every step")
}

func TestVersion(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "scrolly version "+scrolly.Version)

	// Flags persist on the shared command, so the JSON form runs last.
	var info buildInfo
	require.NoError(t, json.Unmarshal([]byte(execute(t, "version", "--json")), &info))
	assert.Equal(t, scrolly.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
