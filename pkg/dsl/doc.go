/*
Package dsl provides a fluent Go builder for scroll scenarios.

It is the programmatic twin of the YAML scenario format: useful for tests,
generated layouts and IDE autocompletion.

Example usage:

	b := dsl.New("intro").
		Viewport(800).
		Layout(800, 0, 1200).
		Option("progress", true)

	b.Step(400)
	b.Step(400).Offset("100px")
	b.Step(400)

	b.Smooth(2000, 10).Disable()

	sc, err := b.Build()
	// ... pass sc to scenario.Run
*/
package dsl
