/*
Package scrolly is a scrollytelling step engine: given an ordered set of "step" elements on a
page, it fires enter, exit and progress notifications as the user scrolls them past a
configurable trigger line.

# Concept

Each step is watched by five narrow intersection watchers whose root margins are derived from
the trigger offset and the step height. A state machine turns their raw, batched and sometimes
skipped reports into a consistent, direction-aware sequence of notifications: a step enters
when its top edge reaches the trigger line scrolling down (or its bottom edge scrolling up),
exits when it leaves on the other side, and steps jumped over entirely are caught up with an
enter immediately followed by an exit.

The page itself is a host capability (package ports). Two hosts ship with the module: an
in-memory page simulator (pkg/adapters/sim) used by tests, the CLI and the servers, and a
browser adapter for js/wasm builds (pkg/adapters/dom).

# Key Features

  - Trigger offset as a viewport fraction or in pixels, with per-step overrides.
  - Progress mode: the covered fraction of the active step, at a configurable pixel granularity.
  - Once mode: each step's enter callback fires at most once per setup.
  - Order mode: skipped steps are reported in document order before the step that enters.
  - Lifecycle hooks for metrics and tracing that survive Destroy.

# Usage

	page := sim.NewPage(800)
	page.Add("header", 0, 800)
	for i := 0; i < 3; i++ {
		page.Add("step", 0, 400)
	}
	page.Add("footer", 0, 1200)

	s := scrolly.New(page)
	if err := s.Setup(scrolly.Config{Step: ".step", Offset: 0.5, Progress: true}); err != nil {
		log.Fatal(err)
	}
	_ = s.OnStepEnter(func(ev domain.StepEvent) {
		fmt.Println("enter", ev.Index, ev.Direction)
	})

	page.Tick()
	page.SmoothScroll(2000, 10)
*/
package scrolly
