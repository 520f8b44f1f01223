package scrolly_test

import (
	"fmt"
	"log"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/pkg/adapters/sim"
	"github.com/aretw0/scrolly/pkg/domain"
)

// ExampleNew drives a scroller with the in-memory page simulator.
func ExampleNew() {
	page := sim.NewPage(800)
	page.Add("header", 0, 800)
	for i := 0; i < 3; i++ {
		page.Add("step", 0, 400)
	}
	page.Add("footer", 0, 1200)

	s := scrolly.New(page)
	if err := s.Setup(scrolly.Config{Step: ".step", Offset: 0.5}); err != nil {
		log.Fatal(err)
	}
	_ = s.OnStepEnter(func(ev domain.StepEvent) {
		fmt.Println("enter", ev.Index, ev.Direction)
	})
	_ = s.OnStepExit(func(ev domain.StepEvent) {
		fmt.Println("exit", ev.Index, ev.Direction)
	})

	page.Tick()
	page.SmoothScroll(2000, 10)

	// Output:
	// enter 0 down
	// exit 0 down
	// enter 1 down
	// exit 1 down
	// enter 2 down
	// exit 2 down
}

// ExampleScroller_OnStepProgress shows progress mode with a pixel offset.
func ExampleScroller_OnStepProgress() {
	page := sim.NewPage(800)
	page.Add("step", 400, 400)
	page.Add("footer", 0, 1200)

	s := scrolly.New(page)
	if err := s.Setup(scrolly.Config{Step: "step", Offset: "400px", Progress: true, Threshold: 100}); err != nil {
		log.Fatal(err)
	}
	_ = s.OnStepProgress(func(ev domain.ProgressEvent) {
		fmt.Printf("%.2f\n", ev.Progress)
	})

	page.Tick()
	page.SmoothScroll(400, 50)

	// Output:
	// 0.00
	// 0.25
	// 0.50
	// 0.75
	// 1.00
}
