/*
Package scenario describes scroll sessions declaratively and replays them against the page
simulator, recording every notification into a domain.Trace.

A scenario is a YAML (or JSON) document:

	name: three-steps
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
	  offset: 0.5
	  progress: true
	script:
	  - smooth: {to: 2000, step: 10}
	  - scroll_to: 0
	  - resize_step: {index: 1, height: 600}
	  - disable
	  - enable
*/
package scenario
