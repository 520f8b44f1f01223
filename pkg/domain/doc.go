/*
Package domain contains the core types of the scrolly step engine.

It defines the vocabulary shared by the runtime, the hosts and the adapters:
scroll directions, step lifecycle states, trigger offsets, viewport geometry and the
notification payloads delivered to callbacks. The package is pure and free of I/O.

# Key Entities

  - Offset: Trigger line position, as a fraction of the viewport height or in pixels.
  - Rect / Margin: Viewport-relative boxes and the edge offsets applied to an observer root.
  - StepEvent / ProgressEvent: Payloads of the stepEnter, stepExit and stepProgress callbacks.
  - Event / Trace: Serializable records of emitted notifications, used for replay and storage.
*/
package domain
