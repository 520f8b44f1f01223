/*
Package ports defines the driven ports (interfaces) of the scrolly engine.

These interfaces decouple the step state machine from the host it runs in. A browser
(via syscall/js) and the pure-Go page simulator both implement them.

# Key Interfaces

  - Host: Viewport measurements, scroll listeners and the observer primitives.
  - ObserverFactory: Creates intersection and resize watchers.
  - Selector: Optional step selection by selector string.
  - TraceStore: Persists recorded notification traces.
*/
package ports
