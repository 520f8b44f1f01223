/*
Package observability turns scroller lifecycle hooks into Prometheus metrics and structured logs.

Both helpers return domain.LifecycleHooks, which compose with LifecycleHooks.Merge:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
	s := scrolly.New(page, scrolly.WithLifecycleHooks(hooks))
*/
package observability
