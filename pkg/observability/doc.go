/*
Package observability provides Prometheus metrics for the fsg engine.

Metrics are fed through domain.LifecycleHooks, so the engine itself never
imports Prometheus:

	m := observability.NewMetrics(prometheus.NewRegistry())
	engine, err := fsg.New(path, fsg.WithLifecycleHooks(m.Hooks()))
*/
package observability
