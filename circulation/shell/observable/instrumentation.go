package observable

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// Instrumentation bundles the observability adapters of a process. Nil fields are skipped.
type Instrumentation struct {
	Logger  shell.ContextualLogger
	Metrics shell.MetricsCollector
	Tracing shell.TracingCollector
}

// CommandOptions returns the wrapper options for every adapter that is set.
func CommandOptions[C shell.Command](i Instrumentation) []CommandOption[C] {
	var opts []CommandOption[C]

	if i.Logger != nil {
		opts = append(opts, WithCommandContextualLogging[C](i.Logger))
	}

	if i.Metrics != nil {
		opts = append(opts, WithCommandMetrics[C](i.Metrics))
	}

	if i.Tracing != nil {
		opts = append(opts, WithCommandTracing[C](i.Tracing))
	}

	return opts
}

// QueryOptions returns the wrapper options for every adapter that is set.
func QueryOptions[Q shell.Query, R any](i Instrumentation) []QueryOption[Q, R] {
	var opts []QueryOption[Q, R]

	if i.Logger != nil {
		opts = append(opts, WithQueryContextualLogging[Q, R](i.Logger))
	}

	if i.Metrics != nil {
		opts = append(opts, WithQueryMetrics[Q, R](i.Metrics))
	}

	if i.Tracing != nil {
		opts = append(opts, WithQueryTracing[Q, R](i.Tracing))
	}

	return opts
}
