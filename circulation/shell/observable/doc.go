// Package observable wraps command and query handlers with metrics, tracing and logging.
//
// The wrappers only translate handler results and errors into observability signals;
// all circulation logic stays in the wrapped handlers.
package observable
