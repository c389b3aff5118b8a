// Package simulation drives the circulation handlers with many concurrent desk workers.
//
// A generator produces weighted random scenarios (issue, return, hold, edit and the two queries)
// and a fixed pool of workers executes them against a shared registry and journal. Questions are
// answered at random, and a simulated clock moves forward with every operation so that fines and
// hold request expiry come into play. After the run every book is checked against the
// circulation invariants.
//
// It is used by "librarian simulate" and is handy to shake out locking problems under the race detector.
package simulation
