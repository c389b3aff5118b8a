// Package core contains the circulation domain of a lending library:
// books, borrowers, staff, loans and the per-book hold request queue.
//
// The circulation rules are expressed as decisions. Book.DecideIssue and Book.DecideReturn
// inspect the current state and return a value describing what should happen, including
// any question the acting user has to answer. Book.ApplyIssue and Book.ApplyReturn then
// perform the state change. Nothing in this package talks to a user or to the journal.
//
// The package also holds the domain events that the command handlers record in the
// circulation journal, one file per event.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
