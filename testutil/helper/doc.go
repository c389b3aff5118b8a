// Package helper provides test doubles and arrange helpers shared by the circulation tests:
// spies for the observability interfaces, a scripted Prompter and a ready-to-use Library fixture.
package helper
