// Package catalog is the registry of everything the circulation engine works on:
// books, borrowers, staff, loans and the lending policy.
//
// A Registry is passed explicitly to the command and query handlers. Lookups are safe for
// concurrent use. Mutations of a book and of the borrowers it touches must happen while
// the book's lock is held, see Registry.LockBook.
package catalog
