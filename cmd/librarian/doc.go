// Command librarian runs an interactive circulation desk session.
//
// The session reads one command per line: issue, return, hold and edit change the catalog and
// are journaled; books, book, borrower, history and holds inspect it. Quoted arguments may
// contain spaces. Type "help" for the full list.
//
// Configuration is read from --config (YAML), a .env file and the environment, see package
// circulation/shell/config. An optional seed file fills the catalog at startup.
//
// "librarian simulate" runs random scenarios with concurrent workers against the same
// configuration and prints a report, see package circulation/simulation.
package main
